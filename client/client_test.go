package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, WithLogger(zerolog.Nop()))
}

func writeEnvelope(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestGetProject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/projects/42", r.URL.Path)
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"id":           42,
				"title":        "Case X",
				"links":        map[string]any{"github": "https://github.com/x"},
				"technologies": []any{map[string]any{"id": 3, "name": "Go", "level": "expert"}},
				"images":       []any{map[string]any{"id": 9, "project_id": 42, "url": "https://x/a.png", "caption": "c", "type": "photo", "order": 1}},
			},
		})
	})

	project, err := c.GetProject(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), project.ID)
	assert.Equal(t, "https://github.com/x", project.Links.Github)
	assert.Equal(t, []SkillRef{{ID: 3, Name: "Go", Level: "expert"}}, project.Technologies)
	assert.Equal(t, []Image{{URL: "https://x/a.png", Caption: "c", Type: "photo", Order: 1}}, project.Images)
}

func TestPatchProjectSendsOnlyPartial(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]json.RawMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body, 1)
		assert.Contains(t, body, "stats")

		writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": 7}})
	})

	project, err := c.PatchProject(context.Background(), 7, map[string]any{"stats": []Stat{{Key: "Users", Value: "500"}}})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), project.ID)
}

func TestErrors(t *testing.T) {
	t.Run("success false", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, map[string]any{"success": false, "error": "Title already taken"})
		})

		_, err := c.GetSkills(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Title already taken", apiErr.Message)
		assert.Equal(t, "Title already taken", Message(err, "fallback"))
	})

	t.Run("non-2xx uses message", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusNotFound, map[string]any{"success": false, "message": "project not found"})
		})

		err := c.DeleteProject(context.Background(), 1)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, "project not found", apiErr.Message)
	})

	t.Run("non-json error body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		})

		_, err := c.GetProjectTypes(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "upstream exploded", apiErr.Message)
	})

	t.Run("transport error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		c := New(server.URL, WithLogger(zerolog.Nop()))

		_, err := c.GetProjectCategories(context.Background())
		require.Error(t, err)
		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr))
		assert.Equal(t, "Failed to save stats", Message(err, "Failed to save stats"))
	})
}

func TestCreateCalls(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch r.URL.Path {
		case "/skills":
			assert.Equal(t, "Rust", body["name"])
			writeEnvelope(w, http.StatusCreated, map[string]any{"success": true, "data": map[string]any{"id": 11, "name": "Rust", "category": "Backend"}})
		case "/project-categories":
			writeEnvelope(w, http.StatusCreated, map[string]any{"success": true, "data": map[string]any{"id": 2, "name": body["name"]}})
		case "/project-types":
			writeEnvelope(w, http.StatusCreated, map[string]any{"success": true, "data": map[string]any{"name": body["name"]}})
		case "/projects":
			writeEnvelope(w, http.StatusCreated, map[string]any{"success": true, "data": map[string]any{"id": 5, "title": body["title"]}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	skill, err := c.CreateSkill(ctx, NewSkill{Name: "Rust", Category: "Backend"})
	require.NoError(t, err)
	assert.Equal(t, Skill{ID: 11, Name: "Rust", Category: "Backend"}, skill)

	category, err := c.CreateProjectCategory(ctx, "Web")
	require.NoError(t, err)
	assert.Equal(t, Category{ID: 2, Name: "Web"}, category)

	projectType, err := c.CreateProjectType(ctx, "Client")
	require.NoError(t, err)
	assert.Equal(t, "Client", projectType.Name)

	project, err := c.CreateProject(ctx, map[string]any{"title": "Case X"})
	require.NoError(t, err)
	assert.Equal(t, "Case X", project.Title)
}

func TestListProjects(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"projects": []any{map[string]any{"id": 1}, map[string]any{"id": 2}}, "total": 2},
		})
	})

	projects, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestUploadImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/media/upload", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		content, _ := io.ReadAll(file)
		assert.Equal(t, "shot.png", header.Filename)
		assert.Equal(t, "image/webp", header.Header.Get("Content-Type"))
		assert.Equal(t, "png-bytes", string(content))
		assert.Equal(t, "Login screen", r.FormValue("caption"))
		assert.Equal(t, "ui,dark", r.FormValue("tags"))
		assert.Empty(t, r.FormValue("alt_text"))

		writeEnvelope(w, http.StatusCreated, map[string]any{
			"success": true,
			"data":    map[string]any{"secure_url": "https://cdn/x.png", "location": "https://s3/x.png"},
		})
	})

	uploaded, err := c.UploadImage(context.Background(), strings.NewReader("png-bytes"), Upload{
		Filename:    "shot.png",
		ContentType: "image/webp",
		Caption:     "Login screen",
		Tags:        []string{"ui", "dark"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.png", uploaded.URL)
}

func TestUploadImageWithoutURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusCreated, map[string]any{"success": true, "data": map[string]any{"id": "abc"}})
	})

	_, err := c.UploadImage(context.Background(), strings.NewReader("x"), Upload{Filename: "a.png"})
	assert.ErrorIs(t, err, ErrNoUploadURL)
}

func TestFilePartHeader(t *testing.T) {
	h := filePartHeader("cover.jpg", "")
	assert.Equal(t, "image/jpeg", h.Get("Content-Type"))
	assert.Equal(t, `form-data; name="file"; filename="cover.jpg"`, h.Get("Content-Disposition"))

	h = filePartHeader(`say "hi".bin-unknown`, "")
	assert.Equal(t, "application/octet-stream", h.Get("Content-Type"))
	assert.Equal(t, `form-data; name="file"; filename="say \"hi\".bin-unknown"`, h.Get("Content-Disposition"))

	assert.Equal(t, "image/webp", filePartHeader("cover.jpg", "image/webp").Get("Content-Type"))
}

func TestResolveUploadURL(t *testing.T) {
	cases := []struct {
		name string
		data map[string]any
		want string
	}{
		{name: "url wins", data: map[string]any{"path": "/p", "url": "https://u"}, want: "https://u"},
		{name: "blank url skipped", data: map[string]any{"url": " ", "file_url": "https://f"}, want: "https://f"},
		{name: "non-string skipped", data: map[string]any{"url": 3, "path": "/p"}, want: "/p"},
		{name: "none", data: map[string]any{"id": "x"}, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveUploadURL(tc.data))
		})
	}
}
