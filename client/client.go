// Package client talks to the portfolio API.
//
// Every endpoint answers with an envelope {success, data, error, message}. A transport failure,
// a non-2xx status and success:false are all returned as errors; the last two as *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 10 << 20

// uploadURLKeys are the keys an upload response may carry its URL under, in priority order
var uploadURLKeys = []string{"url", "secure_url", "file_url", "location", "path"}

// ErrNoUploadURL is returned when an upload succeeded but no URL key was found
var ErrNoUploadURL = errors.New("upload response did not include a URL")

// APIError is a failure reported by the server
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// envelope is the response wrapper of every endpoint
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.With().Str("component", "client").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetSkills(ctx context.Context) ([]Skill, error) {
	var skills []Skill
	err := c.doJSON(ctx, http.MethodGet, "/skills", nil, &skills)
	return skills, err
}

func (c *Client) CreateSkill(ctx context.Context, skill NewSkill) (Skill, error) {
	var created Skill
	err := c.doJSON(ctx, http.MethodPost, "/skills", skill, &created)
	return created, err
}

func (c *Client) GetProjectCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := c.doJSON(ctx, http.MethodGet, "/project-categories", nil, &categories)
	return categories, err
}

func (c *Client) CreateProjectCategory(ctx context.Context, name string) (Category, error) {
	var category Category
	err := c.doJSON(ctx, http.MethodPost, "/project-categories", map[string]string{"name": name}, &category)
	return category, err
}

func (c *Client) GetProjectTypes(ctx context.Context) ([]TypeOption, error) {
	var types []TypeOption
	err := c.doJSON(ctx, http.MethodGet, "/project-types", nil, &types)
	return types, err
}

func (c *Client) CreateProjectType(ctx context.Context, name string) (TypeOption, error) {
	var created TypeOption
	err := c.doJSON(ctx, http.MethodPost, "/project-types", map[string]string{"name": name}, &created)
	return created, err
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var collection struct {
		Projects []Project `json:"projects"`
		Total    int       `json:"total"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/projects", nil, &collection)
	return collection.Projects, err
}

func (c *Client) GetProject(ctx context.Context, id uint64) (*Project, error) {
	var project Project
	if err := c.doJSON(ctx, http.MethodGet, projectPath(id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject stores a new project; data is any JSON-encodable project body
func (c *Client) CreateProject(ctx context.Context, data any) (*Project, error) {
	var project Project
	if err := c.doJSON(ctx, http.MethodPost, "/projects", data, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject replaces every field and collection of a project
func (c *Client) UpdateProject(ctx context.Context, id uint64, data any) (*Project, error) {
	var project Project
	if err := c.doJSON(ctx, http.MethodPut, projectPath(id), data, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// PatchProject sends a merge-patch: only the top-level keys of partial are touched
func (c *Client) PatchProject(ctx context.Context, id uint64, partial map[string]any) (*Project, error) {
	var project Project
	if err := c.doJSON(ctx, http.MethodPatch, projectPath(id), partial, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id uint64) error {
	return c.doJSON(ctx, http.MethodDelete, projectPath(id), nil, nil)
}

// UploadImage sends file as multipart form data to the media endpoint
func (c *Client) UploadImage(ctx context.Context, file io.Reader, upload Upload) (UploadedImage, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	filename := upload.Filename
	if filename == "" {
		filename = "upload"
	}
	part, err := writer.CreatePart(filePartHeader(filename, upload.ContentType))
	if err != nil {
		return UploadedImage{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return UploadedImage{}, fmt.Errorf("failed to read upload: %w", err)
	}

	fields := map[string]string{"alt_text": upload.AltText, "caption": upload.Caption}
	if len(upload.Tags) > 0 {
		fields["tags"] = strings.Join(upload.Tags, ",")
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return UploadedImage{}, fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return UploadedImage{}, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	var data map[string]any
	if err := c.do(ctx, http.MethodPost, "/media/upload", writer.FormDataContentType(), &body, &data); err != nil {
		return UploadedImage{}, err
	}

	uploaded := UploadedImage{URL: ResolveUploadURL(data), Data: data}
	if uploaded.URL == "" {
		return uploaded, ErrNoUploadURL
	}
	return uploaded, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// filePartHeader describes the file part; without an explicit content type it is guessed from the extension
func filePartHeader(filename, contentType string) textproto.MIMEHeader {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)
	return h
}

// ResolveUploadURL returns the first non-empty string under a known URL key
func ResolveUploadURL(data map[string]any) string {
	for _, key := range uploadURLKeys {
		if value, ok := data[key].(string); ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

// Message returns the text to show a user for err
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func projectPath(id uint64) string {
	return "/projects/" + url.PathEscape(strconv.FormatUint(id, 10))
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, contentType, body, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: request failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api call")

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode, Message: statusMessage(resp.StatusCode, raw)}
		}
		return fmt.Errorf("%s %s: failed to parse response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		message := env.Error
		if message == "" {
			message = env.Message
		}
		if message == "" {
			message = statusMessage(resp.StatusCode, nil)
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: failed to parse data: %w", method, path, err)
	}
	return nil
}

func statusMessage(status int, body []byte) string {
	if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 {
		return text
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "request failed"
}
