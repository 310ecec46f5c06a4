package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/bsd-portfolio/client"
)

func newTestEditor(backend *fakeBackend, projectID uint64) *Editor {
	return NewEditor(NewStore(), backend, projectID, zerolog.Nop())
}

func TestSaveSectionStatsScenario(t *testing.T) {
	backend := &fakeBackend{}
	e := newTestEditor(backend, 7)
	e.Store().Stats().Add(client.Stat{Key: "Users", Value: "500"})
	e.Store().Stats().Add(client.Stat{Key: "", Value: "10"})

	result := e.SaveSection(context.Background(), SectionStats)

	assert.True(t, result.Notice.OK())
	assert.Equal(t, "Stats saved successfully", result.Notice.Message)
	assert.Equal(t, map[string]any{"stats": []client.Stat{{Key: "Users", Value: "500"}}}, result.Payload)
	assert.Equal(t, Dropped{"stats": {1}}, result.Dropped)

	require.Len(t, backend.patches, 1)
	assert.Equal(t, uint64(7), backend.patches[0].id)
	assert.Equal(t, result.Payload, backend.patches[0].partial)

	// the incomplete row stays in the form
	assert.Equal(t, 2, e.Store().Stats().Len())
}

func TestSaveSectionSendsOnlyItsKeys(t *testing.T) {
	backend := &fakeBackend{}
	e := newTestEditor(backend, 3)
	require.NoError(t, e.Store().SetField(FieldTitle, "Case X"))
	require.NoError(t, e.Store().SetField(FieldTimeline, "Q3"))
	require.NoError(t, e.Store().SetLink(LinkGithub, "https://github.com/x"))

	basic := e.SaveSection(context.Background(), SectionBasic)
	assert.ElementsMatch(t, []string{"title", "subtitle", "category", "type", "description"}, keys(basic.Payload))
	assert.Equal(t, "Case X", basic.Payload["title"])

	details := e.SaveSection(context.Background(), SectionDetails)
	assert.NotContains(t, details.Payload, "title")
	assert.Equal(t, "Q3", details.Payload["timeline"])

	links := e.SaveSection(context.Background(), SectionLinks)
	assert.Equal(t, map[string]any{"links": client.Links{Github: "https://github.com/x"}}, links.Payload)
}

func TestSaveSectionTechnologiesSendsBothCollections(t *testing.T) {
	backend := &fakeBackend{}
	e := newTestEditor(backend, 3)
	rows := e.Store().SkillRows()
	rows.Add(SkillRow{SkillID: 4, Level: "expert", Contribution: "lead"})
	rows.Add(SkillRow{})

	result := e.SaveSection(context.Background(), SectionTechnologies)

	assert.True(t, result.Notice.OK())
	assert.Equal(t, map[string]any{
		"technologies": []client.Technology{{SkillID: 4, Level: "expert"}},
		"skills":       []client.ProjectSkill{{SkillID: 4, Contribution: "lead"}},
	}, result.Payload)
	assert.Equal(t, Dropped{"technologies": {1}, "skills": {1}}, result.Dropped)
}

func TestSaveSectionWithoutProject(t *testing.T) {
	backend := &fakeBackend{}
	e := newTestEditor(backend, 0)
	e.Store().Stats().Add(client.Stat{Key: "Users", Value: "500"})

	result := e.SaveSection(context.Background(), SectionStats)

	assert.Equal(t, NoticeError, result.Notice.Kind)
	assert.Equal(t, "Create the project before saving stats", result.Notice.Message)
	patches, _, _ := backend.calls()
	assert.Zero(t, patches)
}

func TestSaveSectionUnknown(t *testing.T) {
	backend := &fakeBackend{}
	e := newTestEditor(backend, 3)

	result := e.SaveSection(context.Background(), Section("gallery"))
	assert.Equal(t, NoticeError, result.Notice.Kind)
	patches, _, _ := backend.calls()
	assert.Zero(t, patches)
}

func TestSaveSectionFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &client.APIError{Status: 500, Message: "database unavailable"}, "database unavailable"},
		{"network error", errors.New("dial tcp: connection refused"), "Failed to save stats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(&fakeBackend{patchErr: tt.err}, 3)
			e.Store().Stats().Add(client.Stat{Key: "Users", Value: "500"})
			before := e.Store().Snapshot()

			result := e.SaveSection(context.Background(), SectionStats)

			assert.Equal(t, NoticeError, result.Notice.Kind)
			assert.Equal(t, tt.want, result.Notice.Message)
			assert.Equal(t, before, e.Store().Snapshot())
			assert.False(t, e.Busy(SectionStats))
		})
	}
}

func TestSaveSectionBusyAndClose(t *testing.T) {
	backend := &fakeBackend{started: make(chan struct{}), release: make(chan struct{})}
	e := newTestEditor(backend, 3)
	e.Store().Stats().Add(client.Stat{Key: "Users", Value: "500"})

	done := make(chan SaveResult)
	go func() {
		done <- e.SaveSection(context.Background(), SectionStats)
	}()
	<-backend.started

	assert.True(t, e.Busy(SectionStats))
	assert.False(t, e.Busy(SectionImages))

	again := e.SaveSection(context.Background(), SectionStats)
	assert.Equal(t, "Stats is already being saved", again.Notice.Message)

	e.Close()
	close(backend.release)

	result := <-done
	assert.True(t, result.Discarded)
	assert.Empty(t, result.Notice.Message)
	assert.False(t, e.Busy(SectionStats))

	after := e.SaveSection(context.Background(), SectionStats)
	assert.True(t, after.Discarded)
}

func TestSectionsRunIndependently(t *testing.T) {
	backend := &fakeBackend{started: make(chan struct{}), release: make(chan struct{})}
	e := newTestEditor(backend, 3)

	done := make(chan SaveResult, 2)
	go func() { done <- e.SaveSection(context.Background(), SectionStats) }()
	go func() { done <- e.SaveSection(context.Background(), SectionMetrics) }()

	<-backend.started
	<-backend.started
	assert.True(t, e.Busy(SectionStats))
	assert.True(t, e.Busy(SectionMetrics))

	close(backend.release)
	assert.True(t, (<-done).Notice.OK())
	assert.True(t, (<-done).Notice.OK())
}

func TestEditorLoad(t *testing.T) {
	backend := &fakeBackend{project: &client.Project{ID: 5, Title: "Loaded"}}
	e := newTestEditor(backend, 5)

	require.NoError(t, e.Load(context.Background()))
	assert.Equal(t, "Loaded", e.Store().Snapshot().Title)

	backend.getErr = errors.New("boom")
	assert.Error(t, e.Load(context.Background()))

	create := newTestEditor(backend, 0)
	assert.NoError(t, create.Load(context.Background()))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
