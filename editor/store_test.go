package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/bsd-portfolio/client"
)

func TestSetField(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.SetField(FieldTitle, "Case X"))
	require.NoError(t, s.SetField(FieldHighlightBackgroundColor, "#112233"))

	snapshot := s.Snapshot()
	assert.Equal(t, "Case X", snapshot.Title)
	assert.Equal(t, "#112233", snapshot.HighlightBackgroundColor)

	value, err := s.Field(FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, "Case X", value)

	assert.ErrorIs(t, s.SetField(Field("owner"), "x"), ErrUnknownField)
	_, err = s.Field(Field("owner"))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestEveryFieldIsAddressable(t *testing.T) {
	s := NewStore()
	for _, f := range Fields {
		require.NoError(t, s.SetField(f, string(f)), f)
	}
	for _, f := range Fields {
		value, err := s.Field(f)
		require.NoError(t, err)
		assert.Equal(t, string(f), value)
	}
}

func TestSetLink(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.SetLink(LinkCaseStudy, "https://example.com/case"))
	require.NoError(t, s.SetLink(LinkGithub, "https://github.com/x"))

	links := s.Snapshot().Links
	assert.Equal(t, "https://example.com/case", links.CaseStudy)
	assert.Equal(t, "https://github.com/x", links.Github)
	assert.Empty(t, links.Live)

	assert.ErrorIs(t, s.SetLink(LinkKind("twitter"), "x"), ErrUnknownField)
}

func TestRemoveImageKeepsOtherOrders(t *testing.T) {
	s := NewStore()
	images := s.Images()
	images.Add(client.Image{URL: "https://x/a.png", Order: 5})
	images.Add(client.Image{URL: "https://x/b.png", Order: 2})
	images.Add(client.Image{URL: "https://x/c.png", Order: 9})

	require.NoError(t, images.Remove(1))

	items := images.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "https://x/a.png", items[0].URL)
	assert.Equal(t, 5, items[0].Order)
	assert.Equal(t, "https://x/c.png", items[1].URL)
	assert.Equal(t, 9, items[1].Order)
}

func TestCollectionBounds(t *testing.T) {
	s := NewStore()
	stats := s.Stats()
	stats.Add(client.Stat{Key: "Users", Value: "500"})

	assert.ErrorIs(t, stats.Remove(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, stats.Remove(1), ErrIndexOutOfRange)
	assert.ErrorIs(t, stats.Update(1, StatKey("x")), ErrIndexOutOfRange)
	assert.ErrorIs(t, stats.Insert(2, client.Stat{}), ErrIndexOutOfRange)
	assert.Equal(t, 1, stats.Len())
}

func TestUpdatePatches(t *testing.T) {
	s := NewStore()

	s.Images().Add(client.Image{})
	require.NoError(t, s.Images().Update(0, ImageURL("https://x/a.png")))
	require.NoError(t, s.Images().Update(0, ImageCaption("Home")))
	require.NoError(t, s.Images().Update(0, ImageType("screenshot")))
	require.NoError(t, s.Images().Update(0, ImageAltText("home page")))
	require.NoError(t, s.Images().Update(0, ImageOrder(3)))
	assert.Equal(t, client.Image{URL: "https://x/a.png", AltText: "home page", Caption: "Home", Type: "screenshot", Order: 3}, s.Images().Items()[0])

	s.Features().Add(client.Feature{})
	require.NoError(t, s.Features().Update(0, FeatureTitle("Search")))
	require.NoError(t, s.Features().Update(0, FeatureStatus(FeatureInProgress)))
	assert.Equal(t, client.Feature{Title: "Search", Status: "in progress"}, s.Features().Items()[0])

	s.Stats().Add(client.Stat{})
	require.NoError(t, s.Stats().Update(0, StatIsList(true)))
	assert.True(t, s.Stats().Items()[0].IsListStat)

	s.Metrics().Add(client.Metric{})
	require.NoError(t, s.Metrics().Update(0, MetricValue("99%")))
	assert.Equal(t, "99%", s.Metrics().Items()[0].Value)
}

func TestTestimonialRatingClamps(t *testing.T) {
	tests := []struct {
		input int
		want  int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{3, 3},
		{5, 5},
		{6, 5},
	}

	s := NewStore()
	s.Testimonials().Add(client.Testimonial{})
	for _, tt := range tests {
		require.NoError(t, s.Testimonials().Update(0, TestimonialRating(tt.input)))
		assert.Equal(t, tt.want, s.Testimonials().Items()[0].Rating, "input %d", tt.input)
	}
}

func TestRoadmapItemsAreCopies(t *testing.T) {
	s := NewStore()
	deliverables := []string{"wireframes"}
	s.Roadmap().Add(client.RoadmapPhase{Phase: "Discovery", Deliverables: deliverables})
	deliverables[0] = "changed"

	items := s.Roadmap().Items()
	assert.Equal(t, []string{"wireframes"}, items[0].Deliverables)

	items[0].Deliverables[0] = "changed again"
	assert.Equal(t, []string{"wireframes"}, s.Snapshot().Roadmap[0].Deliverables)

	list := []string{"a", "b"}
	require.NoError(t, s.Roadmap().Update(0, RoadmapChallenges(list)))
	list[0] = "z"
	assert.Equal(t, []string{"a", "b"}, s.Roadmap().Items()[0].Challenges)
}

func TestLoadFormDataMerges(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetField(FieldTitle, "A"))
	require.NoError(t, s.SetField(FieldDescription, "D"))
	s.Images().Add(client.Image{URL: "https://x/a.png"})

	err := s.LoadFormData([]byte(`{
		"title": "B",
		"id": 17,
		"created_at": "2024-01-01T00:00:00Z",
		"stats": [{"key": "Users", "value": "500", "order": 1}]
	}`))
	require.NoError(t, err)

	snapshot := s.Snapshot()
	assert.Equal(t, "B", snapshot.Title)
	assert.Equal(t, "D", snapshot.Description)
	assert.Len(t, snapshot.Images, 1)
	assert.Equal(t, []client.Stat{{Key: "Users", Value: "500", Order: 1}}, snapshot.Stats)
}

func TestLoadFormDataNullResets(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetField(FieldSubtitle, "sub"))
	s.Metrics().Add(client.Metric{Key: "k", Value: "v"})

	require.NoError(t, s.LoadFormData([]byte(`{"subtitle": null, "metrics": null}`)))

	snapshot := s.Snapshot()
	assert.Empty(t, snapshot.Subtitle)
	assert.NotNil(t, snapshot.Metrics)
	assert.Empty(t, snapshot.Metrics)
}

func TestLoadFormDataIsAtomic(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetField(FieldTitle, "A"))

	assert.Error(t, s.LoadFormData([]byte(`{"title": "B", "stats": "nope"}`)))
	assert.Error(t, s.LoadFormData([]byte(`not json`)))

	assert.Equal(t, "A", s.Snapshot().Title)
}

func TestLoadFormDataJoinsLegacySkills(t *testing.T) {
	s := NewStore()
	err := s.LoadFormData([]byte(`{
		"technologies": [{"skill_id": 1, "level": "expert"}, {"skill_id": 2}],
		"skills": [
			{"skill_id": 2, "contribution": "lead"},
			{"skill_id": 1, "complexity": "high"},
			{"skill_id": 7, "contribution": "review"}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []SkillRow{
		{SkillID: 1, Level: "expert", Complexity: "high"},
		{SkillID: 2, Contribution: "lead"},
		{SkillID: 7, Contribution: "review"},
	}, s.SkillRows().Items())

	snapshot := s.Snapshot()
	assert.Equal(t, []client.Technology{{SkillID: 1, Level: "expert"}, {SkillID: 2}, {SkillID: 7}}, snapshot.Technologies)
	assert.Equal(t, []client.ProjectSkill{
		{SkillID: 1, Complexity: "high"},
		{SkillID: 2, Contribution: "lead"},
		{SkillID: 7, Contribution: "review"},
	}, snapshot.Skills)
}

func TestLoadFormDataPositionalFallback(t *testing.T) {
	s := NewStore()
	err := s.LoadFormData([]byte(`{
		"technologies": [{"skill_id": 0, "level": "basic"}],
		"skills": [{"skill_id": 0, "contribution": "solo"}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []SkillRow{{Level: "basic", Contribution: "solo"}}, s.SkillRows().Items())
}

func TestLoadFormDataKeepsRowsWhenAbsent(t *testing.T) {
	s := NewStore()
	s.SkillRows().Add(SkillRow{SkillID: 4, Level: "expert"})

	require.NoError(t, s.LoadFormData([]byte(`{"title": "x"}`)))
	assert.Equal(t, []SkillRow{{SkillID: 4, Level: "expert"}}, s.SkillRows().Items())
}

func TestHydrate(t *testing.T) {
	s := NewStore()
	project := &client.Project{
		ID:           9,
		Title:        "Case X",
		Category:     "Web",
		Type:         "Client",
		Description:  "desc",
		Links:        client.Links{Live: "https://x.dev"},
		Technologies: []client.SkillRef{{ID: 3, Name: "Go", Level: "expert"}},
		Skills:       []client.SkillRef{{ID: 3, Name: "Go", Contribution: "lead"}},
		Stats:        []client.Stat{{Key: "Users", Value: "500"}},
	}

	require.NoError(t, s.Hydrate(project))

	snapshot := s.Snapshot()
	assert.Equal(t, "Case X", snapshot.Title)
	assert.Equal(t, "https://x.dev", snapshot.Links.Live)
	assert.Equal(t, []client.Technology{{SkillID: 3, Level: "expert"}}, snapshot.Technologies)
	assert.Equal(t, []client.ProjectSkill{{SkillID: 3, Contribution: "lead"}}, snapshot.Skills)
	assert.Equal(t, []client.Stat{{Key: "Users", Value: "500"}}, snapshot.Stats)
	assert.NotNil(t, snapshot.Images)
	assert.Empty(t, snapshot.Images)

	assert.Error(t, s.Hydrate(nil))
}

func TestResetForm(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.SetField(FieldTitle, "A"))
	s.Images().Add(client.Image{URL: "https://x/a.png"})
	s.SkillRows().Add(SkillRow{SkillID: 1})

	s.ResetForm()

	assert.Equal(t, emptyForm(), s.Snapshot())
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := NewStore()
	s.Stats().Add(client.Stat{Key: "Users", Value: "500"})

	snapshot := s.Snapshot()
	snapshot.Stats[0].Key = "changed"

	assert.Equal(t, "Users", s.Stats().Items()[0].Key)
}
