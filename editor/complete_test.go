package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rpupo63/bsd-portfolio/client"
)

func TestClean(t *testing.T) {
	d := emptyForm()
	d.Images = []client.Image{
		{URL: "https://x/a.png", Caption: "A", Type: "photo", Order: 2},
		{URL: "https://x/b.png", Caption: "", Type: "photo"},
	}
	d.Features = []client.Feature{{Title: "Search"}, {Title: "Export", Description: "CSV"}}
	d.Roadmap = []client.RoadmapPhase{
		{Phase: "Build", Description: "d", Duration: "2w", Status: PhaseCompleted, Deliverables: []string{"api", " ", ""}, Challenges: []string{""}},
		{Phase: "Launch", Description: "d", Duration: "1w"},
	}
	d.Metrics = []client.Metric{{Key: " ", Value: "1"}, {Key: "Uptime", Value: "99.9%"}}
	d.Testimonials = []client.Testimonial{
		{Name: "A", Role: "CTO", Company: "Acme", Quote: "Great", Rating: 5},
		{Name: "B", Role: "CEO", Company: "Beta", Quote: "Fine", Rating: 0},
	}
	d.Technologies = []client.Technology{{SkillID: 0}, {SkillID: 3}}
	d.Skills = []client.ProjectSkill{{SkillID: 0}, {SkillID: 3}}

	cleaned, dropped := Clean(d)

	assert.Equal(t, []client.Image{{URL: "https://x/a.png", Caption: "A", Type: "photo", Order: 2}}, cleaned.Images)
	assert.Equal(t, []client.Feature{{Title: "Export", Description: "CSV"}}, cleaned.Features)
	assert.Len(t, cleaned.Roadmap, 1)
	assert.Equal(t, []string{"api"}, cleaned.Roadmap[0].Deliverables)
	assert.Empty(t, cleaned.Roadmap[0].Challenges)
	assert.NotNil(t, cleaned.Roadmap[0].Solutions)
	assert.Equal(t, []client.Metric{{Key: "Uptime", Value: "99.9%"}}, cleaned.Metrics)
	assert.Len(t, cleaned.Testimonials, 1)
	assert.Equal(t, []client.Technology{{SkillID: 3}}, cleaned.Technologies)
	assert.Equal(t, []client.ProjectSkill{{SkillID: 3}}, cleaned.Skills)

	assert.Equal(t, Dropped{
		"images":       {1},
		"features":     {0},
		"roadmap":      {1},
		"metrics":      {0},
		"testimonials": {1},
		"technologies": {0},
		"skills":       {0},
	}, dropped)

	// the input is untouched
	assert.Len(t, d.Images, 2)
	assert.Equal(t, []string{"api", " ", ""}, d.Roadmap[0].Deliverables)
}

func TestCleanNothingDropped(t *testing.T) {
	cleaned, dropped := Clean(validForm())
	assert.Empty(t, dropped)
	assert.Equal(t, validForm(), cleaned)
}
