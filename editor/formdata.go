// Package editor holds the in-memory state of one project being created or edited,
// validates it, and synchronizes it with the API one section at a time or all at once.
package editor

import (
	"github.com/rpupo63/bsd-portfolio/client"
)

// ProjectFormData is the serializable shape of a project form. It is also the body of
// create and full-update calls.
type ProjectFormData struct {
	Title                    string                `json:"title" yaml:"title"`
	Subtitle                 string                `json:"subtitle" yaml:"subtitle"`
	Category                 string                `json:"category" yaml:"category"`
	Type                     string                `json:"type" yaml:"type"`
	Description              string                `json:"description" yaml:"description"`
	LongDescription          string                `json:"long_description" yaml:"long_description"`
	Timeline                 string                `json:"timeline" yaml:"timeline"`
	Team                     string                `json:"team" yaml:"team"`
	Role                     string                `json:"role" yaml:"role"`
	Budget                   string                `json:"budget" yaml:"budget"`
	Client                   string                `json:"client" yaml:"client"`
	CoverImageURL            string                `json:"cover_image_url" yaml:"cover_image_url"`
	Highlight                string                `json:"highlight" yaml:"highlight"`
	HighlightBackgroundColor string                `json:"highlight_background_color" yaml:"highlight_background_color"`
	Links                    client.Links          `json:"links" yaml:"links"`
	Technologies             []client.Technology   `json:"technologies" yaml:"technologies"`
	Images                   []client.Image        `json:"images" yaml:"images"`
	Features                 []client.Feature      `json:"features" yaml:"features"`
	Roadmap                  []client.RoadmapPhase `json:"roadmap" yaml:"roadmap"`
	Stats                    []client.Stat         `json:"stats" yaml:"stats"`
	Metrics                  []client.Metric       `json:"metrics" yaml:"metrics"`
	Testimonials             []client.Testimonial  `json:"testimonials" yaml:"testimonials"`
	Skills                   []client.ProjectSkill `json:"skills" yaml:"skills"`
}

// NewTestimonial is a blank testimonial row with the top rating preselected
func NewTestimonial(order int) client.Testimonial {
	return client.Testimonial{Rating: MaxRating, Order: order}
}

// emptyForm is the state of a fresh create form
func emptyForm() ProjectFormData {
	return ProjectFormData{
		Technologies: []client.Technology{},
		Images:       []client.Image{},
		Features:     []client.Feature{},
		Roadmap:      []client.RoadmapPhase{},
		Stats:        []client.Stat{},
		Metrics:      []client.Metric{},
		Testimonials: []client.Testimonial{},
		Skills:       []client.ProjectSkill{},
	}
}

// clone copies every collection so the result shares no memory with d
func (d ProjectFormData) clone() ProjectFormData {
	out := d
	out.Technologies = cloneSlice(d.Technologies)
	out.Images = cloneSlice(d.Images)
	out.Features = cloneSlice(d.Features)
	out.Stats = cloneSlice(d.Stats)
	out.Metrics = cloneSlice(d.Metrics)
	out.Testimonials = cloneSlice(d.Testimonials)
	out.Skills = cloneSlice(d.Skills)
	out.Roadmap = make([]client.RoadmapPhase, len(d.Roadmap))
	for i, phase := range d.Roadmap {
		out.Roadmap[i] = clonePhase(phase)
	}
	return out
}

func clonePhase(phase client.RoadmapPhase) client.RoadmapPhase {
	phase.Deliverables = cloneSlice(phase.Deliverables)
	phase.Challenges = cloneSlice(phase.Challenges)
	phase.Solutions = cloneSlice(phase.Solutions)
	return phase
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Field names a scalar of the form
type Field string

const (
	FieldTitle                    Field = "title"
	FieldSubtitle                 Field = "subtitle"
	FieldCategory                 Field = "category"
	FieldType                     Field = "type"
	FieldDescription              Field = "description"
	FieldLongDescription          Field = "long_description"
	FieldTimeline                 Field = "timeline"
	FieldTeam                     Field = "team"
	FieldRole                     Field = "role"
	FieldBudget                   Field = "budget"
	FieldClient                   Field = "client"
	FieldCoverImageURL            Field = "cover_image_url"
	FieldHighlight                Field = "highlight"
	FieldHighlightBackgroundColor Field = "highlight_background_color"
)

// Fields lists every scalar in form order
var Fields = []Field{
	FieldTitle, FieldSubtitle, FieldCategory, FieldType, FieldDescription, FieldLongDescription,
	FieldTimeline, FieldTeam, FieldRole, FieldBudget, FieldClient, FieldCoverImageURL,
	FieldHighlight, FieldHighlightBackgroundColor,
}

// ptr returns the address of the scalar f inside d, or nil for an unknown field
func (f Field) ptr(d *ProjectFormData) *string {
	switch f {
	case FieldTitle:
		return &d.Title
	case FieldSubtitle:
		return &d.Subtitle
	case FieldCategory:
		return &d.Category
	case FieldType:
		return &d.Type
	case FieldDescription:
		return &d.Description
	case FieldLongDescription:
		return &d.LongDescription
	case FieldTimeline:
		return &d.Timeline
	case FieldTeam:
		return &d.Team
	case FieldRole:
		return &d.Role
	case FieldBudget:
		return &d.Budget
	case FieldClient:
		return &d.Client
	case FieldCoverImageURL:
		return &d.CoverImageURL
	case FieldHighlight:
		return &d.Highlight
	case FieldHighlightBackgroundColor:
		return &d.HighlightBackgroundColor
	}
	return nil
}

// LinkKind names one of the project links
type LinkKind string

const (
	LinkLive          LinkKind = "live"
	LinkGithub        LinkKind = "github"
	LinkDocumentation LinkKind = "documentation"
	LinkCaseStudy     LinkKind = "case_study"
	LinkDemo          LinkKind = "demo"
)

var LinkKinds = []LinkKind{LinkLive, LinkGithub, LinkDocumentation, LinkCaseStudy, LinkDemo}

func (k LinkKind) ptr(l *client.Links) *string {
	switch k {
	case LinkLive:
		return &l.Live
	case LinkGithub:
		return &l.Github
	case LinkDocumentation:
		return &l.Documentation
	case LinkCaseStudy:
		return &l.CaseStudy
	case LinkDemo:
		return &l.Demo
	}
	return nil
}

// SkillRow is one entry of the unified skills list: a technology and its contribution record
type SkillRow struct {
	SkillID      uint   `json:"skill_id"`
	Level        string `json:"level,omitempty"`
	Contribution string `json:"contribution,omitempty"`
	Complexity   string `json:"complexity,omitempty"`

	// tag marks the row while a skill is being created for it; zero otherwise
	tag uint64
}

// projectRows splits rows into the technologies and skills collections the API stores
func projectRows(rows []SkillRow) ([]client.Technology, []client.ProjectSkill) {
	technologies := make([]client.Technology, len(rows))
	skills := make([]client.ProjectSkill, len(rows))
	for i, row := range rows {
		technologies[i] = client.Technology{SkillID: row.SkillID, Level: row.Level}
		skills[i] = client.ProjectSkill{SkillID: row.SkillID, Contribution: row.Contribution, Complexity: row.Complexity}
	}
	return technologies, skills
}

// joinRows merges legacy technologies and skills into composite rows. A skills entry is
// matched by skill_id first, then by position; skills left unmatched become rows of their own.
func joinRows(technologies []client.Technology, skills []client.ProjectSkill) []SkillRow {
	used := make([]bool, len(skills))
	rows := make([]SkillRow, 0, len(technologies))

	match := func(i int, skillID uint) int {
		if skillID != 0 {
			for j, s := range skills {
				if !used[j] && s.SkillID == skillID {
					return j
				}
			}
		}
		if i < len(skills) && !used[i] && (skills[i].SkillID == skillID || skills[i].SkillID == 0 || skillID == 0) {
			return i
		}
		return -1
	}

	for i, t := range technologies {
		row := SkillRow{SkillID: t.SkillID, Level: t.Level}
		if j := match(i, t.SkillID); j >= 0 {
			used[j] = true
			row.Contribution = skills[j].Contribution
			row.Complexity = skills[j].Complexity
			if row.SkillID == 0 {
				row.SkillID = skills[j].SkillID
			}
		}
		rows = append(rows, row)
	}

	for j, s := range skills {
		if !used[j] {
			rows = append(rows, SkillRow{SkillID: s.SkillID, Contribution: s.Contribution, Complexity: s.Complexity})
		}
	}
	return rows
}
