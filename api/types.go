package api

import (
	"sort"
	"strings"
	"time"

	"github.com/rpupo63/bsd-portfolio/models"
	"gorm.io/datatypes"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler  projectHandler
	skillHandler    skillHandler
	taxonomyHandler taxonomyHandler
	mediaHandler    mediaHandler
	contactHandler  contactHandler
	contentHandler  contentHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Internal Server Error"`
	Message string `json:"message,omitempty" example:"title is required"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// Envelope wraps every successful response
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// LinksPayload is the links object of a project request
type LinksPayload struct {
	Live          string `json:"live,omitempty" validate:"omitempty,http_url"`
	Github        string `json:"github,omitempty" validate:"omitempty,http_url"`
	Documentation string `json:"documentation,omitempty" validate:"omitempty,http_url"`
	CaseStudy     string `json:"case_study,omitempty" validate:"omitempty,http_url"`
	Demo          string `json:"demo,omitempty" validate:"omitempty,http_url"`
}

type TechnologyPayload struct {
	SkillID uint   `json:"skill_id" validate:"required"`
	Level   string `json:"level,omitempty"`
}

type ProjectSkillPayload struct {
	SkillID      uint   `json:"skill_id" validate:"required"`
	Contribution string `json:"contribution,omitempty"`
	Complexity   string `json:"complexity,omitempty"`
}

type ImagePayload struct {
	URL     string `json:"url" validate:"required"`
	AltText string `json:"alt_text,omitempty"`
	Caption string `json:"caption" validate:"required"`
	Type    string `json:"type" validate:"required"`
	Order   int    `json:"order"`
}

type FeaturePayload struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	IconKey     string `json:"icon_key,omitempty"`
	Status      string `json:"status" validate:"omitempty,oneof=completed 'in progress' planned"`
	Impact      string `json:"impact,omitempty"`
	Order       int    `json:"order"`
}

type RoadmapPhasePayload struct {
	Phase        string   `json:"phase" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Duration     string   `json:"duration" validate:"required"`
	Status       string   `json:"status" validate:"required,oneof=completed 'in progress' 'not started'"`
	Deliverables []string `json:"deliverables"`
	Challenges   []string `json:"challenges"`
	Solutions    []string `json:"solutions"`
	Order        int      `json:"order"`
}

type StatPayload struct {
	Key        string `json:"key" validate:"required"`
	Value      string `json:"value" validate:"required"`
	IsListStat bool   `json:"is_list_stat"`
	Order      int    `json:"order"`
}

type MetricPayload struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
	Order int    `json:"order"`
}

type TestimonialPayload struct {
	Name    string `json:"name" validate:"required"`
	Role    string `json:"role" validate:"required"`
	Company string `json:"company" validate:"required"`
	Quote   string `json:"quote" validate:"required"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Order   int    `json:"order"`
}

// ProjectPayload is the body of create and full-replace requests
type ProjectPayload struct {
	Title                    string                `json:"title" validate:"required"`
	Subtitle                 string                `json:"subtitle,omitempty"`
	Category                 string                `json:"category" validate:"required"`
	Type                     string                `json:"type" validate:"required"`
	Description              string                `json:"description" validate:"required"`
	LongDescription          string                `json:"long_description,omitempty"`
	Timeline                 string                `json:"timeline,omitempty"`
	Team                     string                `json:"team,omitempty"`
	Role                     string                `json:"role,omitempty"`
	Budget                   string                `json:"budget,omitempty"`
	Client                   string                `json:"client,omitempty"`
	CoverImageURL            string                `json:"cover_image_url,omitempty" validate:"omitempty,http_url"`
	Highlight                string                `json:"highlight,omitempty"`
	HighlightBackgroundColor string                `json:"highlight_background_color,omitempty"`
	Links                    LinksPayload          `json:"links"`
	Technologies             []TechnologyPayload   `json:"technologies" validate:"dive"`
	Images                   []ImagePayload        `json:"images" validate:"dive"`
	Features                 []FeaturePayload      `json:"features" validate:"dive"`
	Roadmap                  []RoadmapPhasePayload `json:"roadmap" validate:"dive"`
	Stats                    []StatPayload         `json:"stats" validate:"dive"`
	Metrics                  []MetricPayload       `json:"metrics" validate:"dive"`
	Testimonials             []TestimonialPayload  `json:"testimonials" validate:"dive"`
	Skills                   []ProjectSkillPayload `json:"skills" validate:"dive"`
}

// scalarColumns maps the scalar keys of a project body to their columns.
// required fields may not be blank, url fields must be http(s) URLs when set.
var scalarColumns = map[string]struct {
	column   string
	required bool
	url      bool
}{
	"title":                      {column: "title", required: true},
	"subtitle":                   {column: "subtitle"},
	"category":                   {column: "category", required: true},
	"type":                       {column: "type", required: true},
	"description":                {column: "description", required: true},
	"long_description":           {column: "long_description"},
	"timeline":                   {column: "timeline"},
	"team":                       {column: "team"},
	"role":                       {column: "role"},
	"budget":                     {column: "budget"},
	"client":                     {column: "client"},
	"cover_image_url":            {column: "cover_image_url", url: true},
	"highlight":                  {column: "highlight"},
	"highlight_background_color": {column: "highlight_background_color"},
}

func (l LinksPayload) model() models.ProjectLinks {
	return models.ProjectLinks{
		Live:          strings.TrimSpace(l.Live),
		Github:        strings.TrimSpace(l.Github),
		Documentation: strings.TrimSpace(l.Documentation),
		CaseStudy:     strings.TrimSpace(l.CaseStudy),
		Demo:          strings.TrimSpace(l.Demo),
	}
}

func technologyModels(rows []TechnologyPayload) []models.ProjectTechnology {
	out := make([]models.ProjectTechnology, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ProjectTechnology{SkillID: row.SkillID, Level: row.Level})
	}
	return out
}

func projectSkillModels(rows []ProjectSkillPayload) []models.ProjectSkill {
	out := make([]models.ProjectSkill, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ProjectSkill{SkillID: row.SkillID, Contribution: row.Contribution, Complexity: row.Complexity})
	}
	return out
}

func imageModels(rows []ImagePayload) []models.ProjectImage {
	out := make([]models.ProjectImage, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ProjectImage{URL: row.URL, AltText: row.AltText, Caption: row.Caption, Type: row.Type, DisplayOrder: row.Order})
	}
	return out
}

func featureModels(rows []FeaturePayload) []models.ProjectFeature {
	out := make([]models.ProjectFeature, 0, len(rows))
	for _, row := range rows {
		status := row.Status
		if status == "" {
			status = "completed"
		}
		out = append(out, models.ProjectFeature{
			Title:        row.Title,
			Description:  row.Description,
			IconKey:      row.IconKey,
			Status:       status,
			Impact:       row.Impact,
			DisplayOrder: row.Order,
		})
	}
	return out
}

func roadmapModels(rows []RoadmapPhasePayload) []models.ProjectRoadmapPhase {
	out := make([]models.ProjectRoadmapPhase, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ProjectRoadmapPhase{
			Phase:        row.Phase,
			Description:  row.Description,
			Duration:     row.Duration,
			Status:       row.Status,
			Deliverables: datatypes.JSONSlice[string](nonNil(row.Deliverables)),
			Challenges:   datatypes.JSONSlice[string](nonNil(row.Challenges)),
			Solutions:    datatypes.JSONSlice[string](nonNil(row.Solutions)),
			DisplayOrder: row.Order,
		})
	}
	return out
}

func statModels(rows []StatPayload) []models.ProjectStat {
	out := make([]models.ProjectStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ProjectStat{Key: row.Key, Value: row.Value, IsListStat: row.IsListStat, DisplayOrder: row.Order})
	}
	return out
}

func metricModels(rows []MetricPayload) []models.ProjectMetric {
	out := make([]models.ProjectMetric, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ProjectMetric{Key: row.Key, Value: row.Value, DisplayOrder: row.Order})
	}
	return out
}

func testimonialModels(rows []TestimonialPayload) []models.ProjectTestimonial {
	out := make([]models.ProjectTestimonial, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ProjectTestimonial{
			Name:         row.Name,
			Role:         row.Role,
			Company:      row.Company,
			Quote:        row.Quote,
			Rating:       row.Rating,
			DisplayOrder: row.Order,
		})
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// model converts a validated payload into a project row with all sections
func (p ProjectPayload) model() models.Project {
	return models.Project{
		Title:                    strings.TrimSpace(p.Title),
		Subtitle:                 p.Subtitle,
		Category:                 strings.TrimSpace(p.Category),
		Type:                     strings.TrimSpace(p.Type),
		Description:              p.Description,
		LongDescription:          p.LongDescription,
		Timeline:                 p.Timeline,
		Team:                     p.Team,
		Role:                     p.Role,
		Budget:                   p.Budget,
		Client:                   p.Client,
		CoverImageURL:            strings.TrimSpace(p.CoverImageURL),
		Highlight:                p.Highlight,
		HighlightBackgroundColor: p.HighlightBackgroundColor,
		Links:                    datatypes.NewJSONType(p.Links.model()),
		Technologies:             technologyModels(p.Technologies),
		Images:                   imageModels(p.Images),
		Features:                 featureModels(p.Features),
		Roadmap:                  roadmapModels(p.Roadmap),
		Stats:                    statModels(p.Stats),
		Metrics:                  metricModels(p.Metrics),
		Testimonials:             testimonialModels(p.Testimonials),
		Skills:                   projectSkillModels(p.Skills),
	}
}

// TechnologyResponse is a technology entry expanded with its skill
type TechnologyResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Level    string `json:"level,omitempty"`
}

// ProjectSkillResponse is a contribution entry expanded with its skill
type ProjectSkillResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`
	Contribution string `json:"contribution,omitempty"`
	Complexity   string `json:"complexity,omitempty"`
}

// ProjectResponse is the server shape of a project
type ProjectResponse struct {
	ID                       uint                         `json:"id"`
	Title                    string                       `json:"title"`
	Subtitle                 string                       `json:"subtitle,omitempty"`
	Category                 string                       `json:"category"`
	Type                     string                       `json:"type"`
	Description              string                       `json:"description"`
	LongDescription          string                       `json:"long_description,omitempty"`
	Timeline                 string                       `json:"timeline,omitempty"`
	Team                     string                       `json:"team,omitempty"`
	Role                     string                       `json:"role,omitempty"`
	Budget                   string                       `json:"budget,omitempty"`
	Client                   string                       `json:"client,omitempty"`
	CoverImageURL            string                       `json:"cover_image_url,omitempty"`
	Highlight                string                       `json:"highlight,omitempty"`
	HighlightBackgroundColor string                       `json:"highlight_background_color,omitempty"`
	Links                    models.ProjectLinks          `json:"links"`
	Technologies             []TechnologyResponse         `json:"technologies"`
	Images                   []models.ProjectImage        `json:"images"`
	Features                 []models.ProjectFeature      `json:"features"`
	Roadmap                  []models.ProjectRoadmapPhase `json:"roadmap"`
	Stats                    []models.ProjectStat         `json:"stats"`
	Metrics                  []models.ProjectMetric       `json:"metrics"`
	Testimonials             []models.ProjectTestimonial  `json:"testimonials"`
	Skills                   []ProjectSkillResponse       `json:"skills"`
	CreatedAt                time.Time                    `json:"created_at"`
	UpdatedAt                time.Time                    `json:"updated_at"`
}

// ProjectCollection represents multiple projects
type ProjectCollection struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
}

func newProjectResponse(p *models.Project) ProjectResponse {
	technologies := make([]TechnologyResponse, 0, len(p.Technologies))
	for _, t := range p.Technologies {
		technologies = append(technologies, TechnologyResponse{ID: t.SkillID, Name: t.Skill.Name, Category: t.Skill.Category, Level: t.Level})
	}
	skills := make([]ProjectSkillResponse, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, ProjectSkillResponse{
			ID:           s.SkillID,
			Name:         s.Skill.Name,
			Category:     s.Skill.Category,
			Contribution: s.Contribution,
			Complexity:   s.Complexity,
		})
	}

	return ProjectResponse{
		ID:                       p.ID,
		Title:                    p.Title,
		Subtitle:                 p.Subtitle,
		Category:                 p.Category,
		Type:                     p.Type,
		Description:              p.Description,
		LongDescription:          p.LongDescription,
		Timeline:                 p.Timeline,
		Team:                     p.Team,
		Role:                     p.Role,
		Budget:                   p.Budget,
		Client:                   p.Client,
		CoverImageURL:            p.CoverImageURL,
		Highlight:                p.Highlight,
		HighlightBackgroundColor: p.HighlightBackgroundColor,
		Links:                    p.Links.Data(),
		Technologies:             technologies,
		Images:                   byDisplayOrder(p.Images, func(i models.ProjectImage) (int, uint) { return i.DisplayOrder, i.ID }),
		Features:                 byDisplayOrder(p.Features, func(f models.ProjectFeature) (int, uint) { return f.DisplayOrder, f.ID }),
		Roadmap:                  byDisplayOrder(p.Roadmap, func(r models.ProjectRoadmapPhase) (int, uint) { return r.DisplayOrder, r.ID }),
		Stats:                    byDisplayOrder(p.Stats, func(s models.ProjectStat) (int, uint) { return s.DisplayOrder, s.ID }),
		Metrics:                  byDisplayOrder(p.Metrics, func(m models.ProjectMetric) (int, uint) { return m.DisplayOrder, m.ID }),
		Testimonials:             byDisplayOrder(p.Testimonials, func(t models.ProjectTestimonial) (int, uint) { return t.DisplayOrder, t.ID }),
		Skills:                   skills,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
}

// byDisplayOrder sorts rows by their order field; ties keep insertion (id) order
func byDisplayOrder[T any](rows []T, key func(T) (int, uint)) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		oi, idi := key(out[i])
		oj, idj := key(out[j])
		if oi != oj {
			return oi < oj
		}
		return idi < idj
	})
	return out
}
