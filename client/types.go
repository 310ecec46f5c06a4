package client

import "time"

// Links are the named outbound URLs of a project
type Links struct {
	Live          string `json:"live,omitempty" yaml:"live,omitempty"`
	Github        string `json:"github,omitempty" yaml:"github,omitempty"`
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	CaseStudy     string `json:"case_study,omitempty" yaml:"case_study,omitempty"`
	Demo          string `json:"demo,omitempty" yaml:"demo,omitempty"`
}

// Technology is a request-side technology entry
type Technology struct {
	SkillID uint   `json:"skill_id" yaml:"skill_id"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty"`
}

// ProjectSkill is a request-side contribution record
type ProjectSkill struct {
	SkillID      uint   `json:"skill_id" yaml:"skill_id"`
	Contribution string `json:"contribution,omitempty" yaml:"contribution,omitempty"`
	Complexity   string `json:"complexity,omitempty" yaml:"complexity,omitempty"`
}

type Image struct {
	URL     string `json:"url" yaml:"url"`
	AltText string `json:"alt_text,omitempty" yaml:"alt_text,omitempty"`
	Caption string `json:"caption" yaml:"caption"`
	Type    string `json:"type" yaml:"type"`
	Order   int    `json:"order" yaml:"order"`
}

type Feature struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	IconKey     string `json:"icon_key,omitempty" yaml:"icon_key,omitempty"`
	Status      string `json:"status" yaml:"status"`
	Impact      string `json:"impact,omitempty" yaml:"impact,omitempty"`
	Order       int    `json:"order" yaml:"order"`
}

type RoadmapPhase struct {
	Phase        string   `json:"phase" yaml:"phase"`
	Description  string   `json:"description" yaml:"description"`
	Duration     string   `json:"duration" yaml:"duration"`
	Status       string   `json:"status" yaml:"status"`
	Deliverables []string `json:"deliverables" yaml:"deliverables"`
	Challenges   []string `json:"challenges" yaml:"challenges"`
	Solutions    []string `json:"solutions" yaml:"solutions"`
	Order        int      `json:"order" yaml:"order"`
}

type Stat struct {
	Key        string `json:"key" yaml:"key"`
	Value      string `json:"value" yaml:"value"`
	IsListStat bool   `json:"is_list_stat" yaml:"is_list_stat"`
	Order      int    `json:"order" yaml:"order"`
}

type Metric struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Order int    `json:"order" yaml:"order"`
}

type Testimonial struct {
	Name    string `json:"name" yaml:"name"`
	Role    string `json:"role" yaml:"role"`
	Company string `json:"company" yaml:"company"`
	Quote   string `json:"quote" yaml:"quote"`
	Rating  int    `json:"rating" yaml:"rating"`
	Order   int    `json:"order" yaml:"order"`
}

// SkillRef is a technology or contribution as the server returns it, keyed by the skill's id
type SkillRef struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`
	Level        string `json:"level,omitempty"`
	Contribution string `json:"contribution,omitempty"`
	Complexity   string `json:"complexity,omitempty"`
}

// Project is the server shape of a stored project
type Project struct {
	ID                       uint64         `json:"id"`
	Title                    string         `json:"title"`
	Subtitle                 string         `json:"subtitle,omitempty"`
	Category                 string         `json:"category"`
	Type                     string         `json:"type"`
	Description              string         `json:"description"`
	LongDescription          string         `json:"long_description,omitempty"`
	Timeline                 string         `json:"timeline,omitempty"`
	Team                     string         `json:"team,omitempty"`
	Role                     string         `json:"role,omitempty"`
	Budget                   string         `json:"budget,omitempty"`
	Client                   string         `json:"client,omitempty"`
	CoverImageURL            string         `json:"cover_image_url,omitempty"`
	Highlight                string         `json:"highlight,omitempty"`
	HighlightBackgroundColor string         `json:"highlight_background_color,omitempty"`
	Links                    Links          `json:"links"`
	Technologies             []SkillRef     `json:"technologies"`
	Images                   []Image        `json:"images"`
	Features                 []Feature      `json:"features"`
	Roadmap                  []RoadmapPhase `json:"roadmap"`
	Stats                    []Stat         `json:"stats"`
	Metrics                  []Metric       `json:"metrics"`
	Testimonials             []Testimonial  `json:"testimonials"`
	Skills                   []SkillRef     `json:"skills"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
}

type Skill struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category,omitempty"`
	ProficiencyLevel string `json:"proficiency_level,omitempty"`
}

// NewSkill is the body of a create-skill call
type NewSkill struct {
	Name             string `json:"name"`
	Category         string `json:"category,omitempty"`
	ProficiencyLevel string `json:"proficiency_level,omitempty"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TypeOption is a project type, with a count when it came from the server listing
type TypeOption struct {
	Name  string `json:"name"`
	Count int64  `json:"count,omitempty"`
}

// Upload is one image handed to UploadImage
type Upload struct {
	Filename    string
	ContentType string
	AltText     string
	Caption     string
	Tags        []string
}

// UploadedImage is the result of an upload; URL is resolved from the first known key present
type UploadedImage struct {
	URL  string
	Data map[string]any
}
