package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProjectLinks holds the optional outbound links of a project
type ProjectLinks struct {
	Live          string `json:"live,omitempty"`
	Github        string `json:"github,omitempty"`
	Documentation string `json:"documentation,omitempty"`
	CaseStudy     string `json:"case_study,omitempty"`
	Demo          string `json:"demo,omitempty"`
}

// Project represents a portfolio case file with its ordered sections
type Project struct {
	ID                       uint                             `json:"id" gorm:"primaryKey"`
	Title                    string                           `json:"title" gorm:"type:text;not null"`
	Subtitle                 string                           `json:"subtitle" gorm:"type:text"`
	Category                 string                           `json:"category" gorm:"type:text;not null;index"`
	Type                     string                           `json:"type" gorm:"type:text;not null;index"`
	Description              string                           `json:"description" gorm:"type:text;not null"`
	LongDescription          string                           `json:"long_description" gorm:"type:text"`
	Timeline                 string                           `json:"timeline" gorm:"type:text"`
	Team                     string                           `json:"team" gorm:"type:text"`
	Role                     string                           `json:"role" gorm:"type:text"`
	Budget                   string                           `json:"budget" gorm:"type:text"`
	Client                   string                           `json:"client" gorm:"type:text"`
	CoverImageURL            string                           `json:"cover_image_url" gorm:"type:text"`
	Highlight                string                           `json:"highlight" gorm:"type:text"`
	HighlightBackgroundColor string                           `json:"highlight_background_color" gorm:"type:text"`
	Links                    datatypes.JSONType[ProjectLinks] `json:"links" gorm:"type:jsonb"`
	CreatedAt                time.Time                        `json:"created_at"`
	UpdatedAt                time.Time                        `json:"updated_at"`

	Technologies []ProjectTechnology   `json:"technologies,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Images       []ProjectImage        `json:"images,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Features     []ProjectFeature      `json:"features,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Roadmap      []ProjectRoadmapPhase `json:"roadmap,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Stats        []ProjectStat         `json:"stats,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Metrics      []ProjectMetric       `json:"metrics,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Testimonials []ProjectTestimonial  `json:"testimonials,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Skills       []ProjectSkill        `json:"skills,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// Associations lists the has-many relations preloaded with a project
var Associations = []string{
	"Technologies.Skill",
	"Images",
	"Features",
	"Roadmap",
	"Stats",
	"Metrics",
	"Testimonials",
	"Skills.Skill",
}
