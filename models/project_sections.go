package models

import "gorm.io/datatypes"

// ProjectImage is a gallery entry of a project
type ProjectImage struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ProjectID    uint   `json:"project_id" gorm:"not null;index:idx_project_image_project_id"`
	URL          string `json:"url" gorm:"type:text;not null"`
	AltText      string `json:"alt_text" gorm:"type:text"`
	Caption      string `json:"caption" gorm:"type:text;not null"`
	Type         string `json:"type" gorm:"type:text;not null"`
	DisplayOrder int    `json:"order" gorm:"column:display_order;not null;default:0"`
}

// ProjectFeature is a feature highlight of a project
type ProjectFeature struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ProjectID    uint   `json:"project_id" gorm:"not null;index:idx_project_feature_project_id"`
	Title        string `json:"title" gorm:"type:text;not null"`
	Description  string `json:"description" gorm:"type:text;not null"`
	IconKey      string `json:"icon_key" gorm:"type:text"`
	Status       string `json:"status" gorm:"type:text;not null;default:'completed'"`
	Impact       string `json:"impact" gorm:"type:text"`
	DisplayOrder int    `json:"order" gorm:"column:display_order;not null;default:0"`
}

// ProjectRoadmapPhase is one phase of a project timeline
type ProjectRoadmapPhase struct {
	ID           uint                        `json:"id" gorm:"primaryKey"`
	ProjectID    uint                        `json:"project_id" gorm:"not null;index:idx_project_roadmap_project_id"`
	Phase        string                      `json:"phase" gorm:"type:text;not null"`
	Description  string                      `json:"description" gorm:"type:text;not null"`
	Duration     string                      `json:"duration" gorm:"type:text;not null"`
	Status       string                      `json:"status" gorm:"type:text;not null"`
	Deliverables datatypes.JSONSlice[string] `json:"deliverables" gorm:"type:jsonb"`
	Challenges   datatypes.JSONSlice[string] `json:"challenges" gorm:"type:jsonb"`
	Solutions    datatypes.JSONSlice[string] `json:"solutions" gorm:"type:jsonb"`
	DisplayOrder int                         `json:"order" gorm:"column:display_order;not null;default:0"`
}

// ProjectStat is a headline figure shown on the case file
type ProjectStat struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ProjectID    uint   `json:"project_id" gorm:"not null;index:idx_project_stat_project_id"`
	Key          string `json:"key" gorm:"column:stat_key;type:text;not null"`
	Value        string `json:"value" gorm:"type:text;not null"`
	IsListStat   bool   `json:"is_list_stat" gorm:"not null;default:false"`
	DisplayOrder int    `json:"order" gorm:"column:display_order;not null;default:0"`
}

// ProjectMetric is a measured outcome of a project
type ProjectMetric struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ProjectID    uint   `json:"project_id" gorm:"not null;index:idx_project_metric_project_id"`
	Key          string `json:"key" gorm:"column:metric_key;type:text;not null"`
	Value        string `json:"value" gorm:"type:text;not null"`
	DisplayOrder int    `json:"order" gorm:"column:display_order;not null;default:0"`
}

// ProjectTestimonial is a client quote attached to a project
type ProjectTestimonial struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ProjectID    uint   `json:"project_id" gorm:"not null;index:idx_project_testimonial_project_id"`
	Name         string `json:"name" gorm:"type:text;not null"`
	Role         string `json:"role" gorm:"type:text;not null"`
	Company      string `json:"company" gorm:"type:text;not null"`
	Quote        string `json:"quote" gorm:"type:text;not null"`
	Rating       int    `json:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	DisplayOrder int    `json:"order" gorm:"column:display_order;not null;default:0"`
}

// Owned is implemented by rows that belong to exactly one project
type Owned interface {
	AttachTo(projectID uint)
}

func (i *ProjectImage) AttachTo(projectID uint)        { i.ID, i.ProjectID = 0, projectID }
func (f *ProjectFeature) AttachTo(projectID uint)      { f.ID, f.ProjectID = 0, projectID }
func (r *ProjectRoadmapPhase) AttachTo(projectID uint) { r.ID, r.ProjectID = 0, projectID }
func (s *ProjectStat) AttachTo(projectID uint)         { s.ID, s.ProjectID = 0, projectID }
func (m *ProjectMetric) AttachTo(projectID uint)       { m.ID, m.ProjectID = 0, projectID }
func (t *ProjectTestimonial) AttachTo(projectID uint)  { t.ID, t.ProjectID = 0, projectID }
