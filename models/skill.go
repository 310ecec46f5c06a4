package models

import "time"

// Skill is a reusable technology or capability referenced by projects
type Skill struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
	Category         string    `json:"category" gorm:"type:text"`
	ProficiencyLevel string    `json:"proficiency_level" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at"`
}

// ProjectTechnology links a skill to a project's technology stack
type ProjectTechnology struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProjectID uint   `json:"project_id" gorm:"not null;index:idx_project_technology_project_id"`
	SkillID   uint   `json:"skill_id" gorm:"not null;index"`
	Level     string `json:"level" gorm:"type:text"`

	Skill Skill `json:"skill" gorm:"foreignKey:SkillID;references:ID;constraint:OnDelete:CASCADE"`
}

// ProjectSkill records how a skill contributed to a project
type ProjectSkill struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ProjectID    uint   `json:"project_id" gorm:"not null;index:idx_project_skill_project_id"`
	SkillID      uint   `json:"skill_id" gorm:"not null;index"`
	Contribution string `json:"contribution" gorm:"type:text"`
	Complexity   string `json:"complexity" gorm:"type:text"`

	Skill Skill `json:"skill" gorm:"foreignKey:SkillID;references:ID;constraint:OnDelete:CASCADE"`
}

func (t *ProjectTechnology) AttachTo(projectID uint) { t.ID, t.ProjectID, t.Skill = 0, projectID, Skill{} }
func (s *ProjectSkill) AttachTo(projectID uint)      { s.ID, s.ProjectID, s.Skill = 0, projectID, Skill{} }
