package database

import (
	"github.com/rpupo63/bsd-portfolio/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills ordered by name
func (r *SkillRepo) FindAll() ([]*models.Skill, error) {
	var skills []*models.Skill
	err := r.db.Order("name ASC").Find(&skills).Error
	return skills, err
}

// Count returns the number of stored skills
func (r *SkillRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Skill{}).Count(&count).Error
	return count, err
}

// CountByIDs returns how many of the given skill ids exist
func (r *SkillRepo) CountByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Skill{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// Add inserts a new skill into the database
func (r *SkillRepo) Add(skill *models.Skill) error {
	return r.db.Create(skill).Error
}
