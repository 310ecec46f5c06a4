package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/bsd-portfolio/models"
	"gorm.io/gorm"
)

type MediaRepo struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) *MediaRepo {
	return &MediaRepo{db}
}

// FindAll returns all media, newest first
func (r *MediaRepo) FindAll() ([]*models.Media, error) {
	var media []*models.Media
	err := r.db.Order("created_at DESC").Find(&media).Error
	return media, err
}

// Count returns the number of stored media records
func (r *MediaRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Media{}).Count(&count).Error
	return count, err
}

// FindByID returns a media record by its ID
func (r *MediaRepo) FindByID(id uuid.UUID) (*models.Media, error) {
	var media models.Media
	if err := r.db.First(&media, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

// Add inserts a new media record
func (r *MediaRepo) Add(media *models.Media) error {
	return r.db.Create(media).Error
}

// Delete removes a media record by id
func (r *MediaRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Media{}, "id = ?", id).Error
}
