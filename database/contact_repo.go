package database

import (
	"github.com/rpupo63/bsd-portfolio/models"
	"gorm.io/gorm"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// FindAll returns contact submissions, newest first, optionally only unread ones
func (r *ContactRepo) FindAll(unreadOnly bool) ([]*models.ContactSubmission, error) {
	var submissions []*models.ContactSubmission
	tx := r.db.Order("created_at DESC")
	if unreadOnly {
		tx = tx.Where("read = ?", false)
	}
	err := tx.Find(&submissions).Error
	return submissions, err
}

// Count returns the number of submissions, optionally only unread ones
func (r *ContactRepo) Count(unreadOnly bool) (int64, error) {
	var count int64
	tx := r.db.Model(&models.ContactSubmission{})
	if unreadOnly {
		tx = tx.Where("read = ?", false)
	}
	err := tx.Count(&count).Error
	return count, err
}

// FindByID returns a contact submission by its ID
func (r *ContactRepo) FindByID(id uint) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	if err := r.db.First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// Add inserts a new contact submission
func (r *ContactRepo) Add(submission *models.ContactSubmission) error {
	return r.db.Create(submission).Error
}

// SetRead flags a submission as read or unread
func (r *ContactRepo) SetRead(id uint, read bool) error {
	return r.db.Model(&models.ContactSubmission{ID: id}).Update("read", read).Error
}

// Delete removes a contact submission by id
func (r *ContactRepo) Delete(id uint) error {
	return r.db.Delete(&models.ContactSubmission{}, id).Error
}
