package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Media is an uploaded file kept in object storage
type Media struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ObjectKey   string                      `json:"object_key" gorm:"type:text;not null;uniqueIndex"`
	URL         string                      `json:"url" gorm:"type:text;not null"`
	ContentType string                      `json:"content_type" gorm:"type:text"`
	Size        int64                       `json:"size" gorm:"not null;default:0"`
	AltText     string                      `json:"alt_text" gorm:"type:text"`
	Caption     string                      `json:"caption" gorm:"type:text"`
	Tags        datatypes.JSONSlice[string] `json:"tags" gorm:"type:jsonb"`
	CreatedAt   time.Time                   `json:"created_at"`
}
