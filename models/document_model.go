package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null" json:"-"`
	FileURL   string    `gorm:"size:512;not null" json:"file_url"`
	FileName  string    `gorm:"size:255;not null" json:"file_name"`
	DocType   *string   `gorm:"size:50" json:"doc_type"`

	CreatedAt time.Time `json:"uploaded_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
