package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subject struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:100;not null;unique" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	ImageURL    *string   `gorm:"size:512" json:"image_url"`

	// Soft-delete flag: inactive subjects disappear from public listings but
	// stay referenced by historical bookings.
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	PricingTiers []PricingTier `gorm:"foreignkey:SubjectID" json:"pricing_tiers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
