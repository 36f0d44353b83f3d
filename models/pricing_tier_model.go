package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PricingTier holds one price per (subject, grade level) pair; the unique index
// keeps at most one active price for any combination.
type PricingTier struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SubjectID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subject_grade" json:"subject_id"`
	GradeLevel   string    `gorm:"size:50;not null;uniqueIndex:idx_subject_grade" json:"grade_level"`
	PricePerHour float64   `gorm:"type:numeric(10,2);not null" json:"price_per_hour"`
}

func (p *PricingTier) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
