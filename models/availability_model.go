package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilitySlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null" json:"-"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
}

func (a *AvailabilitySlot) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
