package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	UserID          uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	GradeLevel      string    `gorm:"size:50;not null" json:"grade_level"`
	GuardianContact *string   `gorm:"size:100" json:"guardian_contact"`
	Location        *string   `gorm:"size:255" json:"location"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
