package models

import (
	"time"

	"github.com/google/uuid"
)

type Teacher struct {
	UserID   uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	Headline *string   `gorm:"size:255" json:"headline"`
	Bio      *string   `gorm:"type:text" json:"bio"`

	// is_live is derived: it is flipped by the admin verification action and
	// never settable on its own.
	VerificationStatus string  `gorm:"size:20;not null;default:'pending'" json:"verification_status"`
	IsLive             bool    `gorm:"not null;default:false" json:"is_live"`
	MeetingLink        *string `gorm:"size:512" json:"meeting_link"`
	ReviewNotes        *string `gorm:"type:text" json:"review_notes,omitempty"`

	Subjects          []*Subject         `gorm:"many2many:teacher_subjects;" json:"subjects,omitempty"`
	AvailabilitySlots []AvailabilitySlot `gorm:"foreignkey:TeacherID" json:"availability_slots,omitempty"`
	Documents         []Document         `gorm:"foreignkey:TeacherID" json:"documents,omitempty"`
	User              User               `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
