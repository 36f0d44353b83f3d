package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null" json:"teacher_id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null" json:"subject_id"`

	// Snapshots taken at creation time. GradeLevel is copied from the student
	// profile and the price fields are frozen so a later tier or grade change
	// never reprices an existing booking.
	GradeLevel      string  `gorm:"size:50;not null" json:"grade_level"`
	PricePerHour    float64 `gorm:"type:numeric(10,2);not null" json:"price_per_hour"`
	TotalAmount     float64 `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`

	ScheduledAt time.Time `gorm:"not null" json:"scheduled_at"`
	Status      string    `gorm:"size:30;not null;default:'pending_payment'" json:"status"`
	MeetingLink *string   `gorm:"size:512" json:"meeting_link"`
	Notes       *string   `gorm:"type:text" json:"notes"`

	Student User    `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Teacher User    `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`
	Subject Subject `gorm:"foreignkey:SubjectID" json:"subject,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
