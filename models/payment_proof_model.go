package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentProof is an uploaded receipt for a booking. A booking can accumulate
// several proofs when an earlier upload is rejected and resubmitted.
type PaymentProof struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null" json:"booking_id"`
	FileURL   string    `gorm:"size:512;not null" json:"file_url"`
	FileName  string    `gorm:"size:255;not null" json:"file_name"`

	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	ReviewNotes *string    `gorm:"type:text" json:"review_notes"`
	ReviewedAt  *time.Time `json:"reviewed_at"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"booking,omitempty"`

	CreatedAt time.Time `json:"uploaded_at"`
	UpdatedAt time.Time `json:"-"`
}

func (p *PaymentProof) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
