// Package policy holds the role/ownership predicates for the booking workflow.
// Handlers evaluate these once per operation instead of repeating inline checks.
package policy

import (
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/google/uuid"
)

// Caller is the authenticated principal resolved from the JWT.
type Caller struct {
	UserID uuid.UUID
	Role   string
}

func (c Caller) isStudentParty(b *models.Booking) bool {
	return c.Role == models.RoleStudent && b.StudentID == c.UserID
}

func (c Caller) isTeacherParty(b *models.Booking) bool {
	return c.Role == models.RoleTeacher && b.TeacherID == c.UserID
}

// CanViewBooking: admins see everything, parties see their own bookings.
func CanViewBooking(c Caller, b *models.Booking) bool {
	if c.Role == models.RoleAdmin {
		return true
	}
	return c.isStudentParty(b) || c.isTeacherParty(b)
}

// CanSetBookingStatus implements the status authorization matrix:
//
//	admin                     -> any status
//	student owning the booking -> cancelled
//	teacher owning the booking -> confirmed, completed
//
// The current status of the booking is intentionally not consulted; see
// DESIGN.md for the product decision behind that.
func CanSetBookingStatus(c Caller, b *models.Booking, target string) bool {
	if !models.IsValidBookingStatus(target) {
		return false
	}

	switch {
	case c.Role == models.RoleAdmin:
		return true
	case c.isStudentParty(b):
		return target == models.BookingCancelled
	case c.isTeacherParty(b):
		return target == models.BookingConfirmed || target == models.BookingCompleted
	}
	return false
}
