package policy

import (
	"testing"

	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanSetBookingStatus(t *testing.T) {
	studentID := uuid.New()
	teacherID := uuid.New()
	booking := &models.Booking{StudentID: studentID, TeacherID: teacherID}

	admin := Caller{UserID: uuid.New(), Role: models.RoleAdmin}
	owningStudent := Caller{UserID: studentID, Role: models.RoleStudent}
	owningTeacher := Caller{UserID: teacherID, Role: models.RoleTeacher}
	otherStudent := Caller{UserID: uuid.New(), Role: models.RoleStudent}
	otherTeacher := Caller{UserID: uuid.New(), Role: models.RoleTeacher}

	allStatuses := []string{
		models.BookingPendingPayment,
		models.BookingPaymentUnderReview,
		models.BookingConfirmed,
		models.BookingCompleted,
		models.BookingCancelled,
	}

	for _, s := range allStatuses {
		assert.True(t, CanSetBookingStatus(admin, booking, s), "admin should set %s", s)
	}

	assert.True(t, CanSetBookingStatus(owningStudent, booking, models.BookingCancelled))
	assert.False(t, CanSetBookingStatus(owningStudent, booking, models.BookingConfirmed))
	assert.False(t, CanSetBookingStatus(owningStudent, booking, models.BookingCompleted))

	assert.True(t, CanSetBookingStatus(owningTeacher, booking, models.BookingConfirmed))
	assert.True(t, CanSetBookingStatus(owningTeacher, booking, models.BookingCompleted))
	assert.False(t, CanSetBookingStatus(owningTeacher, booking, models.BookingCancelled))

	for _, s := range allStatuses {
		assert.False(t, CanSetBookingStatus(otherStudent, booking, s))
		assert.False(t, CanSetBookingStatus(otherTeacher, booking, s))
	}

	assert.False(t, CanSetBookingStatus(admin, booking, "reschedule_requested"))
	assert.False(t, CanSetBookingStatus(admin, booking, ""))
}

func TestCanViewBooking(t *testing.T) {
	studentID := uuid.New()
	teacherID := uuid.New()
	booking := &models.Booking{StudentID: studentID, TeacherID: teacherID}

	assert.True(t, CanViewBooking(Caller{UserID: uuid.New(), Role: models.RoleAdmin}, booking))
	assert.True(t, CanViewBooking(Caller{UserID: studentID, Role: models.RoleStudent}, booking))
	assert.True(t, CanViewBooking(Caller{UserID: teacherID, Role: models.RoleTeacher}, booking))
	assert.False(t, CanViewBooking(Caller{UserID: uuid.New(), Role: models.RoleStudent}, booking))
	// A teacher id reused by a student caller must not grant access.
	assert.False(t, CanViewBooking(Caller{UserID: teacherID, Role: models.RoleStudent}, booking))
}
