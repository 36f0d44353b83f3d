package handlers

import (
	"math"
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/notifications"
	"github.com/anjiri1684/tutor_marketplace/policy"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	TeacherID       string  `json:"teacher_id" validate:"required,uuid"`
	SubjectID       string  `json:"subject_id" validate:"required,uuid"`
	ScheduledAt     string  `json:"scheduled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=30,max=240"`
	Notes           *string `json:"notes,omitempty"`
}

// CreateBooking prices a new booking off the pricing tier for the student's
// grade level and freezes that price on the row. A subject with no tier for
// the student's grade cannot be booked.
func CreateBooking(c *fiber.Ctx) error {
	caller := currentCaller(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}
	teacherID, _ := uuid.Parse(req.TeacherID)
	subjectID, _ := uuid.Parse(req.SubjectID)
	scheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledAt)

	var student models.Student
	if err := database.DB.First(&student, "user_id = ?", caller.UserID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Student profile not found")
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, "user_id = ?", teacherID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Teacher not found")
	}

	var tier models.PricingTier
	if err := database.DB.
		Where("subject_id = ? AND grade_level = ?", subjectID, student.GradeLevel).
		First(&tier).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "No pricing available for this subject and grade level")
	}

	totalAmount := math.Round(tier.PricePerHour * float64(req.DurationMinutes) / 60)

	booking := models.Booking{
		StudentID:       student.UserID,
		TeacherID:       teacher.UserID,
		SubjectID:       subjectID,
		GradeLevel:      student.GradeLevel,
		ScheduledAt:     scheduledAt,
		DurationMinutes: req.DurationMinutes,
		PricePerHour:    tier.PricePerHour,
		TotalAmount:     totalAmount,
		Status:          models.BookingPendingPayment,
		MeetingLink:     teacher.MeetingLink,
		Notes:           req.Notes,
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create booking")
	}

	go func() {
		var parties []models.User
		if err := database.DB.Where("id IN ?", []uuid.UUID{booking.StudentID, booking.TeacherID}).Find(&parties).Error; err != nil {
			return
		}
		for _, u := range parties {
			if u.ID == booking.StudentID {
				notifications.SendEmail(u.FullName, u.Email, "Booking Received", "<h1>Booking Received</h1><p>Your booking has been created. Upload your payment proof to confirm your class.</p>")
			} else {
				notifications.SendEmail(u.FullName, u.Email, "New Booking Request", "<h1>New Booking</h1><p>A student has booked a class with you. It will be confirmed once their payment is verified.</p>")
			}
		}
	}()

	return utils.Created(c, "Booking created. Please upload your payment proof.", booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	caller := currentCaller(c)

	query := database.DB.
		Preload("Student").
		Preload("Teacher").
		Preload("Subject").
		Order("created_at desc")

	switch caller.Role {
	case models.RoleStudent:
		query = query.Where("student_id = ?", caller.UserID)
	case models.RoleTeacher:
		query = query.Where("teacher_id = ?", caller.UserID)
	case models.RoleAdmin:
		// admins see every booking
	default:
		return utils.Error(c, fiber.StatusForbidden, "Forbidden")
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load bookings")
	}

	return utils.Success(c, "Bookings retrieved", bookings)
}

func GetBookingByID(c *fiber.Ctx) error {
	caller := currentCaller(c)
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.
		Preload("Student").
		Preload("Teacher").
		Preload("Subject").
		First(&booking, "id = ?", bookingID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Booking not found")
	}

	if !policy.CanViewBooking(caller, &booking) {
		return utils.Error(c, fiber.StatusForbidden, "You are not a party to this booking")
	}

	return utils.Success(c, "Booking retrieved", booking)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateBookingStatus applies the role matrix: admins may set any status, the
// booking's student may cancel, the booking's teacher may confirm or complete.
// The booking's current status is not a gate; see DESIGN.md.
func UpdateBookingStatus(c *fiber.Ctx) error {
	caller := currentCaller(c)
	bookingID := c.Params("bookingId")

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}
	if !models.IsValidBookingStatus(req.Status) {
		return utils.Error(c, fiber.StatusBadRequest, "Unrecognized booking status")
	}

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Booking not found")
	}

	if !policy.CanSetBookingStatus(caller, &booking, req.Status) {
		return utils.Error(c, fiber.StatusForbidden, "You are not allowed to set this status")
	}

	booking.Status = req.Status
	if err := database.DB.Save(&booking).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update booking status")
	}

	return utils.Success(c, "Booking status updated", booking)
}

// GetUpcomingClasses lists the caller's confirmed bookings that have not
// started yet, soonest first.
func GetUpcomingClasses(c *fiber.Ctx) error {
	caller := currentCaller(c)

	query := database.DB.
		Preload("Student").
		Preload("Teacher").
		Preload("Subject").
		Where("status = ? AND scheduled_at > ?", models.BookingConfirmed, time.Now()).
		Order("scheduled_at asc")

	switch caller.Role {
	case models.RoleStudent:
		query = query.Where("student_id = ?", caller.UserID)
	case models.RoleTeacher:
		query = query.Where("teacher_id = ?", caller.UserID)
	case models.RoleAdmin:
	default:
		return utils.Error(c, fiber.StatusForbidden, "Forbidden")
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load upcoming classes")
	}

	return utils.Success(c, "Upcoming classes retrieved", bookings)
}
