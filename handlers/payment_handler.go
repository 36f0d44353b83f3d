package handlers

import (
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/notifications"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubmitProofRequest struct {
	FileURL  string `json:"file_url" validate:"required,url"`
	FileName string `json:"file_name" validate:"required"`
}

// SubmitPaymentProof records an uploaded receipt and moves the booking under
// review. The proof insert and the booking status change are one transaction:
// a reviewer can never see a proof whose booking still says pending_payment.
func SubmitPaymentProof(c *fiber.Ctx) error {
	caller := currentCaller(c)
	bookingID := c.Params("bookingId")

	var req SubmitProofRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	// Existence and ownership collapse into one NotFound so a student cannot
	// probe for other students' booking ids.
	var booking models.Booking
	if err := database.DB.
		First(&booking, "id = ? AND student_id = ?", bookingID, caller.UserID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Booking not found")
	}

	var proof models.PaymentProof
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		proof = models.PaymentProof{
			BookingID: booking.ID,
			FileURL:   req.FileURL,
			FileName:  req.FileName,
			Status:    models.ProofPending,
		}
		if err := tx.Create(&proof).Error; err != nil {
			return err
		}

		booking.Status = models.BookingPaymentUnderReview
		return tx.Save(&booking).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to submit payment proof")
	}

	return utils.Created(c, "Payment proof submitted and queued for review", proof)
}

// ListPayments is role-scoped: students see proofs for their bookings,
// teachers for bookings they teach, admins see everything.
func ListPayments(c *fiber.Ctx) error {
	caller := currentCaller(c)

	query := database.DB.
		Preload("Booking").
		Preload("Booking.Subject").
		Joins("JOIN bookings ON bookings.id = payment_proofs.booking_id").
		Order("payment_proofs.created_at desc")

	switch caller.Role {
	case models.RoleStudent:
		query = query.Where("bookings.student_id = ?", caller.UserID)
	case models.RoleTeacher:
		query = query.Where("bookings.teacher_id = ?", caller.UserID)
	default:
		// admins and internal callers see all proofs
	}

	var proofs []models.PaymentProof
	if err := query.Find(&proofs).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load payments")
	}

	return utils.Success(c, "Payments retrieved", proofs)
}

// ListPendingPayments returns the admin review queue, oldest upload first.
func ListPendingPayments(c *fiber.Ctx) error {
	var proofs []models.PaymentProof
	if err := database.DB.
		Preload("Booking").
		Preload("Booking.Student").
		Preload("Booking.Teacher").
		Preload("Booking.Subject").
		Where("status = ?", models.ProofPending).
		Order("created_at asc").
		Find(&proofs).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load pending payments")
	}

	return utils.Success(c, "Pending payments retrieved", proofs)
}

type ReviewPaymentRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Notes    string `json:"notes"`
}

// ReviewPayment resolves a proof and its parent booking in one transaction:
// approved confirms the booking, rejected sends it back to pending_payment so
// the student can resubmit.
func ReviewPayment(c *fiber.Ctx) error {
	proofID := c.Params("proofId")

	var req ReviewPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	var proof models.PaymentProof
	if err := database.DB.First(&proof, "id = ?", proofID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Payment proof not found")
	}

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		proof.Status = req.Decision
		if req.Notes != "" {
			proof.ReviewNotes = &req.Notes
		}
		proof.ReviewedAt = &now
		if err := tx.Save(&proof).Error; err != nil {
			return err
		}

		if err := tx.First(&booking, "id = ?", proof.BookingID).Error; err != nil {
			return err
		}
		if req.Decision == models.ProofApproved {
			booking.Status = models.BookingConfirmed
		} else {
			booking.Status = models.BookingPendingPayment
		}
		return tx.Save(&booking).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to review payment")
	}

	go func() {
		var student models.User
		if err := database.DB.First(&student, "id = ?", booking.StudentID).Error; err != nil {
			return
		}
		if req.Decision == models.ProofApproved {
			notifications.SendEmail(student.FullName, student.Email, "Your Booking is Confirmed!", "<h1>Payment Verified</h1><p>Your payment has been verified and your class is confirmed.</p>")
		} else {
			notifications.SendEmail(student.FullName, student.Email, "Payment Proof Rejected", "<h1>Payment Review</h1><p>Your payment proof could not be verified. Please upload a new proof from your dashboard.</p>")
		}
	}()

	return utils.Success(c, "Payment review recorded", fiber.Map{
		"proof":   proof,
		"booking": booking,
	})
}
