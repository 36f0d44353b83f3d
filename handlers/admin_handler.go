package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/notifications"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListPendingApplications(c *fiber.Ctx) error {
	var pending []models.Teacher
	if err := database.DB.
		Preload("User").
		Preload("Documents").
		Where("verification_status = ?", models.VerificationPending).
		Find(&pending).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Database error")
	}

	return utils.Success(c, "Pending applications retrieved", pending)
}

type ReviewApplicationRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Notes    string `json:"notes"`
}

// ReviewTeacherApplication settles a teacher application. verification_status,
// is_live and the role promotion move together in one transaction; is_live is
// never set through any other path.
func ReviewTeacherApplication(c *fiber.Ctx) error {
	teacherUserID := c.Params("teacherId")

	var req ReviewApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	var teacher models.Teacher
	if err := database.DB.Where("user_id = ?", teacherUserID).First(&teacher).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Application not found")
	}

	var user models.User
	if err := database.DB.Where("id = ?", teacherUserID).First(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Associated user not found")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		teacher.VerificationStatus = req.Decision
		teacher.IsLive = req.Decision == models.VerificationApproved
		if req.Notes != "" {
			teacher.ReviewNotes = &req.Notes
		}
		if err := tx.Save(&teacher).Error; err != nil {
			return err
		}

		if req.Decision == models.VerificationApproved {
			user.Role = models.RoleTeacher
			return tx.Save(&user).Error
		}
		return nil
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update application")
	}

	switch req.Decision {
	case models.VerificationApproved:
		go notifications.SendEmail(
			user.FullName,
			user.Email,
			"Your Teacher Application has been Approved!",
			"<h1>Congratulations!</h1><p>Your application has been approved. You can now set your availability and start teaching.</p>",
		)
	case models.VerificationRejected:
		go notifications.SendEmail(
			user.FullName,
			user.Email,
			"Update on Your Teacher Application",
			"<h1>Application Update</h1><p>We regret to inform you that after careful review, your application was not approved at this time.</p>",
		)
	}

	return utils.Success(c, "Application reviewed", teacher)
}

func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Database error")
	}

	return utils.Success(c, "Users retrieved", users)
}

func ToggleUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	user.IsActive = !user.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	return utils.Success(c, "User status updated", user)
}

func AdminGetAllBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	if err := database.DB.
		Preload("Student").
		Preload("Teacher").
		Preload("Subject").
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Database error")
	}

	return utils.Success(c, "Bookings retrieved", bookings)
}

type DashboardAnalyticsResponse struct {
	TotalStudents      int64            `json:"total_students"`
	TotalLiveTeachers  int64            `json:"total_live_teachers"`
	TotalRevenue       float64          `json:"total_revenue"`
	BookingsLast30Days int64            `json:"bookings_last_30_days"`
	PendingProofs      int64            `json:"pending_proofs"`
	RecentBookings     []models.Booking `json:"recent_bookings"`
}

// GetDashboardAnalytics aggregates counts and revenue for the admin dashboard.
// Revenue counts bookings whose payment was verified (confirmed or completed).
func GetDashboardAnalytics(c *fiber.Ctx) error {
	var response DashboardAnalyticsResponse
	var totalRevenue float64

	database.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&response.TotalStudents)

	database.DB.Model(&models.Teacher{}).Where("is_live = ?", true).Count(&response.TotalLiveTeachers)

	database.DB.Model(&models.Booking{}).
		Where("status IN ?", []string{models.BookingConfirmed, models.BookingCompleted}).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&totalRevenue)
	response.TotalRevenue = totalRevenue

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&models.Booking{}).Where("created_at > ?", thirtyDaysAgo).Count(&response.BookingsLast30Days)

	database.DB.Model(&models.PaymentProof{}).Where("status = ?", models.ProofPending).Count(&response.PendingProofs)

	database.DB.Order("created_at desc").Limit(5).Preload("Student").Preload("Teacher").Preload("Subject").Find(&response.RecentBookings)

	return utils.Success(c, "Analytics retrieved", response)
}

// GenerateTransactionReport exports approved payment proofs in a date range
// as CSV for bookkeeping.
func GenerateTransactionReport(c *fiber.Ctx) error {
	startDateStr := c.Query("start_date", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	endDateStr := c.Query("end_date", time.Now().Format("2006-01-02"))

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid start_date format. Use YYYY-MM-DD.")
	}
	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid end_date format. Use YYYY-MM-DD.")
	}
	endDate = endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	var proofs []models.PaymentProof
	database.DB.
		Preload("Booking").
		Preload("Booking.Student").
		Preload("Booking.Subject").
		Where("status = ? AND reviewed_at BETWEEN ? AND ?", models.ProofApproved, startDate, endDate).
		Order("reviewed_at desc").
		Find(&proofs)

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	headers := []string{"Proof ID", "Reviewed At", "Student Name", "Subject", "Amount", "Booking ID"}
	if err := w.Write(headers); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to write CSV header")
	}

	for _, p := range proofs {
		reviewedAt := ""
		if p.ReviewedAt != nil {
			reviewedAt = p.ReviewedAt.Format("2006-01-02 15:04")
		}
		row := []string{
			p.ID.String(),
			reviewedAt,
			p.Booking.Student.FullName,
			p.Booking.Subject.Name,
			fmt.Sprintf("%.2f", p.Booking.TotalAmount),
			p.BookingID.String(),
		}
		if err := w.Write(row); err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to write CSV row")
		}
	}
	w.Flush()

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s_to_%s.csv\"", startDate.Format("2006-01-02"), endDate.Format("2006-01-02")))

	return c.Send(b.Bytes())
}
