package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TeacherApplicationRequest struct {
	Headline string `json:"headline" validate:"required"`
	Bio      string `json:"bio" validate:"required"`
}

// ApplyToBeATeacher opens a pending teacher profile. The caller keeps their
// student role until an admin approves the application.
func ApplyToBeATeacher(c *fiber.Ctx) error {
	caller := currentCaller(c)

	var req TeacherApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	var existing models.Teacher
	err := database.DB.Where("user_id = ?", caller.UserID).First(&existing).Error
	if err == nil {
		return utils.Error(c, fiber.StatusBadRequest, "You have already submitted an application")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Error(c, fiber.StatusInternalServerError, "Database error")
	}

	application := models.Teacher{
		UserID:             caller.UserID,
		Headline:           &req.Headline,
		Bio:                &req.Bio,
		VerificationStatus: models.VerificationPending,
	}
	if err := database.DB.Create(&application).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create application")
	}

	return utils.Created(c, "Application submitted for review", application)
}

// ListTeachers is the public directory: only approved, live teachers appear.
func ListTeachers(c *fiber.Ctx) error {
	var teachers []models.Teacher
	if err := database.DB.
		Preload("User").
		Preload("Subjects").
		Where("is_live = ?", true).
		Find(&teachers).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load teachers")
	}

	return utils.Success(c, "Teachers retrieved", teachers)
}

func GetTeacherByID(c *fiber.Ctx) error {
	teacherID := c.Params("teacherId")

	var teacher models.Teacher
	if err := database.DB.
		Preload("User").
		Preload("Subjects").
		Preload("AvailabilitySlots").
		First(&teacher, "user_id = ? AND is_live = ?", teacherID, true).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Teacher not found")
	}

	return utils.Success(c, "Teacher retrieved", teacher)
}

type AvailabilitySlotInput struct {
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type ReplaceAvailabilityRequest struct {
	Slots []AvailabilitySlotInput `json:"slots" validate:"required,dive"`
}

// ReplaceAvailability swaps the teacher's whole availability set in one
// transaction so readers never observe a half-replaced schedule.
func ReplaceAvailability(c *fiber.Ctx) error {
	caller := currentCaller(c)

	var req ReplaceAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	newSlots := make([]models.AvailabilitySlot, 0, len(req.Slots))
	for _, s := range req.Slots {
		start, _ := time.Parse(time.RFC3339, s.StartTime)
		end, _ := time.Parse(time.RFC3339, s.EndTime)
		if !start.Before(end) {
			return utils.Error(c, fiber.StatusBadRequest, "Start time must be before end time")
		}
		newSlots = append(newSlots, models.AvailabilitySlot{
			TeacherID: caller.UserID,
			StartTime: start,
			EndTime:   end,
		})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("teacher_id = ?", caller.UserID).Delete(&models.AvailabilitySlot{}).Error; err != nil {
			return err
		}
		if len(newSlots) == 0 {
			return nil
		}
		return tx.Create(&newSlots).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update availability")
	}

	return utils.Success(c, "Availability updated", newSlots)
}

func GetMyAvailability(c *fiber.Ctx) error {
	caller := currentCaller(c)

	var slots []models.AvailabilitySlot
	if err := database.DB.
		Where("teacher_id = ?", caller.UserID).
		Order("start_time asc").
		Find(&slots).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load availability")
	}

	return utils.Success(c, "Availability retrieved", slots)
}

type AddDocumentRequest struct {
	FileURL  string  `json:"file_url" validate:"required,url"`
	FileName string  `json:"file_name" validate:"required"`
	DocType  *string `json:"doc_type,omitempty"`
}

func AddDocument(c *fiber.Ctx) error {
	caller := currentCaller(c)

	var req AddDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	doc := models.Document{
		TeacherID: caller.UserID,
		FileURL:   req.FileURL,
		FileName:  req.FileName,
		DocType:   req.DocType,
	}
	if err := database.DB.Create(&doc).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to save document")
	}

	return utils.Created(c, "Document recorded", doc)
}

func GetMyDocuments(c *fiber.Ctx) error {
	caller := currentCaller(c)

	var docs []models.Document
	if err := database.DB.Where("teacher_id = ?", caller.UserID).Find(&docs).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load documents")
	}

	return utils.Success(c, "Documents retrieved", docs)
}

type AddSubjectRequest struct {
	SubjectID string `json:"subject_id" validate:"required,uuid"`
}

func AddSubjectToProfile(c *fiber.Ctx) error {
	caller := currentCaller(c)

	var req AddSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	var teacher models.Teacher
	if err := database.DB.Where("user_id = ?", caller.UserID).First(&teacher).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Teacher profile not found")
	}

	var subject models.Subject
	if err := database.DB.Where("id = ?", req.SubjectID).First(&subject).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Subject not found")
	}

	if err := database.DB.Model(&teacher).Association("Subjects").Append(&subject); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to add subject")
	}

	return utils.Success(c, "Subject added to profile", nil)
}

func RemoveSubjectFromProfile(c *fiber.Ctx) error {
	caller := currentCaller(c)
	subjectID := c.Params("subjectId")

	var teacher models.Teacher
	if err := database.DB.Where("user_id = ?", caller.UserID).First(&teacher).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Teacher profile not found")
	}

	var subject models.Subject
	if err := database.DB.Where("id = ?", subjectID).First(&subject).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Subject not found")
	}

	if err := database.DB.Model(&teacher).Association("Subjects").Delete(&subject); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to remove subject")
	}

	return utils.Success(c, "Subject removed from profile", nil)
}

type UpdateMeetingLinkRequest struct {
	MeetingLink string `json:"meeting_link" validate:"required,url"`
}

// UpdateMeetingLink changes the link new bookings will snapshot. Existing
// bookings keep the link they were created with.
func UpdateMeetingLink(c *fiber.Ctx) error {
	caller := currentCaller(c)

	var req UpdateMeetingLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	var teacher models.Teacher
	if err := database.DB.Where("user_id = ?", caller.UserID).First(&teacher).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Teacher profile not found")
	}

	teacher.MeetingLink = &req.MeetingLink
	if err := database.DB.Save(&teacher).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update meeting link")
	}

	return utils.Success(c, "Meeting link updated", teacher)
}
