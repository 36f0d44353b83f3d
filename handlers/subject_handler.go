package handlers

import (
	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PricingTierInput struct {
	GradeLevel   string  `json:"grade_level" validate:"required"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
}

type CreateSubjectRequest struct {
	Name         string             `json:"name" validate:"required,min=2"`
	Description  *string            `json:"description,omitempty"`
	ImageURL     *string            `json:"image_url,omitempty"`
	PricingTiers []PricingTierInput `json:"pricing_tiers" validate:"dive"`
}

// CreateSubject inserts the subject and its initial tiers as one unit.
func CreateSubject(c *fiber.Ctx) error {
	var req CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	subject := models.Subject{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&subject).Error; err != nil {
			return err
		}
		for _, t := range req.PricingTiers {
			tier := models.PricingTier{
				SubjectID:    subject.ID,
				GradeLevel:   t.GradeLevel,
				PricePerHour: t.PricePerHour,
			}
			if err := tx.Create(&tier).Error; err != nil {
				return err
			}
			subject.PricingTiers = append(subject.PricingTiers, tier)
		}
		return nil
	})
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Failed to create subject: "+err.Error())
	}

	return utils.Created(c, "Subject created", subject)
}

// ListSubjects serves the public catalog: active subjects with their tiers.
func ListSubjects(c *fiber.Ctx) error {
	var subjects []models.Subject
	if err := database.DB.
		Preload("PricingTiers").
		Where("is_active = ?", true).
		Order("name asc").
		Find(&subjects).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load subjects")
	}

	return utils.Success(c, "Subjects retrieved", subjects)
}

func GetSubjectByID(c *fiber.Ctx) error {
	subjectID := c.Params("subjectId")

	var subject models.Subject
	if err := database.DB.
		Preload("PricingTiers").
		First(&subject, "id = ? AND is_active = ?", subjectID, true).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Subject not found")
	}

	return utils.Success(c, "Subject retrieved", subject)
}

type UpdateSubjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func UpdateSubject(c *fiber.Ctx) error {
	subjectID := c.Params("subjectId")

	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Subject not found")
	}

	var req UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Description != nil {
		subject.Description = req.Description
	}
	if req.ImageURL != nil {
		subject.ImageURL = req.ImageURL
	}
	// reactivation path for soft-deleted subjects
	if req.IsActive != nil {
		subject.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&subject).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update subject")
	}

	return utils.Success(c, "Subject updated", subject)
}

// DeactivateSubject soft-deletes: the subject leaves the public catalog but
// historical bookings keep referencing it.
func DeactivateSubject(c *fiber.Ctx) error {
	subjectID := c.Params("subjectId")

	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Subject not found")
	}

	subject.IsActive = false
	if err := database.DB.Save(&subject).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to deactivate subject")
	}

	return utils.Success(c, "Subject deactivated", subject)
}

type CreateTierRequest struct {
	GradeLevel   string  `json:"grade_level" validate:"required"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
}

func CreatePricingTier(c *fiber.Ctx) error {
	subjectID := c.Params("subjectId")

	var req CreateTierRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Subject not found")
	}

	tier := models.PricingTier{
		SubjectID:    subject.ID,
		GradeLevel:   req.GradeLevel,
		PricePerHour: req.PricePerHour,
	}
	if err := database.DB.Create(&tier).Error; err != nil {
		// unique (subject, grade_level) violated
		return utils.Error(c, fiber.StatusBadRequest, "A tier for this subject and grade level already exists")
	}

	return utils.Created(c, "Pricing tier created", tier)
}

type UpdateTierRequest struct {
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
}

// UpdatePricingTier changes the price for future bookings only; existing
// bookings keep their frozen price.
func UpdatePricingTier(c *fiber.Ctx) error {
	tierID := c.Params("tierId")

	var req UpdateTierRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	var tier models.PricingTier
	if err := database.DB.First(&tier, "id = ?", tierID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Pricing tier not found")
	}

	tier.PricePerHour = req.PricePerHour
	if err := database.DB.Save(&tier).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update pricing tier")
	}

	return utils.Success(c, "Pricing tier updated", tier)
}

func DeletePricingTier(c *fiber.Ctx) error {
	tierID := c.Params("tierId")

	result := database.DB.Delete(&models.PricingTier{}, "id = ?", tierID)
	if result.Error != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete pricing tier")
	}
	if result.RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Pricing tier not found")
	}

	return utils.Success(c, "Pricing tier deleted", nil)
}
