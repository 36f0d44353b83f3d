package handlers

import (
	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	FullName          *string `json:"full_name"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	GradeLevel        *string `json:"grade_level"`
	GuardianContact   *string `json:"guardian_contact"`
	Location          *string `json:"location"`
}

func GetProfile(c *fiber.Ctx) error {
	caller := currentCaller(c)

	var user models.User
	if err := database.DB.Where("id = ?", caller.UserID).First(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	payload := fiber.Map{"user": user}

	switch user.Role {
	case models.RoleStudent:
		var student models.Student
		if err := database.DB.Where("user_id = ?", user.ID).First(&student).Error; err == nil {
			payload["student_profile"] = student
		}
	case models.RoleTeacher:
		var teacher models.Teacher
		if err := database.DB.
			Preload("Subjects").
			Where("user_id = ?", user.ID).
			First(&teacher).Error; err == nil {
			payload["teacher_profile"] = teacher
		}
	}

	return utils.Success(c, "Profile retrieved", payload)
}

func UpdateProfile(c *fiber.Ctx) error {
	caller := currentCaller(c)

	var user models.User
	if err := database.DB.Where("id = ?", caller.UserID).First(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = req.ProfilePictureURL
	}
	if err := database.DB.Save(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	// Student-profile fields travel in the same request. A grade change here
	// does not touch existing bookings; they keep their grade snapshot.
	if user.Role == models.RoleStudent {
		var student models.Student
		if err := database.DB.Where("user_id = ?", user.ID).First(&student).Error; err == nil {
			if req.GradeLevel != nil {
				student.GradeLevel = *req.GradeLevel
			}
			if req.GuardianContact != nil {
				student.GuardianContact = req.GuardianContact
			}
			if req.Location != nil {
				student.Location = req.Location
			}
			if err := database.DB.Save(&student).Error; err != nil {
				return utils.Error(c, fiber.StatusInternalServerError, "Failed to update student profile")
			}
		}
	}

	return utils.Success(c, "Profile updated", user)
}
