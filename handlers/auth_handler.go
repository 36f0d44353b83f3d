package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	config "github.com/anjiri1684/tutor_marketplace/configs"
	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/anjiri1684/tutor_marketplace/notifications"
	"github.com/anjiri1684/tutor_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	FullName        string  `json:"full_name" validate:"required,min=3"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=6"`
	GradeLevel      string  `json:"grade_level" validate:"required"`
	GuardianContact *string `json:"guardian_contact,omitempty"`
	Location        *string `json:"location,omitempty"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterUser creates a student account: the User row and its Student profile
// commit together or not at all.
func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	var newUser models.User
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		newUser = models.User{
			FullName: req.FullName,
			Email:    req.Email,
			Password: string(hashedPassword),
			Role:     models.RoleStudent,
		}
		if err := tx.Create(&newUser).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.New("email already registered")
			}
			return err
		}

		student := models.Student{
			UserID:          newUser.ID,
			GradeLevel:      req.GradeLevel,
			GuardianContact: req.GuardianContact,
			Location:        req.Location,
		}
		return tx.Create(&student).Error
	})

	if err != nil {
		if err.Error() == "email already registered" {
			return utils.Error(c, fiber.StatusBadRequest, "Email already registered")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	go notifications.SendEmail(newUser.FullName, newUser.Email, "Welcome!", "<h1>Welcome!</h1><p>Thank you for joining. Browse our subjects and book your first class.</p>")

	response := UserResponse{
		ID:        newUser.ID.String(),
		FullName:  newUser.FullName,
		Email:     newUser.Email,
		Role:      newUser.Role,
		CreatedAt: newUser.CreatedAt,
	}
	return utils.Created(c, "Account created successfully", response)
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	if !user.IsActive {
		return utils.Error(c, fiber.StatusForbidden, "This account has been deactivated")
	}

	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create token")
	}

	return utils.Success(c, "Login successful", fiber.Map{"token": t})
}

func ForgotPassword(c *fiber.Ctx) error {
	type Request struct {
		Email string `json:"email" validate:"required,email"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	// Always answer the same way so the endpoint cannot be used to probe
	// which emails have accounts.
	neutral := "If an account with that email exists, a password reset link has been sent."

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return utils.Success(c, neutral, nil)
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to generate reset token")
	}
	token := hex.EncodeToString(tokenBytes)

	expiration := time.Now().Add(15 * time.Minute)
	user.ResetPasswordToken = &token
	user.ResetPasswordTokenExpiresAt = &expiration

	if err := database.DB.Save(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to save reset token")
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", config.Config("FRONTEND_URL"), token)

	go notifications.SendEmail(
		user.FullName,
		user.Email,
		"Your Password Reset Link",
		fmt.Sprintf("<h1>Password Reset</h1><p>Click the link below to reset your password. This link is valid for 15 minutes.</p><p><a href='%s'>Reset Password</a></p>", resetLink),
	)

	return utils.Success(c, neutral, nil)
}

func ResetPassword(c *fiber.Ctx) error {
	type Request struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ValidationError(c, err)
	}

	var user models.User
	if err := database.DB.Where("reset_password_token = ?", req.Token).First(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid or expired reset token")
	}

	if user.ResetPasswordTokenExpiresAt == nil || user.ResetPasswordTokenExpiresAt.Before(time.Now()) {
		user.ResetPasswordToken = nil
		user.ResetPasswordTokenExpiresAt = nil
		database.DB.Save(&user)
		return utils.Error(c, fiber.StatusBadRequest, "Invalid or expired reset token")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}

	user.Password = string(hashedPassword)
	user.ResetPasswordToken = nil
	user.ResetPasswordTokenExpiresAt = nil
	if err := database.DB.Save(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return utils.Success(c, "Password has been reset successfully.", nil)
}
