package handlers

import (
	"github.com/anjiri1684/tutor_marketplace/policy"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var validate = validator.New()

// currentCaller resolves the authenticated principal from the verified JWT.
// Routes behind middleware.Protected() always have the token in locals.
func currentCaller(c *fiber.Ctx) policy.Caller {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)

	idStr, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	userID, _ := uuid.Parse(idStr)

	return policy.Caller{UserID: userID, Role: role}
}
