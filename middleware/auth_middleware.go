package middleware

import (
	config "github.com/anjiri1684/tutor_marketplace/configs"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Invalid or expired JWT",
	})
}

func requireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Locals("user").(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)
		got, _ := claims["role"].(string)

		if got != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Forbidden: " + role + " access required",
			})
		}
		return c.Next()
	}
}

func AdminRequired() fiber.Handler {
	return requireRole(models.RoleAdmin)
}

func TeacherRequired() fiber.Handler {
	return requireRole(models.RoleTeacher)
}

func StudentRequired() fiber.Handler {
	return requireRole(models.RoleStudent)
}
