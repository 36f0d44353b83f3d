package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/gofiber/fiber/v2"
)

func SubjectRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/subjects", handlers.ListSubjects)
	api.Get("/subjects/:subjectId", handlers.GetSubjectByID)
}
