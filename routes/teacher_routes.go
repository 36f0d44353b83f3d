package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func TeacherRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// public directory
	api.Get("/teachers", handlers.ListTeachers)
	api.Get("/teachers/:teacherId", handlers.GetTeacherByID)

	api.Post("/teachers/apply", middleware.Protected(), handlers.ApplyToBeATeacher)

	teacher := api.Group("/teacher", middleware.Protected(), middleware.TeacherRequired())
	teacher.Put("/availability", handlers.ReplaceAvailability)
	teacher.Get("/availability/me", handlers.GetMyAvailability)
	teacher.Post("/documents", handlers.AddDocument)
	teacher.Get("/documents/me", handlers.GetMyDocuments)
	teacher.Post("/subjects", handlers.AddSubjectToProfile)
	teacher.Delete("/subjects/:subjectId", handlers.RemoveSubjectFromProfile)
	teacher.Put("/meeting-link", handlers.UpdateMeetingLink)
}
