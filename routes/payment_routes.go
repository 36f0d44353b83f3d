package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments", middleware.Protected())
	payments.Get("/me", handlers.ListPayments)
	payments.Post("/bookings/:bookingId/proof", middleware.StudentRequired(), handlers.SubmitPaymentProof)
}
