package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Get("/upcoming", handlers.GetUpcomingClasses)
	booking.Post("", middleware.StudentRequired(), handlers.CreateBooking)
	booking.Get("/:bookingId", handlers.GetBookingByID)
	booking.Put("/:bookingId/status", handlers.UpdateBookingStatus)
}
