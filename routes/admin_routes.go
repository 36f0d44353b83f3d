package routes

import (
	"github.com/anjiri1684/tutor_marketplace/handlers"
	"github.com/anjiri1684/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/applications/pending", handlers.ListPendingApplications)
	admin.Put("/applications/:teacherId", handlers.ReviewTeacherApplication)

	admin.Get("/payments/pending", handlers.ListPendingPayments)
	admin.Put("/payments/:proofId/review", handlers.ReviewPayment)

	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)

	reports := admin.Group("/reports")
	reports.Get("/transactions", handlers.GenerateTransactionReport)

	subjects := admin.Group("/subjects")
	subjects.Post("", handlers.CreateSubject)
	subjects.Put("/:subjectId", handlers.UpdateSubject)
	subjects.Delete("/:subjectId", handlers.DeactivateSubject)
	subjects.Post("/:subjectId/tiers", handlers.CreatePricingTier)

	tiers := admin.Group("/tiers")
	tiers.Put("/:tierId", handlers.UpdatePricingTier)
	tiers.Delete("/:tierId", handlers.DeletePricingTier)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)

	admin.Get("/bookings", handlers.AdminGetAllBookings)
}
