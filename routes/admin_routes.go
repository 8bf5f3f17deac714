package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangi-dev/mentor_hub/handlers"
	"github.com/mwangi-dev/mentor_hub/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/applications", handlers.ListPendingApplications)
	admin.Post("/applications/:mentorId/manage", handlers.ManageApplication)
	admin.Post("/balance/credit", handlers.CreditUserBalance)
	admin.Get("/users", handlers.ListAllUsers)
}
