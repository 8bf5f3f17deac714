package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangi-dev/mentor_hub/handlers"
	"github.com/mwangi-dev/mentor_hub/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("/me", handlers.GetProfile)
	profile.Put("/me", handlers.UpdateProfile)
	profile.Get("/balance", handlers.GetMyBalance)
	profile.Get("/transactions", handlers.GetMyTransactions)
}
