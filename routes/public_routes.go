package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangi-dev/mentor_hub/handlers"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/mentors", handlers.ListApprovedMentors)
	api.Get("/mentors/:mentorId", handlers.GetMentorProfile)
	api.Get("/mentors/:mentorId/availability", handlers.GetMentorAvailability)
}
