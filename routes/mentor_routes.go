package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangi-dev/mentor_hub/handlers"
	"github.com/mwangi-dev/mentor_hub/middleware"
)

func MentorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	mentor := api.Group("/mentor", middleware.Protected())
	mentor.Post("/apply", handlers.ApplyToBeAMentor)
	mentor.Get("/sessions", handlers.GetMyMentorSessions)
	mentor.Get("/earnings", handlers.GetMentorEarnings)
	mentor.Get("/reviews/me", handlers.GetMyReviews)

	profile := mentor.Group("/profile")
	profile.Get("/me", handlers.GetMyMentorProfile)
	profile.Put("/me", handlers.UpdateMyMentorProfile)

	availability := mentor.Group("/availability", middleware.MentorRequired())
	availability.Get("/me", handlers.GetMyWeeklySchedule)
	availability.Get("/slots", handlers.GetMyMaterializedSlots)
	availability.Put("/:day", handlers.UpdateWeeklyAvailability)
}
