package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangi-dev/mentor_hub/handlers"
	"github.com/mwangi-dev/mentor_hub/middleware"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	session := api.Group("/sessions", middleware.Protected())
	session.Get("/me", handlers.GetMySessions)
	session.Post("", handlers.CreateSession)
	session.Post("/:sessionId/cancel", handlers.CancelSession)
	session.Post("/:sessionId/reschedule", handlers.RescheduleSession)
	session.Post("/:sessionId/review", handlers.CreateReview)

	mentorSession := api.Group("/mentor/sessions", middleware.Protected(), middleware.MentorRequired())
	mentorSession.Post("/:sessionId/accept", handlers.AcceptSession)
	mentorSession.Post("/:sessionId/reject", handlers.RejectSession)
	mentorSession.Post("/:sessionId/start", handlers.StartSession)
	mentorSession.Post("/:sessionId/complete", handlers.CompleteSession)
}
