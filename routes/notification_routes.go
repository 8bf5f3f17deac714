package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/mwangi-dev/mentor_hub/handlers"
	"github.com/mwangi-dev/mentor_hub/middleware"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notification := api.Group("/notifications", middleware.Protected())
	notification.Get("", handlers.GetMyNotifications)
	notification.Post("/:notificationId/read", handlers.MarkNotificationRead)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
