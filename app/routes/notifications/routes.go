package notifications

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DurgaPydahSoft/server-sub001/app/routes/auth"
)

func SetupNotificationsRoutes(app *fiber.App) {
	api := app.Group("/api/notifications")
	api.Use(auth.AuthMiddleware)

	api.Get("/student/:id", GetStudentNotificationsAPI)
	api.Put("/:id/read", MarkNotificationReadAPI)
}
