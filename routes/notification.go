package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/controllers"
	"github.com/clinicore/clinic-backend/middleware"
)

// SetupNotificationRoutes configures stored-notification routes.
func SetupNotificationRoutes(app *fiber.App) {
	notifications := app.Group("/notifications", middleware.Protected())
	notifications.Get("/", middleware.RequirePermission("notifications", "read"), controllers.GetMyNotifications)
	notifications.Patch("/:id/read", middleware.RequirePermission("notifications", "update"), controllers.MarkNotificationRead)
}
