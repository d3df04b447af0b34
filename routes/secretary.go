package routes

import (
	"github.com/gofiber/fiber/v2"

	secretaryctl "github.com/clinicore/clinic-backend/controllers/secretary"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
)

// SetupSecretaryRoutes configures front-desk routes. Every operation is
// bounded to the secretary's managed doctors by the scope filter.
func SetupSecretaryRoutes(app *fiber.App) {
	secretary := app.Group("/secretary", middleware.Protected(), middleware.RequireRole(models.RoleSecretary))
	secretary.Post("/appointments", middleware.RequirePermission("appointments", "create"), secretaryctl.CreateAppointment)
	secretary.Get("/appointments", secretaryctl.GetManagedAppointments)
	secretary.Patch("/appointments/:id", middleware.RequirePermission("appointments", "update"), secretaryctl.UpdateAppointment)
	secretary.Get("/patients", middleware.RequirePermission("users", "read"), secretaryctl.GetPatients)
}
