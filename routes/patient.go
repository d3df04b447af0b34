package routes

import (
	"github.com/gofiber/fiber/v2"

	patientctl "github.com/clinicore/clinic-backend/controllers/patient"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
)

// SetupPatientRoutes configures patient self-service routes.
func SetupPatientRoutes(app *fiber.App) {
	me := app.Group("/patients/me", middleware.Protected(), middleware.RequireRole(models.RolePatient))
	me.Post("/appointments", middleware.RequirePermission("appointments", "create"), patientctl.CreateMyAppointment)
	me.Get("/appointments", patientctl.GetMyAppointments)
	me.Delete("/appointments/:id", middleware.RequirePermission("appointments", "cancel"), patientctl.CancelMyAppointment)
}
