package routes

import (
	"github.com/gofiber/fiber/v2"

	doctorctl "github.com/clinicore/clinic-backend/controllers/doctor"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
)

// SetupDoctorRoutes configures doctor-facing routes and the public
// availability endpoint.
func SetupDoctorRoutes(app *fiber.App) {
	doctors := app.Group("/doctors")

	// Public: anyone can look up a doctor's free windows for a date.
	doctors.Get("/:id/availability", doctorctl.GetAvailability)

	me := doctors.Group("/me", middleware.Protected(), middleware.RequireRole(models.RoleDoctor))
	me.Get("/appointments", doctorctl.GetMyAppointments)
	me.Patch("/appointments/:id/status", middleware.RequirePermission("appointments", "update-status"), doctorctl.UpdateAppointmentStatus)
	me.Put("/working-hours", middleware.RequirePermission("working-hours", "update"), doctorctl.UpdateMyWorkingHours)

	me.Get("/pharmacy/medications", doctorctl.SearchMedications)
	me.Post("/pharmacy/prescriptions", doctorctl.SendPrescription)
	me.Post("/lab/tests", doctorctl.OrderLabTest)
}
