package routes

import (
	"github.com/gofiber/fiber/v2"

	nursectl "github.com/clinicore/clinic-backend/controllers/nurse"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
)

// SetupNurseRoutes configures nurse routes.
func SetupNurseRoutes(app *fiber.App) {
	me := app.Group("/nurses/me", middleware.Protected(), middleware.RequireRole(models.RoleNurse))
	me.Get("/appointments", nursectl.GetMyAppointments)
}
