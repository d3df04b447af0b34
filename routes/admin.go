package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/controllers"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
)

// SetupAdminRoutes configures user management and RBAC routes.
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))

	admin.Get("/users", middleware.RequirePermission("users", "read"), controllers.GetUsers)
	admin.Get("/users/:id", middleware.RequirePermission("users", "read"), controllers.GetUserByID)
	admin.Patch("/users/:id/active", middleware.RequirePermission("users", "update"), controllers.SetUserActive)

	admin.Post("/roles", middleware.RequirePermission("roles", "create"), controllers.CreateRole)
	admin.Get("/roles", middleware.RequirePermission("roles", "read"), controllers.GetRoles)
	admin.Put("/roles/:id/permissions", middleware.RequirePermission("roles", "update"), controllers.AssignPermissionsToRole)
	admin.Post("/roles/assign", middleware.RequirePermission("roles", "update"), controllers.AssignRoleToUser)

	admin.Post("/permissions", middleware.RequirePermission("roles", "create"), controllers.CreatePermission)
	admin.Get("/permissions", middleware.RequirePermission("roles", "read"), controllers.GetPermissions)
}
