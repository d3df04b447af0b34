package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/utils"
)

// CreateRole creates a new role
func CreateRole(c *fiber.Ctx) error {
	role := new(models.Role)
	if err := c.BodyParser(role); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if role.Name == "" {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Role name is required")
	}

	var existing models.Role
	if db.DB.Where("name = ?", role.Name).First(&existing).RowsAffected > 0 {
		return utils.FailResponse(c, fiber.StatusConflict, "Role with this name already exists")
	}
	if err := db.DB.Create(&role).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to create role")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Role created", role)
}

// GetRoles returns all roles with their permissions
func GetRoles(c *fiber.Ctx) error {
	var roles []models.Role
	if err := db.DB.Preload("Permissions").Find(&roles).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to get roles")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Roles retrieved", roles)
}

// CreatePermission creates a new permission
func CreatePermission(c *fiber.Ctx) error {
	permission := new(models.Permission)
	if err := c.BodyParser(permission); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if permission.Name == "" || permission.Resource == "" || permission.Action == "" {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Name, resource, and action are required")
	}

	var existing models.Permission
	if db.DB.Where("name = ?", permission.Name).First(&existing).RowsAffected > 0 {
		return utils.FailResponse(c, fiber.StatusConflict, "Permission with this name already exists")
	}
	if err := db.DB.Create(&permission).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to create permission")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Permission created", permission)
}

// GetPermissions returns all permissions
func GetPermissions(c *fiber.Ctx) error {
	var permissions []models.Permission
	if err := db.DB.Find(&permissions).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to get permissions")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Permissions retrieved", permissions)
}

// AssignPermissionsToRole replaces a role's permission grants
func AssignPermissionsToRole(c *fiber.Ctx) error {
	type AssignInput struct {
		PermissionIDs []uint `json:"permission_ids"`
	}

	id := c.Params("id")
	input := new(AssignInput)
	if err := c.BodyParser(input); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var role models.Role
	if err := db.DB.First(&role, id).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusNotFound, "Role not found")
	}
	var perms []models.Permission
	if err := db.DB.Find(&perms, input.PermissionIDs).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to load permissions")
	}
	if err := db.DB.Model(&role).Association("Permissions").Replace(perms); err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to assign permissions")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Permissions assigned", role)
}

// AssignRoleToUser assigns a role to a user
func AssignRoleToUser(c *fiber.Ctx) error {
	type AssignRoleInput struct {
		UserID uint `json:"user_id"`
		RoleID uint `json:"role_id"`
	}

	input := new(AssignRoleInput)
	if err := c.BodyParser(input); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var user models.User
	if db.DB.First(&user, input.UserID).RowsAffected == 0 {
		return utils.FailResponse(c, fiber.StatusNotFound, "User not found")
	}
	var role models.Role
	if db.DB.First(&role, input.RoleID).RowsAffected == 0 {
		return utils.FailResponse(c, fiber.StatusNotFound, "Role not found")
	}
	if err := db.DB.Model(&user).Update("role_id", role.ID).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to assign role")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Role assigned", nil)
}
