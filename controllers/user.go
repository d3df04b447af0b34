package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/utils"
)

// GetUsers returns the paginated user list (admin).
func GetUsers(c *fiber.Ctx) error {
	p := utils.GetPagination(c)

	query := db.DB.Model(&models.User{}).Preload("Role")
	if role := c.Query("role"); role != "" {
		query = query.Joins("JOIN roles ON roles.id = users.role_id").
			Where("roles.name = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	var users []models.User
	if err := query.Limit(p.PerPage).Offset(p.Offset()).Order("id").Find(&users).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}
	for i := range users {
		users[i].Password = ""
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Users retrieved", utils.PagedData(p, total, users))
}

// GetUserByID returns a single user (admin).
func GetUserByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := db.DB.Preload("Role").First(&user, id).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusNotFound, "User not found")
	}
	user.Password = ""
	return utils.SuccessResponse(c, fiber.StatusOK, "User retrieved", user)
}

// SetUserActive activates or deactivates an account (admin). Deactivated
// users fail authentication on their next request.
func SetUserActive(c *fiber.Ctx) error {
	type ActiveInput struct {
		IsActive *bool `json:"is_active"`
	}

	id := c.Params("id")
	input := new(ActiveInput)
	if err := c.BodyParser(input); err != nil || input.IsActive == nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "is_active is required")
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusNotFound, "User not found")
	}
	if err := db.DB.Model(&user).Update("is_active", *input.IsActive).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	user.Password = ""
	return utils.SuccessResponse(c, fiber.StatusOK, "User updated", user)
}
