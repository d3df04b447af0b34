package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/utils"
)

// GetMyNotifications lists the authenticated user's stored notifications.
func GetMyNotifications(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	p := utils.GetPagination(c)

	query := db.DB.Model(&models.Notification{}).Where("user_id = ?", actor.UserID)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").
		Limit(p.PerPage).Offset(p.Offset()).
		Find(&notifications).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Notifications retrieved",
		utils.PagedData(p, total, notifications))
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id := c.Params("id")

	var notification models.Notification
	if err := db.DB.Where("id = ? AND user_id = ?", id, actor.UserID).
		First(&notification).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusNotFound, "Notification not found")
	}
	if err := db.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to update notification")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Notification marked as read", notification)
}
