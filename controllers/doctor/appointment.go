package doctor

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/scheduling"
	"github.com/clinicore/clinic-backend/utils"
)

// GetMyAppointments lists the authenticated doctor's appointments.
func GetMyAppointments(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	p := utils.GetPagination(c)

	query := scheduling.ScopeFilter(actor).Apply(db.DB.Model(&models.Appointment{}))
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}

	var appointments []models.Appointment
	if err := query.Preload("Patient.User").
		Order("start_time").
		Limit(p.PerPage).Offset(p.Offset()).
		Find(&appointments).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Appointments retrieved",
		utils.PagedData(p, total, appointments))
}

// UpdateAppointmentStatus transitions the status of an appointment owned by
// the authenticated doctor.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	type StatusInput struct {
		Status models.AppointmentStatus `json:"status"`
		Notes  string                   `json:"notes"`
	}

	actor := middleware.GetActor(c)
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Invalid appointment id")
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil || input.Status == "" {
		return utils.FailResponse(c, fiber.StatusBadRequest, "status is required")
	}

	appointment, err := scheduling.UpdateStatus(db.DB, uint(id), input.Status, actor)
	if err != nil {
		return utils.RespondError(c, err)
	}
	if input.Notes != "" {
		if err := db.DB.Model(appointment).Update("notes", input.Notes).Error; err != nil {
			return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to save notes")
		}
		appointment.Notes = input.Notes
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Appointment status updated", appointment)
}
