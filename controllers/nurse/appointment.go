package nurse

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/scheduling"
	"github.com/clinicore/clinic-backend/utils"
)

// GetMyAppointments lists appointments the authenticated nurse is assigned
// to.
func GetMyAppointments(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	p := utils.GetPagination(c)

	query := scheduling.ScopeFilter(actor).Apply(db.DB.Model(&models.Appointment{}))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}

	var appointments []models.Appointment
	if err := query.Preload("Doctor.User").Preload("Patient.User").
		Order("start_time").
		Limit(p.PerPage).Offset(p.Offset()).
		Find(&appointments).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Assigned appointments retrieved",
		utils.PagedData(p, total, appointments))
}
