package patient

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/controllers"
	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/scheduling"
	"github.com/clinicore/clinic-backend/utils"
)

// CreateMyAppointment books an appointment for the authenticated patient.
// The patient identity comes from the verified actor, not the body.
func CreateMyAppointment(c *fiber.Ctx) error {
	type CreateInput struct {
		DoctorID  uint      `json:"doctor_id"`
		StartTime time.Time `json:"start_time"`
		EndTime   time.Time `json:"end_time"`
		Reason    string    `json:"reason"`
	}

	actor := middleware.GetActor(c)
	input := new(CreateInput)
	if err := c.BodyParser(input); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	appointment, err := scheduling.CreateAppointment(db.DB, scheduling.CreateInput{
		DoctorID:  input.DoctorID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Reason:    input.Reason,
	}, actor)
	if err != nil {
		return utils.RespondError(c, err)
	}

	go controllers.NotifyBooked(appointment.ID)

	return utils.SuccessResponse(c, fiber.StatusCreated, "Appointment created successfully", appointment)
}

// GetMyAppointments lists the patient's own appointments, soonest first.
func GetMyAppointments(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	p := utils.GetPagination(c)

	query := scheduling.ScopeFilter(actor).Apply(db.DB.Model(&models.Appointment{}))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}

	var appointments []models.Appointment
	if err := query.Preload("Doctor.User").
		Order("start_time").
		Limit(p.PerPage).Offset(p.Offset()).
		Find(&appointments).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Appointments retrieved successfully",
		utils.PagedData(p, total, appointments))
}

// CancelMyAppointment cancels one of the patient's own scheduled
// appointments. The record stays, only the status changes.
func CancelMyAppointment(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Invalid appointment id")
	}

	appointment, err := scheduling.CancelAppointment(db.DB, uint(id), actor)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Appointment cancelled", appointment)
}
