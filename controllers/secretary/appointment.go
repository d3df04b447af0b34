package secretary

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

// CreateAppointment proxy-books an appointment for a patient with one of the
// secretary's managed doctors.
func CreateAppointment(c *fiber.Ctx) error {
	type CreateInput struct {
		PatientID uint      `json:"patient_id"`
		DoctorID  uint      `json:"doctor_id"`
		StartTime time.Time `json:"start_time"`
		EndTime   time.Time `json:"end_time"`
		Reason    string    `json:"reason"`
		Notes     string    `json:"notes"`
	}

	actor := middleware.GetActor(c)
	input := new(CreateInput)
	if err := c.BodyParser(input); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	appointment, err := scheduling.CreateAppointment(db.DB, scheduling.CreateInput{
		DoctorID:  input.DoctorID,
		PatientID: input.PatientID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Reason:    input.Reason,
		Notes:     input.Notes,
	}, actor)
	if err != nil {
		return utils.RespondError(c, err)
	}

	go controllers.NotifyBooked(appointment.ID)

	return utils.SuccessResponse(c, fiber.StatusCreated, "Appointment created successfully", appointment)
}

// GetManagedAppointments lists appointments for all doctors the secretary
// manages.
func GetManagedAppointments(c *fiber.Ctx) error {
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
	if err := query.Preload("Doctor.User").Preload("Patient.User").
		Order("start_time").
		Limit(p.PerPage).Offset(p.Offset()).
		Find(&appointments).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Managed appointments retrieved",
		utils.PagedData(p, total, appointments))
}

// UpdateAppointment reschedules or edits an appointment for a managed
// doctor. Doctor/time changes re-run conflict detection against the new
// doctor and window; on conflict the stored record is left unmodified.
func UpdateAppointment(c *fiber.Ctx) error {
	type UpdateBody struct {
		DoctorID  *uint                     `json:"doctor_id"`
		NurseID   *uint                     `json:"nurse_id"`
		StartTime *time.Time                `json:"start_time"`
		EndTime   *time.Time                `json:"end_time"`
		Status    *models.AppointmentStatus `json:"status"`
		Reason    *string                   `json:"reason"`
		Notes     *string                   `json:"notes"`
	}

	actor := middleware.GetActor(c)
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Invalid appointment id")
	}

	body := new(UpdateBody)
	if err := c.BodyParser(body); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	appointment, err := scheduling.UpdateAppointment(db.DB, uint(id), scheduling.UpdateInput{
		DoctorID:  body.DoctorID,
		NurseID:   body.NurseID,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Status:    body.Status,
		Reason:    body.Reason,
		Notes:     body.Notes,
	}, actor)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Appointment updated", appointment)
}
