package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/scheduling"
	"github.com/clinicore/clinic-backend/utils"
)

// GetAppointments lists appointments visible to the actor. The scope filter
// derived from the role bounds the query regardless of any parameters the
// client supplies.
func GetAppointments(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	p := utils.GetPagination(c)
	scope := scheduling.ScopeFilter(actor)

	query := scope.Apply(db.DB.Model(&models.Appointment{}))
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			query = query.Where("start_time >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			query = query.Where("start_time < ?", t)
		}
	}
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

	return utils.SuccessResponse(c, fiber.StatusOK, "Appointments retrieved",
		utils.PagedData(p, total, appointments))
}

// GetAppointment returns a single appointment if it falls inside the actor's
// scope.
func GetAppointment(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.Preload("Doctor.User").Preload("Patient.User").
		First(&appointment, id).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusNotFound, "Appointment not found")
	}
	if !scheduling.ScopeFilter(actor).Allows(&appointment) {
		return utils.FailResponse(c, fiber.StatusForbidden, "Appointment is outside your scope")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Appointment retrieved", appointment)
}

// AppointmentInput is the shared booking request body.
type AppointmentInput struct {
	DoctorID  uint      `json:"doctor_id"`
	PatientID uint      `json:"patient_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `json:"reason"`
	Notes     string    `json:"notes"`
}

// CreateAppointment is the shared booking endpoint. The engine stamps the
// creator from the verified actor, never from the body.
func CreateAppointment(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)

	input := new(AppointmentInput)
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

	go NotifyBooked(appointment.ID)

	return utils.SuccessResponse(c, fiber.StatusCreated, "Appointment created successfully", appointment)
}

// NotifyBooked records notifications for the patient and doctor of a new
// appointment and emails both parties. Fire-and-forget; booking success does
// not depend on it.
func NotifyBooked(appointmentID uint) {
	var appt models.Appointment
	if err := db.DB.Preload("Doctor.User").Preload("Patient.User").
		First(&appt, appointmentID).Error; err != nil {
		log.Printf("Notification skipped, appointment %d not found: %v", appointmentID, err)
		return
	}

	window := fmt.Sprintf("%s – %s",
		appt.StartTime.Format("2006-01-02 15:04"),
		appt.EndTime.Format("15:04"))

	db.DB.Create(&models.Notification{
		UserID:  appt.Patient.UserID,
		Title:   "Appointment scheduled",
		Message: fmt.Sprintf("Your appointment with Dr. %s is scheduled for %s.", appt.Doctor.User.LastName, window),
	})
	db.DB.Create(&models.Notification{
		UserID:  appt.Doctor.UserID,
		Title:   "New appointment",
		Message: fmt.Sprintf("New appointment with %s on %s.", appt.Patient.User.FullName(), window),
	})

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been scheduled.</p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
		</ul>
		<p>Best regards,<br>Your Clinic Team</p>
	`, appt.Patient.User.FullName(), appt.Doctor.User.FullName(),
		appt.StartTime.Format("2006-01-02 15:04:05"),
		appt.EndTime.Format("2006-01-02 15:04:05"))
	if err := utils.SendEmail(appt.Patient.User.Email, "Appointment Confirmation", body); err != nil {
		log.Printf("Failed to send confirmation email: %v", err)
	}
}
