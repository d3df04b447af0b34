package doctor

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/scheduling"
	"github.com/clinicore/clinic-backend/utils"
)

// GetAvailability returns the free windows for a doctor on a date:
// GET /doctors/:id/availability?date=YYYY-MM-DD
func GetAvailability(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Invalid doctor id")
	}
	date := c.Query("date")
	if date == "" {
		return utils.FailResponse(c, fiber.StatusBadRequest, "date query parameter is required")
	}

	availability, err := scheduling.ResolveAvailability(db.DB, uint(id), date, utils.ClinicLocation())
	if err != nil {
		return utils.RespondError(c, err)
	}
	if !availability.Available {
		return utils.SuccessResponse(c, fiber.StatusOK, "Doctor is not available on this day", availability)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Availability retrieved", availability)
}

// WorkingHourInput is one template slot in an update request.
type WorkingHourInput struct {
	DayOfWeek   models.DayOfWeek `json:"day_of_week"`
	StartTime   string           `json:"start_time"`
	EndTime     string           `json:"end_time"`
	IsAvailable bool             `json:"is_available"`
}

// UpdateMyWorkingHours replaces the authenticated doctor's weekly template.
func UpdateMyWorkingHours(c *fiber.Ctx) error {
	type UpdateInput struct {
		WorkingHours []WorkingHourInput `json:"working_hours"`
	}

	actor := middleware.GetActor(c)
	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	loc := utils.ClinicLocation()
	for _, slot := range input.WorkingHours {
		if slot.DayOfWeek < models.Sunday || slot.DayOfWeek > models.Saturday {
			return utils.FailResponse(c, fiber.StatusBadRequest, "day_of_week must be 0 (Sunday) to 6 (Saturday)")
		}
		start, err := scheduling.CombineDateTime("2000-01-02", slot.StartTime, loc)
		if err != nil {
			return utils.FailResponse(c, fiber.StatusBadRequest, "start_time must be HH:MM")
		}
		end, err := scheduling.CombineDateTime("2000-01-02", slot.EndTime, loc)
		if err != nil {
			return utils.FailResponse(c, fiber.StatusBadRequest, "end_time must be HH:MM")
		}
		if !end.After(start) {
			return utils.FailResponse(c, fiber.StatusBadRequest, "end_time must be after start_time")
		}
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, actor.ProfileID).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusNotFound, "Doctor profile not found")
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctor.ID).
			Delete(&models.WorkingHour{}).Error; err != nil {
			return err
		}
		for _, slot := range input.WorkingHours {
			wh := models.WorkingHour{
				DoctorID:    doctor.ID,
				DayOfWeek:   slot.DayOfWeek,
				StartTime:   slot.StartTime,
				EndTime:     slot.EndTime,
				IsAvailable: slot.IsAvailable,
			}
			if err := tx.Create(&wh).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to update working hours")
	}

	var hours []models.WorkingHour
	db.DB.Where("doctor_id = ?", doctor.ID).
		Order("day_of_week, start_time").Find(&hours)
	return utils.SuccessResponse(c, fiber.StatusOK, "Working hours updated", hours)
}
