package secretary

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/db"
	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/utils"
)

// GetPatients lists patient profiles for front-desk lookup while booking.
func GetPatients(c *fiber.Ctx) error {
	p := utils.GetPagination(c)

	query := db.DB.Model(&models.Patient{}).
		Joins("JOIN users ON users.id = patients.user_id")
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"users.first_name ILIKE ? OR users.last_name ILIKE ? OR users.email ILIKE ?",
			like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch patients")
	}

	var patients []models.Patient
	if err := query.Preload("User").
		Limit(p.PerPage).Offset(p.Offset()).Order("patients.id").
		Find(&patients).Error; err != nil {
		return utils.FailResponse(c, fiber.StatusInternalServerError, "Failed to fetch patients")
	}
	for i := range patients {
		patients[i].User.Password = ""
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Patients retrieved",
		utils.PagedData(p, total, patients))
}
