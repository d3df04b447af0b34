package doctor

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/integrations"
	"github.com/clinicore/clinic-backend/middleware"
	"github.com/clinicore/clinic-backend/utils"
)

// SearchMedications proxies a catalog search to the pharmacy service.
func SearchMedications(c *fiber.Ctx) error {
	medications, err := integrations.SearchMedications(c.Query("search"))
	if err != nil {
		return utils.FailResponse(c, fiber.StatusBadGateway, "Pharmacy service unavailable")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Medications retrieved", medications)
}

// SendPrescription forwards a prescription to the pharmacy service.
func SendPrescription(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)

	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	payload["doctor_id"] = actor.ProfileID

	result, err := integrations.SendPrescription(payload)
	if err != nil {
		return utils.FailResponse(c, fiber.StatusBadGateway, "Pharmacy service unavailable")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Prescription sent to pharmacy", result)
}

// OrderLabTest forwards a test order to the laboratory service.
func OrderLabTest(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)

	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailResponse(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	payload["doctor_id"] = actor.ProfileID

	result, err := integrations.SendTestOrder(payload)
	if err != nil {
		return utils.FailResponse(c, fiber.StatusBadGateway, "Laboratory service unavailable")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Lab test ordered", result)
}
