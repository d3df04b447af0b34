package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-backend/scheduling"
)

// RespondError maps a scheduling error to its HTTP status and user-safe
// message. Anything else becomes a generic 500; store error text is never
// sent to clients.
func RespondError(c *fiber.Ctx, err error) error {
	var schedErr *scheduling.Error
	if errors.As(err, &schedErr) {
		return FailResponse(c, schedErr.StatusCode(), schedErr.Message)
	}
	return FailResponse(c, fiber.StatusInternalServerError, "Something went wrong")
}
