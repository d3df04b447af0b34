package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// SuccessResponse sends the standard response envelope: a success flag, a
// human-readable message and the payload.
func SuccessResponse(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// FailResponse sends the envelope with success=false. Internal error text is
// never included; callers pass a stable, user-facing message only.
func FailResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
