package utils

import (
	"Backend-Formforge/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleValidationError sends the field-scoped error map alongside a single
// top-level message.
func HandleValidationError(c *fiber.Ctx, errs map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ValidationErrorResponse{
		Status:  fiber.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}
