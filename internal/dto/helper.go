package dto

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/postboard/postboard/internal/pkg/errors"
	"github.com/postboard/postboard/internal/validator"
)

// ParseAndValidate parses the request body into v and validates it.
// Failures are returned as *apperrors.AppError with a 400 status. Validation
// failures wrap validator.ValidationErrors so handlers can list the fields.
func ParseAndValidate(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return apperrors.BadRequest("Invalid request body: " + err.Error()).WithError(err)
	}

	if err := validator.Validate(v); err != nil {
		if validator.IsValidationError(err) {
			return apperrors.Validation("Request validation failed").WithError(err)
		}
		return apperrors.BadRequest(err.Error()).WithError(err)
	}

	return nil
}
