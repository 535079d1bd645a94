package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/middleware"
	apperrors "github.com/postboard/postboard/internal/pkg/errors"
	"github.com/postboard/postboard/internal/validator"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string                     `json:"error"`
	Message string                     `json:"message"`
	Errors  validator.ValidationErrors `json:"errors,omitempty"`
}

// parseID reads a positive integer path parameter
func parseID(c *fiber.Ctx, param string) (int, error) {
	id, err := strconv.Atoi(c.Params(param))
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest("Invalid " + param)
	}
	return id, nil
}

// parseOptionalID reads an optional positive integer query parameter
func parseOptionalID(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return nil, apperrors.BadRequest("Invalid " + key)
	}
	return &id, nil
}

// errorResponse creates a standardized JSON error response.
func errorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorResponse{
		Error:   errorName(statusCode),
		Message: message,
	})
}

// handleError answers client errors with their own status and message.
// Anything else is logged and reported as a 500 naming the failed action.
func handleError(c *fiber.Ctx, logger *zap.Logger, err error, action string) error {
	if appErr := apperrors.GetAppError(err); appErr != nil && appErr.StatusCode < fiber.StatusInternalServerError {
		resp := ErrorResponse{
			Error:   errorName(appErr.StatusCode),
			Message: appErr.Message,
		}
		var fields validator.ValidationErrors
		if errors.As(err, &fields) {
			resp.Errors = fields
		}
		return c.Status(appErr.StatusCode).JSON(resp)
	}

	logger.Error("failed to "+action,
		zap.Error(err),
		zap.String("request_id", middleware.GetRequestID(c)),
	)
	middleware.CaptureError(c, err)

	return errorResponse(c, fiber.StatusInternalServerError, "Failed to "+action)
}

func errorName(statusCode int) string {
	switch statusCode {
	case fiber.StatusBadRequest:
		return "Bad Request"
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusTooManyRequests:
		return "Too Many Requests"
	case fiber.StatusInternalServerError:
		return "Internal Server Error"
	}
	if text := utils.StatusMessage(statusCode); text != "" {
		return text
	}
	return "Error"
}
