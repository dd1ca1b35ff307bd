package presenters

import (
	"errors"
	"pantrypal/domain"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse never exposes err's raw text; clients get domain.UserMessage.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	return c.Status(statusCode).JSON(Response{
		Status:  false,
		Message: message,
		Error:   domain.UserMessage(err),
	})
}

// StatusFor maps a service error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrFoodItemNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidImageFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrRecipeAPIKeyMissing), errors.Is(err, domain.ErrImageUploadOff):
		return fiber.StatusServiceUnavailable
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindNetwork, domain.KindParse:
		return fiber.StatusBadGateway
	case domain.KindBackend:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
