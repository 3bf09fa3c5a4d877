package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Ali506108/Chat-Service/internal/apperr"
)

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"status": "success", "data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": data})
}

// fail maps the error taxonomy to status codes. Raw store errors never
// reach the client; the wrapped message carries the operation and id.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		status = fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperr.ErrTimeout):
		status = fiber.StatusGatewayTimeout
	}
	return c.Status(status).JSON(fiber.Map{"status": "error", "error": err.Error()})
}
