package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"kwbrand/internal/models"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// jsonFailure maps an engine or ingestion error to a status and envelope.
func jsonFailure(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidUpload),
		errors.Is(err, models.ErrMissingInput),
		errors.Is(err, models.ErrEmptyInput):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case models.IsInputError(err):
		return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return jsonError(c, fiber.StatusInternalServerError, "internal server error")
}
