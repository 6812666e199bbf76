package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"claim_relay/models"
	"claim_relay/pkg/logging"
)

// ErrorHandler renders every unhandled error as a JSON body with an error field.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	if code >= fiber.StatusInternalServerError {
		logging.Logger.Error("unhandled error", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(models.ErrorResponse{Error: err.Error()})
}
