package respond

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts handler errors into the common envelope. Messages
// attached to a *fiber.Error are considered safe for clients; anything else
// is logged and replaced with a generic message when hideInternals is set.
func ErrorHandler(log *slog.Logger, hideInternals bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := err.Error()

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"error", err,
			)
			if hideInternals {
				message = "Something went wrong. Please try again later."
			}
		}

		return Fail(c, status, message)
	}
}
