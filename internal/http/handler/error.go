package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"doccms/internal/http/middleware"
	"doccms/internal/http/view"
)

// errorPayload defines the standardized JSON error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "NOT_AUTHORIZED", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

// ErrorHandler returns a Fiber global error handler. JSON endpoints get the
// standard error payload; pages get the HTML error view. Anything that is not
// a *fiber.Error is a 500 and is logged.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			log.Error().
				Err(err).
				Str("request_id", middleware.RequestIDFrom(c)).
				Str("path", c.Path()).
				Msg("request_failed")
		}

		code, message := describe(status)
		if wantsJSON(c) {
			return writeError(c, status, code, message)
		}

		c.Status(status)
		renderErr := c.Render(view.Error, fiber.Map{
			"Title":     message,
			"Status":    status,
			"Detail":    message,
			"RequestID": middleware.RequestIDFrom(c),
		}, view.Layout)
		if renderErr != nil {
			return c.Status(status).SendString(message)
		}
		return nil
	}
}

func describe(status int) (code, message string) {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST", "bad request"
	case fiber.StatusUnauthorized:
		return "NOT_AUTHORIZED", "you must be signed in to do that"
	case fiber.StatusNotFound:
		return "NOT_FOUND", "resource not found"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED", "method not allowed"
	case fiber.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE", "dependency unavailable"
	default:
		return "INTERNAL_ERROR", "internal server error"
	}
}

func wantsJSON(c *fiber.Ctx) bool {
	p := c.Path()
	return strings.HasPrefix(p, "/api/") || p == "/health"
}
