package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"doccms/internal/logging"
)

// Logger is a middleware that logs each HTTP request as one JSON line.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
// - trace_id (only when the request carries a sampled span)
//
// Requests that end in an error are logged at error level with the status the
// error will be rendered with.
func Logger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		ev := log.Info()
		if err != nil {
			status = statusOf(err)
			ev = log.Error().Err(err)
		}

		ev.
			Str("request_id", RequestIDFrom(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000)
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.IsValid() {
			ev.Str("trace_id", sc.TraceID().String())
		}
		ev.Send()

		return err
	}
}

// LoggerWithWriter logs to w with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logging.New(w, loc))
}

func statusOf(err error) int {
	if e, ok := err.(*fiber.Error); ok {
		return e.Code
	}
	return fiber.StatusInternalServerError
}
