package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(RequestIDFrom(c))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.Len(t, ridHeader, 36)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should replace unusable request ids", func(t *testing.T) {
		for _, bad := range []string{strings.Repeat("a", 129), "has space", "tab\there"} {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(RequestIDHeader, bad)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.NotEqual(t, bad, resp.Header.Get(RequestIDHeader))
			assert.Len(t, resp.Header.Get(RequestIDHeader), 36)
		}
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	// Logger depends on RequestID for the request_id field
	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "info", logData["level"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
	assert.NotContains(t, logData, "trace_id")
}

func TestLogger_TraceID(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03},
		SpanID:     trace.SpanID{0x04},
		TraceFlags: trace.FlagsSampled,
	})
	app.Use(func(c *fiber.Ctx) error {
		c.SetUserContext(trace.ContextWithSpanContext(c.UserContext(), sc))
		return c.Next()
	})
	app.Use(LoggerWithWriter(&buf, time.UTC))
	app.Get("/traced", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/traced", nil))
	require.NoError(t, err)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, sc.TraceID().String(), logData["trace_id"])
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(LoggerWithWriter(&buf, time.UTC))

	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("disk on fire")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, "error", logData["level"])
	assert.Equal(t, "disk on fire", logData["error"])
	assert.Equal(t, float64(fiber.StatusInternalServerError), logData["status"])
}
