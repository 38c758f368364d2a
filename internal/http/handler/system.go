package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"doccms/internal/http/session"
	"doccms/internal/service"
)

const healthTimeout = 2 * time.Second

// HealthResponse is the body of a successful health check.
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
}

// HealthCheck godoc
// @Summary      Readiness check
// @Description  Lists the document store and pings the database when one is configured.
// @Tags         system
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  errorPayload
// @Router       /health [get]
func HealthCheck(docs service.DocumentService, db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		if _, err := docs.List(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "document storage unavailable")
		}
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "database unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(HealthResponse{Status: "healthy"})
	}
}

// LivenessProbe answers 200 while the process is up.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Metrics exposes the gatherer in the Prometheus text format.
func Metrics(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}

// ListActivity godoc
// @Summary      Recent activity
// @Description  Returns the newest entries of the activity journal. Requires a signed-in session.
// @Tags         activity
// @Produce      json
// @Param        limit  query     int  false  "maximum number of entries"  default(20)
// @Success      200    {array}   model.Activity
// @Failure      400    {object}  errorPayload
// @Failure      401    {object}  errorPayload
// @Failure      500    {object}  errorPayload
// @Router       /api/activity [get]
func ListActivity(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil || limit < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}

		entries, err := docs.Activity(c.UserContext(), session.From(c), limit)
		if errors.Is(err, service.ErrNotAuthorized) {
			return writeError(c, fiber.StatusUnauthorized, "NOT_AUTHORIZED", "you must be signed in to do that")
		}
		if err != nil {
			return err
		}
		return c.JSON(entries)
	}
}
