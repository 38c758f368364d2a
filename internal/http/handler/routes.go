package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"doccms/internal/service"
)

// Deps holds what the route handlers need. DB is nil when the activity
// journal is disabled.
type Deps struct {
	Documents service.DocumentService
	Auth      service.AuthService
	DB        *sql.DB
	Metrics   prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Fixed paths are registered before the /:name catch-alls.
func RegisterRoutes(app *fiber.App, d Deps) {
	// Operational endpoints
	app.Get("/health", HealthCheck(d.Documents, d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get("/metrics", Metrics(d.Metrics))
	}
	app.Get("/api/activity", ListActivity(d.Documents))

	// Session
	app.Get("/sign_in", SignInForm())
	app.Post("/sign_in", SignIn(d.Auth))
	app.Post("/sign_out", SignOut(d.Auth))

	// Documents
	app.Get("/", Index(d.Documents))
	app.Get("/new", NewDocument(d.Documents))
	app.Post("/create", CreateDocument(d.Documents))
	app.Get("/:name", ShowDocument(d.Documents))
	app.Get("/:name/edit", EditDocument(d.Documents))
	app.Post("/:name", UpdateDocument(d.Documents))
	app.Post("/:name/delete", DeleteDocument(d.Documents))
	app.Post("/:name/duplicate", DuplicateDocument(d.Documents))
}
