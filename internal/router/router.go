package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/handler"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Validate *handler.ValidateHandler
	Mob      *handler.MobHandler
	Stats    *handler.StatsHandler
	Status   *handler.StatusHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given
// Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health checks (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus metrics
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	validateLimiter := middleware.NewValidateRateLimiter()
	mobLimiter := middleware.NewMobRateLimiter()
	statsLimiter := middleware.NewStatsRateLimiter()

	api.Post("/validate", h.Validate.Validate, validateLimiter.Handler())

	api.Get("/mobs", h.Mob.List, mobLimiter.Handler())
	api.Get("/mobs/:mobId", h.Mob.Get, mobLimiter.Handler())

	api.Get("/stats", h.Stats.Get, statsLimiter.Handler())
	api.Get("/status", h.Status.Get, statsLimiter.Handler())
}
