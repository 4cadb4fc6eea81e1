package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/fraud-desk/internal/api/http/handlers"
	"github.com/spec-kit/fraud-desk/internal/auth"
	"github.com/spec-kit/fraud-desk/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Complaints     *handlers.ComplaintsHandler
	Auth           *handlers.AuthHandler
	Currencies     *handlers.CurrencyHandler
	AuthMiddleware *auth.AuthMiddleware
	IntakeLimiter  *RateLimiter
	LoginLimiter   *RateLimiter
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Get("/currencies", cfg.Currencies.List)
	api.Post("/complaints", cfg.IntakeLimiter.Handler(), cfg.Complaints.Submit)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.LoginLimiter.Handler(), cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	operator := cfg.AuthMiddleware.Handle
	api.Get("/complaints", operator, cfg.Complaints.List)
	api.Get("/complaints/export", operator, cfg.Complaints.Export)
	api.Get("/complaints/:id", operator, cfg.Complaints.Get)
	api.Put("/complaints/:id", operator, cfg.Complaints.UpdateStatus)
	api.Get("/complaints/:id/history", operator, cfg.Complaints.History)
	api.Get("/dashboard", operator, cfg.Complaints.Dashboard)
}
