package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// Pinger is a dependency that can report its connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is a named readiness check. Optional dependencies are reported
// but do not fail readiness since the service degrades without them.
type Dependency struct {
	Name     string
	Check    Pinger
	Optional bool
}

// HealthHandler serves the liveness and readiness checks.
type HealthHandler struct {
	serviceName  string
	version      string
	dependencies []Dependency
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, dependencies ...Dependency) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, dependencies: dependencies}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies concurrently.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	var mu sync.Mutex
	depStatus := fiber.Map{}
	ready := true

	g, gctx := errgroup.WithContext(ctx)
	for _, dep := range h.dependencies {
		dep := dep
		g.Go(func() error {
			err := dep.Check.Ping(gctx)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				depStatus[dep.Name] = "ok"
			case dep.Optional:
				depStatus[dep.Name] = "degraded: " + err.Error()
			default:
				depStatus[dep.Name] = err.Error()
				ready = false
			}
			return nil
		})
	}
	_ = g.Wait()

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
