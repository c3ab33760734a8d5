package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nmt-console/internal/apiclient"
	"github.com/spec-kit/nmt-console/internal/observability"
	"github.com/spec-kit/nmt-console/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
	backend     *apiclient.Factory
	metrics     *observability.Metrics
}

// HealthDependencies are the optional collaborators probed by Ready.
type HealthDependencies struct {
	Postgres *persistence.Postgres
	Redis    *persistence.Redis
	Backend  *apiclient.Factory
	Metrics  *observability.Metrics
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, deps HealthDependencies) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		postgres:    deps.Postgres,
		redis:       deps.Redis,
		backend:     deps.Backend,
		metrics:     deps.Metrics,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
// Stores that are not configured are reported as disabled.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	check := func(name string, ping func(context.Context) error) {
		err := ping(ctx)
		switch {
		case errors.Is(err, persistence.ErrNotConfigured):
			depStatus[name] = "disabled"
		case err != nil:
			depStatus[name] = err.Error()
			ready = false
		default:
			depStatus[name] = "ok"
		}
	}

	check("postgres", h.postgres.Ping)
	check("redis", h.redis.Ping)
	if h.backend != nil {
		check("backend", h.backend.New(apiclient.Options{}).Ping)
	}

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

// Metrics reports request and session counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.metrics.Snapshot()})
}
