package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RecordCounter reports how many records a store holds
type RecordCounter interface {
	Count() int
}

// Pinger is an optional backing service checked by readiness probes
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	stores    map[string]RecordCounter
	redis     Pinger
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler. redis may be nil when rate limiting is local.
func NewHealthHandler(stores map[string]RecordCounter, redis Pinger, version string) *HealthHandler {
	return &HealthHandler{
		stores:    stores,
		redis:     redis,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthStatus represents health check status
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Timestamp string            `json:"timestamp"`
	Records   map[string]int    `json:"records"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := HealthStatus{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Records:   make(map[string]int, len(h.stores)),
	}

	for name, store := range h.stores {
		status.Records[name] = store.Count()
	}

	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		status.Checks = map[string]string{"redis": "healthy"}
		if err := h.redis.Ping(ctx); err != nil {
			// The rate limiter fails open, so a lost Redis only degrades the service
			status.Status = "degraded"
			status.Checks["redis"] = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(status)
}

// Liveness handles GET /livez - basic liveness probe
func (h *HealthHandler) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// Readiness handles GET /readyz.
// The stores live in process, so the service is ready once it serves requests.
func (h *HealthHandler) Readiness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ready",
	})
}

// Version handles GET /version
func (h *HealthHandler) Version(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": h.version,
		"uptime":  time.Since(h.startTime).String(),
	})
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/healthz", h.Health)
	app.Get("/livez", h.Liveness)
	app.Get("/readyz", h.Readiness)
	app.Get("/version", h.Version)
}
