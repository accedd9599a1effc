package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/service"
)

// Version is reported by the readiness probe.
var Version = "dev"

// HealthHandler serves the probes. pool and rdb may be nil when the
// database or cache is not configured.
type HealthHandler struct {
	pool       *pgxpool.Pool
	rdb        *redis.Client
	dashboards *service.DashboardService
	startAt    time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client, dashboards *service.DashboardService) *HealthHandler {
	return &HealthHandler{
		pool:       pool,
		rdb:        rdb,
		dashboards: dashboards,
		startAt:    time.Now(),
	}
}

// Live handles GET /health/live: liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready: readiness probe with dependency checks.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	checks := make(fiber.Map)
	overallStatus := "healthy"

	// Snapshot check: nothing can be served before the first fetch.
	checks["snapshot"] = h.checkSnapshot()
	if snap, ok := checks["snapshot"].(fiber.Map); ok {
		if snap["status"] != "up" {
			overallStatus = "unavailable"
		}
	}

	// Database check
	checks["database"] = checkDB(ctx, h.pool)
	if dbCheck, ok := checks["database"].(fiber.Map); ok {
		if dbCheck["status"] == "down" && overallStatus == "healthy" {
			overallStatus = "degraded"
		}
	}

	// Redis check
	checks["redis"] = checkRedis(ctx, h.rdb)
	if redisCheck, ok := checks["redis"].(fiber.Map); ok {
		if redisCheck["status"] == "down" && overallStatus == "healthy" {
			overallStatus = "degraded"
		}
	}

	uptimeSeconds := int(time.Since(h.startAt).Seconds())

	resp := fiber.Map{
		"status":         overallStatus,
		"checks":         checks,
		"uptime_seconds": uptimeSeconds,
		"version":        Version,
	}

	status := fiber.StatusOK
	if overallStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(resp)
}

func (h *HealthHandler) checkSnapshot() fiber.Map {
	ds, err := h.dashboards.Snapshot(service.SourceMain)
	if err != nil {
		return fiber.Map{
			"status": "down",
			"error":  err.Error(),
		}
	}
	return fiber.Map{
		"status":     "up",
		"generation": ds.Generation,
		"rows":       len(ds.Rows),
		"fetched_at": ds.FetchedAt,
	}
}

func checkDB(ctx context.Context, pool *pgxpool.Pool) fiber.Map {
	if pool == nil {
		return fiber.Map{
			"status": "disabled",
		}
	}

	start := time.Now()
	err := pool.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}

func checkRedis(ctx context.Context, rdb *redis.Client) fiber.Map {
	if rdb == nil {
		return fiber.Map{
			"status": "disabled",
		}
	}

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
