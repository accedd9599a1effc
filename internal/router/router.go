package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/handler"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health    *handler.HealthHandler
	Dashboard *handler.DashboardHandler
	Stats     *handler.StatsHandler
	Chat      *handler.ChatHandler
	Refresh   *handler.RefreshHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health checks (before API group, not rate limited)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	read := middleware.NewReadRateLimiter().Handler()
	stats := middleware.NewStatsRateLimiter().Handler()
	chat := middleware.NewChatRateLimiter().Handler()
	inference := middleware.NewInferenceRateLimiter().Handler()
	refresh := middleware.NewRefreshRateLimiter().Handler()

	// API routes
	api := app.Group("/api")

	// Dashboard routes
	api.Get("/outlets", read, h.Dashboard.Outlets)
	api.Get("/dates", read, h.Dashboard.Dates)
	api.Get("/score", read, h.Dashboard.Score)
	api.Get("/metrics", read, h.Dashboard.Metrics)
	api.Get("/dashboard", read, h.Dashboard.Report)
	api.Get("/trend", read, h.Dashboard.Trend)
	api.Get("/regions", read, h.Dashboard.Regions)
	api.Get("/series", read, h.Dashboard.Series)
	api.Get("/summary", read, h.Chat.Summary)

	// Stats routes
	api.Get("/correlation", stats, h.Stats.Correlation)
	api.Post("/target", stats, h.Stats.Target)

	// Chat routes
	api.Post("/chat", chat, h.Chat.Ask)
	api.Get("/chat/transcripts", read, h.Chat.Transcripts)
	api.Post("/inference", inference, h.Chat.Inference)

	// Refresh routes
	api.Post("/refresh", refresh, h.Refresh.Refresh)
	api.Get("/refreshes", read, h.Refresh.History)
}
