package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/chat"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/config"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/db"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/handler"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/ingest"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/metrics"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/repository"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/router"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "dashtva", cfg.IsDevelopment())
	log := middleware.Logger

	if cfg.DotEnvLoaded {
		log.Info().Msg("loaded .env")
	}
	if cfg.CSVURL == "" {
		log.Fatal().Msg("CSV_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Persistence is optional.
	var (
		pool        *pgxpool.Pool
		runs        service.RefreshStore
		transcripts service.TranscriptStore
	)
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		runs = repository.NewRefreshRepo(pool)
		transcripts = repository.NewTranscriptRepo(pool)
	}
	metrics.Register(pool)

	cache := service.NewCacheService(cfg.RedisURL, cfg.ReportCacheTTL)
	defer cache.Close()

	registry := ingest.NewRegistry(cfg.SheetURLs())
	fetcher := ingest.NewFetcher(cfg.CSVFetchTimeout)

	dashboardSvc := service.NewDashboardService(registry, cache)
	statsSvc := service.NewStatsService(dashboardSvc)
	summarySvc := service.NewSummaryService(dashboardSvc)
	refreshSvc := service.NewRefreshService(registry, fetcher, runs)

	llm := chat.NewClient(chat.Config{
		BaseURL:       cfg.LLMBaseURL,
		APIKey:        cfg.LLMAPIKey,
		Model:         cfg.LLMModel,
		Temperature:   cfg.LLMTemperature,
		Timeout:       cfg.LLMTimeout,
		RatePerMinute: cfg.LLMRatePerMinute,
	})
	if !llm.Configured() {
		log.Warn().Msg("LLM_API_KEY not set, chat disabled")
	}
	inference := chat.NewInferenceClient(cfg.InferenceURL, cfg.InferenceToken, cfg.LLMTimeout, cfg.LLMRatePerMinute)
	chatSvc := service.NewChatService(summarySvc, llm, inference, transcripts, cfg.LLMPromptTokenBudget)

	worker := service.NewRefreshWorker(refreshSvc, cfg.CSVRefreshInterval)

	app := fiber.New(fiber.Config{
		AppName:      "Dashtva API",
		ServerHeader: "Dashtva",
	})
	app.Use(handler.MetricsMiddleware())
	app.Get("/metrics", handler.MetricsHandler())

	router.Setup(app, &router.Handlers{
		Health:    handler.NewHealthHandler(pool, cache.Client(), dashboardSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Stats:     handler.NewStatsHandler(statsSvc),
		Chat:      handler.NewChatHandler(chatSvc, summarySvc),
		Refresh:   handler.NewRefreshHandler(refreshSvc),
	}, cfg.CORSOrigins)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("server starting")
		return app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true})
	})

	g.Go(func() error {
		worker.Start(gCtx)
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down")
		worker.Stop()
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
