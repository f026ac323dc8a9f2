package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/pinoyinvestor/travelhunter/internal/api/http"
	"github.com/pinoyinvestor/travelhunter/internal/catalog"
	"github.com/pinoyinvestor/travelhunter/internal/config"
	"github.com/pinoyinvestor/travelhunter/internal/geo"
	"github.com/pinoyinvestor/travelhunter/internal/scheduler"
	"github.com/pinoyinvestor/travelhunter/internal/store"
	"github.com/pinoyinvestor/travelhunter/internal/weather"
	"github.com/pinoyinvestor/travelhunter/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Providers with resilience (backoff + circuit breaker). Open-Meteo
	// needs no key and goes first.
	provs := []weather.ForecastProvider{providers.NewOpenMeteoProvider(httpClient, log)}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, log))
	}
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, log))
	}

	var follows weather.FollowStore = store.NewMemoryFollows()
	if cfg.FollowsDBPath != "" {
		db, err := store.NewSQLite(cfg.FollowsDBPath, log)
		if err != nil {
			log.Error("failed to open follows db", "path", cfg.FollowsDBPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		follows = db
	}

	pacing := cfg.FetchPacing
	if pacing == 0 {
		pacing = -1
	}

	service := weather.NewService(weather.ServiceDeps{
		Catalog:   catalog.All(),
		Providers: provs,
		Cache:     store.NewForecastCache(cfg.ForecastCacheTTL, log),
		Rankings:  store.NewMemoryStore(cfg.RankingMaxHistory, cfg.RankingMaxAge),
		Follows:   follows,
		Pacing:    pacing,
		Logger:    log,
	})

	// Scheduler that keeps the default trip ranked.
	sched := scheduler.New(service, scheduler.Trip{
		Days:        cfg.DefaultTripDays,
		Preferences: cfg.Preferences,
		Priority:    cfg.Priority(),
	}, cfg.RefreshInterval, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "travelhunter",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// A full ranking walks the catalog with pacing between fetches.
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: httpapi.ErrorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(compress.New())

	httpapi.RegisterRoutes(app, service, geo.NewResolver(cfg.GeocodingAPIKey, log), httpapi.Defaults{
		Days:        cfg.DefaultTripDays,
		Priority:    cfg.Priority(),
		Preferences: cfg.Preferences,
	})

	go func() {
		log.Info("listening", "port", cfg.Port, "providers", len(provs))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
