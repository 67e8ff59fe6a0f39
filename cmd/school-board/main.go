package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sony/gobreaker"

	httpapi "github.com/i474232898/school-board/internal/api/http"
	"github.com/i474232898/school-board/internal/board"
	"github.com/i474232898/school-board/internal/config"
	"github.com/i474232898/school-board/internal/display"
	"github.com/i474232898/school-board/internal/fetch"
	"github.com/i474232898/school-board/internal/render"
	"github.com/i474232898/school-board/internal/scheduler"
	"github.com/i474232898/school-board/internal/school"
	"github.com/i474232898/school-board/internal/timedisplay"
	"github.com/i474232898/school-board/internal/weather"
	"github.com/i474232898/school-board/internal/weather/providers"
)

func main() {
	// Load configuration (also reads .env).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	stdLog := log.Default()
	// Breaker state changes go to their own logger so a failed fetch stays a single line in stdLog.
	breakerLog := log.New(os.Stderr, "", log.LstdFlags)

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	breakerCfg := fetch.DefaultBreakerConfig()
	breakerCfg.MaxFailures = uint32(cfg.BreakerMaxFailures)

	schoolClient := school.NewClient(cfg.SchoolAPIBaseURL, httpClient, school.Breakers{
		Notifications:  fetch.NewBreaker(string(board.KindNotifications), breakerCfg, breakerLog),
		DailyRoutine:   fetch.NewBreaker(string(board.KindDailyRoutine), breakerCfg, breakerLog),
		LessonSchedule: fetch.NewBreaker(string(board.KindFullLessonSchedule), breakerCfg, breakerLog),
	})
	weatherProvider := newWeatherProvider(cfg, httpClient, fetch.NewBreaker(string(board.KindWeather), breakerCfg, breakerLog))
	fetcher := board.NewFetcher(schoolClient, weatherProvider, cfg.Location, stdLog)

	// In-memory page all renderers write to.
	page := display.NewPage()
	now := time.Now

	sched := scheduler.New(cfg.Timezone, stdLog)
	b, err := board.New(
		fetcher,
		render.New(page, now, cfg.Timezone, stdLog),
		timedisplay.New(page, now, cfg.Timezone),
		sched,
		page,
		board.Intervals{
			Clock:     cfg.ClockInterval,
			Rotation:  cfg.RotationInterval,
			FadeDelay: cfg.FadeDelay,
			Refresh:   cfg.RefreshInterval,
			Fetch:     cfg.HTTPTimeout,
		},
		stdLog,
	)
	if err != nil {
		log.Fatalf("failed to create board: %v", err)
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "school-board",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "school-board",
		})
	})

	httpapi.RegisterRoutes(app, page, b, httpapi.Options{
		PollInterval:   cfg.ClockInterval,
		RefreshTimeout: 3 * cfg.HTTPTimeout,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initial load, then the recurring jobs.
	b.Bootstrap(ctx)
	if err := b.Start(); err != nil {
		log.Fatalf("failed to schedule board jobs: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func newWeatherProvider(cfg *config.AppConfig, client *http.Client, cb *gobreaker.CircuitBreaker) weather.Provider {
	switch cfg.WeatherProvider {
	case config.ProviderWeatherAPI:
		return providers.NewWeatherAPIProvider(client, cfg.WeatherAPIKey, cfg.WeatherLang, cb)
	case config.ProviderOpenMeteo:
		return providers.NewOpenMeteoProvider(client, cb)
	default:
		return providers.NewOpenWeatherProvider(client, cfg.OpenWeatherAPIKey, cfg.WeatherLang, cb)
	}
}
