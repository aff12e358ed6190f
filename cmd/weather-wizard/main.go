package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/kimikokel/weather-wizard/internal/api/http"
	"github.com/kimikokel/weather-wizard/internal/config"
	"github.com/kimikokel/weather-wizard/internal/localtime"
	"github.com/kimikokel/weather-wizard/internal/scheduler"
	"github.com/kimikokel/weather-wizard/internal/session"
	"github.com/kimikokel/weather-wizard/internal/weather"
	"github.com/kimikokel/weather-wizard/internal/weather/openweather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	times, err := localtime.NewFormatter(cfg.Locale, cfg.HourCycle)
	if err != nil {
		log.Fatalf("failed to build time formatter: %v", err)
	}

	// Shared HTTP client for outbound gateway calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	gw := openweather.NewClientWithBaseURL(httpClient, cfg.OpenWeatherAPIKey, cfg.BaseURL)
	sess := session.New(gw, weather.NewAggregator(times), cfg.ForecastPoints)

	// Optional auto-refresh of the active city.
	sched := scheduler.New(sess, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-wizard",
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

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-wizard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, sess)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
