package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/kimikokel/weather-wizard/internal/weather/openweather"
)

type AppConfig struct {
	// OpenWeatherAPIKey authenticates every gateway call.
	OpenWeatherAPIKey string

	// BaseURL is the OpenWeatherMap API root; override it to point queries
	// at a stub server.
	BaseURL string

	// ForecastPoints is the forecast length requested per query.
	ForecastPoints int

	// Locale and HourCycle drive the local-time formatting of summaries.
	// HourCycle is "locale", "12" or "24".
	Locale    string
	HourCycle string

	// HTTPTimeout bounds each outbound gateway call.
	HTTPTimeout time.Duration

	// RefreshInterval re-runs the active city this often; 0 disables it.
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.BaseURL = getenvDefault("OPENWEATHER_BASE_URL", openweather.DefaultBaseURL)

	cfg.ForecastPoints = getenvInt("FORECAST_POINTS", 8)
	if cfg.ForecastPoints <= 0 {
		return nil, fmt.Errorf("FORECAST_POINTS must be positive")
	}

	cfg.Locale = getenvDefault("LOCALE", "en-US")
	cfg.HourCycle = getenvDefault("HOUR_CYCLE", "locale")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Auto-refresh is off unless asked for.
	refreshStr := getenvDefault("REFRESH_INTERVAL", "0")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
