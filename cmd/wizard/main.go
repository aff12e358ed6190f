package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/kimikokel/weather-wizard/internal/config"
	"github.com/kimikokel/weather-wizard/internal/localtime"
	"github.com/kimikokel/weather-wizard/internal/session"
	"github.com/kimikokel/weather-wizard/internal/weather"
	"github.com/kimikokel/weather-wizard/internal/weather/openweather"
)

var (
	localeFlag    = flag.String("locale", "", "BCP 47 locale for time formatting (overrides LOCALE)")
	hourCycleFlag = flag.String("hour-cycle", "", "hour cycle: locale, 12 or 24 (overrides HOUR_CYCLE)")
)

func main() {
	flag.Parse()

	city := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if city == "" {
		fmt.Println("Usage: wizard [-locale en-US] [-hour-cycle 24] <city>")
		fmt.Println("Examples: wizard Tokyo")
		fmt.Println("          wizard -hour-cycle 24 \"Buenos Aires\"")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *localeFlag != "" {
		cfg.Locale = *localeFlag
	}
	if *hourCycleFlag != "" {
		cfg.HourCycle = *hourCycleFlag
	}

	times, err := localtime.NewFormatter(cfg.Locale, cfg.HourCycle)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.OpenWeatherAPIKey == "" {
		fmt.Println("Error: OPENWEATHER_API_KEY is not set")
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	gw := openweather.NewClientWithBaseURL(httpClient, cfg.OpenWeatherAPIKey, cfg.BaseURL)
	sess := session.New(gw, weather.NewAggregator(times), cfg.ForecastPoints)

	fmt.Printf("Fetching weather for %s...\n\n", city)

	res, err := sess.QueryOnce(context.Background(), city)
	if err != nil {
		fmt.Printf("Error: %s\n", session.UserMessage(err))
		os.Exit(1)
	}

	displayResult(res)
}

func displayResult(res session.Result) {
	sum := res.Summary

	header := fmt.Sprintf("Weather Summary for %s:", sum.Location)
	fmt.Println(header)
	fmt.Println(strings.Repeat("-", len(header)))
	fmt.Printf("Conditions:  %s (%s)\n", sum.Description, sum.Icon)
	fmt.Printf("Temperature: %.1f°C\n", sum.CurrentTempC)
	fmt.Printf("  Max:       %.1f°C\n", sum.MaxTempC)
	fmt.Printf("  Min:       %.1f°C\n", sum.MinTempC)
	fmt.Printf("  Average:   %.1f°C\n", sum.AvgTempC)
	fmt.Printf("Feels Like:  %.1f°C\n", res.FeelsLikeC)
	fmt.Printf("Humidity:    %d%%\n", sum.HumidityPct)
	fmt.Printf("Wind Speed:  %.1f m/s\n", res.WindSpeedMps)
	fmt.Printf("Local Time:  %s\n", sum.CurrentLocalTime)

	if res.ExtremeWeather {
		fmt.Println()
		fmt.Println("!!! Extreme weather reported for this location !!!")
	}

	fmt.Println()
	if !sum.WillRain {
		fmt.Println("No rain expected in the forecast window.")
		return
	}

	fmt.Println("Rain expected at:")
	for _, w := range sum.RainWindows {
		fmt.Printf("  %-9s %.1f mm\n", w.LocalTime, w.IntensityMm)
	}
}
