package openweather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kimikokel/weather-wizard/internal/weather"
)

const currentPayload = `{
	"name": "Tokyo",
	"dt": 1736208000,
	"main": {"temp": 21.4, "feels_like": 22.1, "humidity": 60},
	"wind": {"speed": 3.6},
	"weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}]
}`

const forecastPayload = `{
	"list": [
		{"dt": 1736218800, "main": {"temp": 20.0}, "weather": [{"main": "Clouds", "description": "scattered clouds"}]},
		{"dt": 1736229600, "main": {"temp": 18.5}, "weather": [{"main": "Rain", "description": "light rain"}], "rain": {"3h": 2.3}},
		{"dt": 1736240400, "main": {"temp": 17.1}, "weather": [{"main": "Clear", "description": "clear sky"}]}
	],
	"city": {"name": "Tokyo", "timezone": 32400}
}`

func TestCurrentDecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Tokyo" || q.Get("units") != "metric" || q.Get("appid") != "test-key" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, currentPayload)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.Client(), "test-key", srv.URL)
	cur, err := c.Current(context.Background(), "Tokyo")
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}

	if cur.LocationName != "Tokyo" {
		t.Errorf("LocationName = %q, want Tokyo", cur.LocationName)
	}
	if cur.TemperatureC != 21.4 || cur.FeelsLikeC != 22.1 {
		t.Errorf("temps = %v / %v, want 21.4 / 22.1", cur.TemperatureC, cur.FeelsLikeC)
	}
	if cur.HumidityPct != 60 {
		t.Errorf("HumidityPct = %d, want 60", cur.HumidityPct)
	}
	if cur.WindSpeedMps != 3.6 {
		t.Errorf("WindSpeedMps = %v, want 3.6", cur.WindSpeedMps)
	}
	if cur.ConditionMain != weather.ConditionRain || cur.ConditionDescription != "light rain" {
		t.Errorf("condition = %q / %q", cur.ConditionMain, cur.ConditionDescription)
	}
	if cur.IconID != "10d" {
		t.Errorf("IconID = %q, want 10d", cur.IconID)
	}
	if cur.ObservedAtUnix != 1736208000 {
		t.Errorf("ObservedAtUnix = %d, want 1736208000", cur.ObservedAtUnix)
	}
}

func TestForecastDecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("cnt"); got != "8" {
			t.Errorf("cnt = %q, want 8", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, forecastPayload)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.Client(), "test-key", srv.URL)
	bundle, err := c.Forecast(context.Background(), "Tokyo", 8)
	if err != nil {
		t.Fatalf("Forecast returned error: %v", err)
	}

	if bundle.City != "Tokyo" {
		t.Errorf("City = %q, want Tokyo", bundle.City)
	}
	if bundle.TimezoneOffsetSeconds != 32400 {
		t.Errorf("TimezoneOffsetSeconds = %d, want 32400", bundle.TimezoneOffsetSeconds)
	}
	if len(bundle.Points) != 3 {
		t.Fatalf("got %d points, want 3", len(bundle.Points))
	}

	// Points must keep the API's chronological order.
	wantDt := []int64{1736218800, 1736229600, 1736240400}
	for i, p := range bundle.Points {
		if p.ForecastAtUnix != wantDt[i] {
			t.Errorf("point %d: ForecastAtUnix = %d, want %d", i, p.ForecastAtUnix, wantDt[i])
		}
	}

	if bundle.Points[0].RainVolumeMm3h != 0 {
		t.Errorf("point 0: RainVolumeMm3h = %v, want 0", bundle.Points[0].RainVolumeMm3h)
	}
	if bundle.Points[1].RainVolumeMm3h != 2.3 {
		t.Errorf("point 1: RainVolumeMm3h = %v, want 2.3", bundle.Points[1].RainVolumeMm3h)
	}
	if bundle.Points[1].ConditionMain != weather.ConditionRain {
		t.Errorf("point 1: ConditionMain = %q, want Rain", bundle.Points[1].ConditionMain)
	}
}

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrCityNotFound},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrUpstream},
		{http.StatusServiceUnavailable, ErrUpstream},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		c := NewClientWithBaseURL(srv.Client(), "test-key", srv.URL)
		_, err := c.Current(context.Background(), "Nowhere")
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: got %v, want %v", tc.status, err, tc.want)
		}
		srv.Close()
	}
}

func TestMissingAPIKey(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.Client(), "", srv.URL)
	if _, err := c.Current(context.Background(), "Tokyo"); err == nil {
		t.Error("Current with empty key should fail")
	}
	if _, err := c.Forecast(context.Background(), "Tokyo", 8); err == nil {
		t.Error("Forecast with empty key should fail")
	}
	if hits != 0 {
		t.Errorf("server was hit %d times, want 0", hits)
	}
}
