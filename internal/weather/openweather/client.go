package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/kimikokel/weather-wizard/internal/weather"
)

// DefaultBaseURL is the production OpenWeatherMap API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

var (
	// ErrCityNotFound means the API does not know the queried city.
	ErrCityNotFound = errors.New("city not found")
	// ErrUnauthorized means the API rejected the configured credential.
	ErrUnauthorized = errors.New("invalid api credential")
	// ErrRateLimited means the API throttled the request.
	ErrRateLimited = errors.New("rate limited")
	// ErrUpstream means the API itself failed.
	ErrUpstream = errors.New("upstream server error")

	errNoAPIKey    = errors.New("openweather api key is not configured")
	errCircuitOpen = errors.New("circuit breaker open")
	errUnexpected  = errors.New("unexpected status code")
)

// Client implements weather.Gateway against the OpenWeatherMap API. Both
// endpoints share one circuit breaker; failed calls are not retried.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a gateway client for the production API.
func NewClient(client *http.Client, apiKey string) *Client {
	return NewClientWithBaseURL(client, apiKey, DefaultBaseURL)
}

// NewClientWithBaseURL creates a gateway client against a custom API root.
func NewClientWithBaseURL(client *http.Client, apiKey, baseURL string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: cb,
	}
}

// Current fetches the observed conditions for a city.
func (c *Client) Current(ctx context.Context, city string) (weather.CurrentConditions, error) {
	if c.apiKey == "" {
		return weather.CurrentConditions{}, errNoAPIKey
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("units", "metric")
	values.Set("appid", c.apiKey)

	var payload struct {
		Name string `json:"name"`
		Dt   int64  `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	}

	if err := c.getJSON(ctx, "/weather", values, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}

	if len(payload.Weather) == 0 {
		return weather.CurrentConditions{}, fmt.Errorf("current response for %q carries no weather entry", city)
	}

	return weather.CurrentConditions{
		LocationName:         payload.Name,
		TemperatureC:         payload.Main.Temp,
		FeelsLikeC:           payload.Main.FeelsLike,
		HumidityPct:          payload.Main.Humidity,
		WindSpeedMps:         payload.Wind.Speed,
		ConditionMain:        weather.Condition(payload.Weather[0].Main),
		ConditionDescription: payload.Weather[0].Description,
		IconID:               payload.Weather[0].Icon,
		ObservedAtUnix:       payload.Dt,
	}, nil
}

// Forecast fetches an n-point forecast for a city. The returned points keep
// the API's order; the bundle carries the location's UTC offset.
func (c *Client) Forecast(ctx context.Context, city string, points int) (weather.ForecastBundle, error) {
	if c.apiKey == "" {
		return weather.ForecastBundle{}, errNoAPIKey
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("units", "metric")
	values.Set("cnt", strconv.Itoa(points))
	values.Set("appid", c.apiKey)

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
			Rain struct {
				ThreeH float64 `json:"3h"`
			} `json:"rain"`
		} `json:"list"`
		City struct {
			Name     string `json:"name"`
			Timezone int    `json:"timezone"`
		} `json:"city"`
	}

	if err := c.getJSON(ctx, "/forecast", values, &payload); err != nil {
		return weather.ForecastBundle{}, err
	}

	set := make(weather.ForecastSet, 0, len(payload.List))
	for _, item := range payload.List {
		p := weather.ForecastPoint{
			ForecastAtUnix: item.Dt,
			TemperatureC:   item.Main.Temp,
			RainVolumeMm3h: item.Rain.ThreeH,
		}
		if len(item.Weather) > 0 {
			p.ConditionMain = weather.Condition(item.Weather[0].Main)
			p.ConditionDescription = item.Weather[0].Description
		}
		set = append(set, p)
	}

	return weather.ForecastBundle{
		City:                  payload.City.Name,
		TimezoneOffsetSeconds: payload.City.Timezone,
		Points:                set,
	}, nil
}

// getJSON performs one GET against the API inside the circuit breaker and
// decodes the JSON body into target.
func (c *Client) getJSON(ctx context.Context, path string, values url.Values, target any) error {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if stErr := statusError(resp.StatusCode); stErr != nil {
			resp.Body.Close()
			return nil, stErr
		}
		return resp, nil
	})
	if err != nil {
		// If the circuit is open, report that rather than the probe error.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return fmt.Errorf("unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(target)
}

// statusError maps upstream status codes onto the gateway error taxonomy.
func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrCityNotFound
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code >= 500:
		return ErrUpstream
	default:
		return fmt.Errorf("%w: %d", errUnexpected, code)
	}
}
