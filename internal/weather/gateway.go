package weather

import "context"

// ForecastBundle is everything one forecast call yields: the ordered points
// plus the location's UTC offset, which is constant for the whole response
// set and used to localize every timestamp in it.
type ForecastBundle struct {
	City                  string      `json:"city"`
	TimezoneOffsetSeconds int         `json:"timezoneOffsetSeconds"`
	Points                ForecastSet `json:"points"`
}

// Gateway abstracts the upstream weather API (e.g. OpenWeatherMap): one call
// for current conditions, one for an n-point forecast. Implementations must
// honor context cancellation.
type Gateway interface {
	Current(ctx context.Context, city string) (CurrentConditions, error)
	Forecast(ctx context.Context, city string, points int) (ForecastBundle, error)
}
