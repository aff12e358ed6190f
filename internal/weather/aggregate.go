package weather

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/kimikokel/weather-wizard/internal/common"
	"github.com/kimikokel/weather-wizard/internal/localtime"
)

// ErrEmptyForecast is returned when aggregation is asked to summarize an
// empty forecast sequence, where avg/min/max are undefined.
var ErrEmptyForecast = errors.New("empty forecast set")

// extremeKeywords flag severe weather when any of them appears in a condition
// description, independent of the main condition category.
var extremeKeywords = []string{"typhoon", "storm", "hurricane", "tornado", "severe"}

// Aggregator derives render-ready summaries from raw gateway responses.
// It holds no mutable state and is safe to call from any goroutine.
type Aggregator struct {
	times localtime.Formatter
}

// NewAggregator creates an Aggregator using the given time formatter.
func NewAggregator(times localtime.Formatter) *Aggregator {
	return &Aggregator{times: times}
}

// Aggregate reduces current conditions and a forecast set to an
// AggregatedSummary in a single pass over the set. The set must be non-empty;
// an empty set yields ErrEmptyForecast rather than NaN statistics.
func (a *Aggregator) Aggregate(cur CurrentConditions, set ForecastSet, offsetSeconds int) (AggregatedSummary, error) {
	if len(set) == 0 {
		return AggregatedSummary{}, ErrEmptyForecast
	}

	var (
		sumTemp  float64
		minTemp  = set[0].TemperatureC
		maxTemp  = set[0].TemperatureC
		willRain bool
		windows  []RainWindow
	)

	for _, p := range set {
		sumTemp += p.TemperatureC
		if p.TemperatureC < minTemp {
			minTemp = p.TemperatureC
		}
		if p.TemperatureC > maxTemp {
			maxTemp = p.TemperatureC
		}
		if IsRainPoint(p) {
			willRain = true
			windows = append(windows, RainWindow{
				LocalTime:   a.times.Clock(p.ForecastAtUnix, offsetSeconds),
				IntensityMm: p.RainVolumeMm3h,
			})
		}
	}

	return AggregatedSummary{
		Location:         cur.LocationName,
		CurrentTempC:     cur.TemperatureC,
		AvgTempC:         sumTemp / float64(len(set)),
		MinTempC:         minTemp,
		MaxTempC:         maxTemp,
		HumidityPct:      cur.HumidityPct,
		Description:      capitalizeFirst(cur.ConditionDescription),
		Icon:             cur.IconID,
		WillRain:         willRain,
		RainWindows:      windows,
		CurrentLocalTime: a.times.Clock(cur.ObservedAtUnix, offsetSeconds),
	}, nil
}

// RainWindows filters the set to rain-matching points, preserving the input
// order, without computing the temperature statistics.
func (a *Aggregator) RainWindows(set ForecastSet, offsetSeconds int) []RainWindow {
	var windows []RainWindow
	for _, p := range set {
		if !IsRainPoint(p) {
			continue
		}
		windows = append(windows, RainWindow{
			LocalTime:   a.times.Clock(p.ForecastAtUnix, offsetSeconds),
			IntensityMm: p.RainVolumeMm3h,
		})
	}
	return windows
}

// IsRainPoint reports whether a forecast point predicts rain: "rain" occurs
// case-insensitively in its main condition or in its description.
func IsRainPoint(p ForecastPoint) bool {
	return common.ContainsFold(string(p.ConditionMain), "rain") ||
		common.ContainsFold(p.ConditionDescription, "rain")
}

// IsExtreme reports severe weather for the current conditions: the Extreme
// condition category, or any extreme keyword in the description. The flag is
// reported alongside the summary, not inside it.
func IsExtreme(cur CurrentConditions) bool {
	return cur.ConditionMain == ConditionExtreme ||
		common.HasAny(cur.ConditionDescription, extremeKeywords...)
}

// capitalizeFirst upper-cases only the first character, leaving the rest of
// the string exactly as the API sent it.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
