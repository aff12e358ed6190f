package weather

// Condition is the coarse weather category reported by the upstream API
// (the `weather[0].main` domain).
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionSnow         Condition = "Snow"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionExtreme      Condition = "Extreme"
)

// CurrentConditions is the observed weather for a location at one instant,
// immutable once received from the gateway.
type CurrentConditions struct {
	LocationName         string    `json:"location"`
	TemperatureC         float64   `json:"temperatureC"`
	FeelsLikeC           float64   `json:"feelsLikeC"`
	HumidityPct          int       `json:"humidityPct"`
	WindSpeedMps         float64   `json:"windSpeedMps"`
	ConditionMain        Condition `json:"conditionMain"`
	ConditionDescription string    `json:"conditionDescription"`
	IconID               string    `json:"iconId"`
	ObservedAtUnix       int64     `json:"observedAtUnix"`
}

// ForecastPoint is a single timestamped prediction in a forecast sequence.
type ForecastPoint struct {
	ForecastAtUnix       int64     `json:"forecastAtUnix"`
	TemperatureC         float64   `json:"temperatureC"`
	ConditionMain        Condition `json:"conditionMain"`
	ConditionDescription string    `json:"conditionDescription"`

	// RainVolumeMm3h is the predicted rain volume over the point's
	// three-hour window. The gateway leaves it zero when the API omits it.
	RainVolumeMm3h float64 `json:"rainVolumeMm3h"`
}

// ForecastSet is an ordered forecast sequence, ascending by ForecastAtUnix,
// in the exact order the gateway returned it. The aggregator never reorders.
type ForecastSet []ForecastPoint

// RainWindow is a rain-matching forecast point reduced to a local wall-clock
// time and a rain intensity.
type RainWindow struct {
	LocalTime   string  `json:"localTime"`
	IntensityMm float64 `json:"intensityMm"`
}

// AggregatedSummary is the derived, render-ready view of one weather query.
// Lifecycle is one-shot: built after both gateway responses arrive, replaced
// wholesale by the next query.
type AggregatedSummary struct {
	Location         string       `json:"location"`
	CurrentTempC     float64      `json:"currentTempC"`
	AvgTempC         float64      `json:"avgTempC"`
	MinTempC         float64      `json:"minTempC"`
	MaxTempC         float64      `json:"maxTempC"`
	HumidityPct      int          `json:"humidityPct"`
	Description      string       `json:"description"`
	Icon             string       `json:"icon"`
	WillRain         bool         `json:"willRain"`
	RainWindows      []RainWindow `json:"rainWindows"`
	CurrentLocalTime string       `json:"currentLocalTime"`
}
