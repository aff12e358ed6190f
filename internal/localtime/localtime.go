package localtime

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// HourCycle selects how the formatter renders the hour of day.
type HourCycle int

const (
	Cycle24 HourCycle = iota
	Cycle12
)

// twelveHourRegions is a coarse CLDR subset of territories whose conventional
// clock is 12-hour. Regions not listed format as 24-hour.
var twelveHourRegions = map[string]bool{
	"US": true,
	"CA": true,
	"AU": true,
	"NZ": true,
	"PH": true,
	"IN": true,
	"PK": true,
	"BD": true,
	"EG": true,
	"SA": true,
	"CO": true,
	"MX": true,
	"MY": true,
	"SG": true,
}

// Formatter renders unix timestamps as wall-clock strings by adding a fixed
// UTC offset. This is plain offset arithmetic, not IANA timezone conversion;
// DST transitions inside a forecast window are not accounted for.
type Formatter struct {
	cycle HourCycle
}

// NewFormatter builds a formatter for the given BCP-47 locale. cycle may be
// "locale" (or empty) to derive the hour cycle from the locale's region, or
// "12"/"24" to force a convention.
func NewFormatter(locale, cycle string) (Formatter, error) {
	switch cycle {
	case "", "locale":
		tag, err := language.Parse(locale)
		if err != nil {
			return Formatter{}, fmt.Errorf("invalid locale %q: %w", locale, err)
		}
		return Formatter{cycle: cycleForTag(tag)}, nil
	case "12":
		return Formatter{cycle: Cycle12}, nil
	case "24":
		return Formatter{cycle: Cycle24}, nil
	default:
		return Formatter{}, fmt.Errorf("invalid hour cycle %q (want locale, 12 or 24)", cycle)
	}
}

func cycleForTag(tag language.Tag) HourCycle {
	region, _ := tag.Region()
	if twelveHourRegions[region.String()] {
		return Cycle12
	}
	return Cycle24
}

// Clock formats the instant unix+offsetSeconds as an hour:minute string.
func (f Formatter) Clock(unix int64, offsetSeconds int) string {
	t := time.Unix(unix+int64(offsetSeconds), 0).UTC()
	if f.cycle == Cycle12 {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}
