package heat

import (
	"errors"
	"time"
)

// DefaultSafeThresholdC is the heat index below which an hour counts as safe to run.
const DefaultSafeThresholdC = 33.0

// ErrEmptySeries is returned when there is no hourly data to match against
var ErrEmptySeries = errors.New("cannot determine current conditions: empty series")

// HourlyPoint is a single forecast hour
type HourlyPoint struct {
	Time                time.Time `json:"time"`
	TemperatureC        float64   `json:"temperature_c"`
	RelativeHumidityPct float64   `json:"relative_humidity_pct"`
}

// HourlySeries is an ordered run of forecast hours with strictly increasing times.
// Callers own it; functions in this package only read it.
type HourlySeries []HourlyPoint

// Times returns the timestamps of the series in order
func (s HourlySeries) Times() []time.Time {
	times := make([]time.Time, len(s))
	for i, p := range s {
		times[i] = p.Time
	}
	return times
}

// HeatIndexResult pairs a computed heat index with the hour it was computed from
type HeatIndexResult struct {
	HeatIndexC float64     `json:"heat_index_c"`
	Source     HourlyPoint `json:"source"`
}

// SafeWindow is a maximal run of consecutive safe hours. Start and End are both
// timestamps taken from the series, so a single safe hour has Start == End.
type SafeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End - Start
func (w SafeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// DayPlan summarises the safe running time of one calendar date
type DayPlan struct {
	Date       string       `json:"date"` // YYYY-MM-DD in the series' local time
	Windows    []SafeWindow `json:"windows"`
	NoSafeTime bool         `json:"no_safe_time"`
}

// Plan holds one DayPlan per date, in the order the dates first appear in the series
type Plan struct {
	Days []DayPlan `json:"days"`
}

// Day looks up the plan for a date formatted as YYYY-MM-DD
func (p Plan) Day(date string) (DayPlan, bool) {
	for _, d := range p.Days {
		if d.Date == date {
			return d, true
		}
	}
	return DayPlan{}, false
}

// Dates returns the planned dates in order
func (p Plan) Dates() []string {
	dates := make([]string, len(p.Days))
	for i, d := range p.Days {
		dates[i] = d.Date
	}
	return dates
}

// dateKey formats the calendar date of t in its own location
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
