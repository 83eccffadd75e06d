package advisor

import (
	"errors"
	"fmt"
	"runadvisor/internal/heat"
	"runadvisor/internal/models"
	"time"
)

// openMeteoTimeLayout is the iso8601 form Open-Meteo uses for local hourly times
const openMeteoTimeLayout = "2006-01-02T15:04"

var (
	// ErrMisalignedSeries means the hourly arrays do not have matching lengths
	ErrMisalignedSeries = errors.New("hourly arrays are misaligned")
	// ErrUnorderedSeries means hourly times are not strictly increasing
	ErrUnorderedSeries = errors.New("hourly times are not strictly increasing")
)

// zoneOf returns the fixed zone the provider reported its local times in
func zoneOf(name string, offsetSeconds int) *time.Location {
	if name == "" {
		name = "UTC"
		if offsetSeconds != 0 {
			name = fmt.Sprintf("UTC%+d", offsetSeconds/3600)
		}
	}
	return time.FixedZone(name, offsetSeconds)
}

// ForecastZone returns the local zone of a forecast
func ForecastZone(f *models.Forecast) *time.Location {
	name := f.TimezoneAbbreviation
	if name == "" {
		name = f.Timezone
	}
	return zoneOf(name, f.UTCOffsetSeconds)
}

// ParseLocalTime parses an Open-Meteo timestamp in the given zone. Full RFC 3339
// values carrying their own offset are accepted too.
func ParseLocalTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(openMeteoTimeLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}
	return t.In(loc), nil
}

// SeriesFromForecast turns the index-aligned hourly arrays of a forecast into an
// HourlySeries. It rejects misaligned arrays, unparseable times and times that
// are not strictly increasing.
func SeriesFromForecast(f *models.Forecast) (heat.HourlySeries, error) {
	if f == nil {
		return nil, errors.New("nil forecast")
	}

	h := f.Hourly
	if len(h.Temperature2m) != len(h.Time) || len(h.RelativeHumidity2m) != len(h.Time) {
		return nil, fmt.Errorf("%w: %d times, %d temperatures, %d humidities",
			ErrMisalignedSeries, len(h.Time), len(h.Temperature2m), len(h.RelativeHumidity2m))
	}

	loc := ForecastZone(f)
	series := make(heat.HourlySeries, 0, len(h.Time))
	for i, raw := range h.Time {
		ts, err := ParseLocalTime(raw, loc)
		if err != nil {
			return nil, err
		}
		if i > 0 && !ts.After(series[i-1].Time) {
			return nil, fmt.Errorf("%w: %s follows %s", ErrUnorderedSeries, raw, h.Time[i-1])
		}
		series = append(series, heat.HourlyPoint{
			Time:                ts,
			TemperatureC:        h.Temperature2m[i],
			RelativeHumidityPct: h.RelativeHumidity2m[i],
		})
	}

	return series, nil
}
