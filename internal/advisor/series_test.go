package advisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesFromForecast(t *testing.T) {
	series, err := SeriesFromForecast(twoDayForecast())
	require.NoError(t, err)
	require.Len(t, series, 48)

	first := series[0]
	assert.Equal(t, "2025-07-01T00:00:00+02:00", first.Time.Format(time.RFC3339))
	assert.Equal(t, safeTemp, first.TemperatureC)
	assert.Equal(t, 50.0, first.RelativeHumidityPct)

	assert.Equal(t, 60.0, series[9].RelativeHumidityPct)
	assert.Equal(t, unsafeTemp, series[11].TemperatureC)
}

func TestSeriesFromForecast_Misaligned(t *testing.T) {
	f := twoDayForecast()
	f.Hourly.RelativeHumidity2m = f.Hourly.RelativeHumidity2m[:10]

	_, err := SeriesFromForecast(f)
	assert.ErrorIs(t, err, ErrMisalignedSeries)
}

func TestSeriesFromForecast_Unordered(t *testing.T) {
	f := twoDayForecast()
	f.Hourly.Time[5] = f.Hourly.Time[4]

	_, err := SeriesFromForecast(f)
	assert.ErrorIs(t, err, ErrUnorderedSeries)
}

func TestSeriesFromForecast_BadTimestamp(t *testing.T) {
	f := twoDayForecast()
	f.Hourly.Time[3] = "yesterday"

	_, err := SeriesFromForecast(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yesterday")
}

func TestSeriesFromForecast_Nil(t *testing.T) {
	_, err := SeriesFromForecast(nil)
	assert.Error(t, err)
}

func TestParseLocalTime(t *testing.T) {
	loc := time.FixedZone("CEST", fixtureOffset)

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"minutes", "2025-07-01T09:00", "2025-07-01T09:00:00+02:00"},
		{"seconds", "2025-07-01T09:00:30", "2025-07-01T09:00:30+02:00"},
		{"rfc3339 converted", "2025-07-01T07:00:00Z", "2025-07-01T09:00:00+02:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocalTime(tt.value, loc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(time.RFC3339))
		})
	}
}
