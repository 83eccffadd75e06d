package heat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		temperature float64
		humidity    float64
		want        float64
	}{
		{
			name:        "below threshold is passed through",
			temperature: 26.9,
			humidity:    95,
			want:        26.9,
		},
		{
			name:        "below threshold is not rounded",
			temperature: 12.34,
			humidity:    50,
			want:        12.34,
		},
		{
			name:        "negative temperature passed through",
			temperature: -5,
			humidity:    80,
			want:        -5,
		},
		{
			name:        "exactly 27 uses the polynomial",
			temperature: 27.0,
			humidity:    50,
			want:        27.6,
		},
		{
			name:        "zero humidity at 27",
			temperature: 27.0,
			humidity:    0,
			want:        25.8,
		},
		{
			name:        "hot and humid",
			temperature: 35,
			humidity:    50,
			want:        40.8,
		},
		{
			name:        "warm and dry",
			temperature: 29,
			humidity:    40,
			want:        28.7,
		},
		{
			name:        "just below a half tenth rounds down",
			temperature: 30,
			humidity:    75,
			want:        36.5,
		},
		{
			name:        "hot and dry rounds down",
			temperature: 40,
			humidity:    25,
			want:        41.1,
		},
		{
			name:        "lands on the safe threshold",
			temperature: 30,
			humidity:    60,
			want:        33.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.temperature, tt.humidity)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompute_BelowThresholdIgnoresHumidity(t *testing.T) {
	for _, rh := range []float64{0, 25, 50, 75, 100} {
		assert.Equal(t, 26.9, Compute(26.9, rh), "humidity %v", rh)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	first := Compute(33, 50)
	second := Compute(33, 50)
	assert.Equal(t, first, second)
	assert.Equal(t, 36.4, first)
}

func TestHeatIndex(t *testing.T) {
	p := HourlyPoint{
		Time:                time.Date(2025, 7, 1, 14, 0, 0, 0, time.UTC),
		TemperatureC:        35,
		RelativeHumidityPct: 40,
	}

	got := HeatIndex(p)

	assert.Equal(t, 37.3, got.HeatIndexC)
	assert.Equal(t, p, got.Source)
}

func TestOutlook(t *testing.T) {
	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	series := make(HourlySeries, 30)
	for i := range series {
		series[i] = HourlyPoint{Time: base.Add(time.Duration(i) * time.Hour), TemperatureC: 20 + float64(i)/10, RelativeHumidityPct: 50}
	}

	t.Run("full window", func(t *testing.T) {
		got := Outlook(series, 2, 24)
		require.Len(t, got, 24)
		assert.Equal(t, series[2].Time, got[0].Source.Time)
		assert.Equal(t, series[25].Time, got[23].Source.Time)
	})

	t.Run("truncated at end of series", func(t *testing.T) {
		got := Outlook(series, 20, 24)
		assert.Len(t, got, 10)
	})

	t.Run("out of range start", func(t *testing.T) {
		assert.Empty(t, Outlook(series, 30, 24))
		assert.Empty(t, Outlook(series, -1, 24))
	})

	t.Run("zero hours", func(t *testing.T) {
		assert.Empty(t, Outlook(series, 0, 0))
	})
}
