package advisor

import (
	"testing"

	"runadvisor/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Advisor.SafeThresholdC = 31
	cfg.Advisor.ForecastDays = 5

	a := FromConfig(cfg, quietLogger())

	assert.Equal(t, Settings{ThresholdC: 31, OutlookHours: 24, ForecastDays: 5}, a.Settings())
	assert.NotNil(t, a.forecasts)
	assert.NotNil(t, a.locator)
	assert.Nil(t, a.airQuality)
}

func TestFromConfig_AirQuality(t *testing.T) {
	cfg := config.Default()
	cfg.Advisor.AirQuality = true

	a := FromConfig(cfg, quietLogger())

	assert.NotNil(t, a.airQuality)
}
