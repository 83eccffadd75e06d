package advisor

import (
	"log/slog"
	"runadvisor/internal/api"
	"runadvisor/internal/config"
)

// FromConfig wires the Open-Meteo, air-quality and ipinfo clients into an Advisor
func FromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) *Advisor {
	clientOpts := []api.Option{
		api.WithTimeout(cfg.API.Timeout),
		api.WithRateLimit(cfg.API.RequestsPerSecond, cfg.API.Burst),
	}

	settings := Settings{
		ThresholdC:   cfg.Advisor.SafeThresholdC,
		OutlookHours: cfg.Advisor.OutlookHours,
		ForecastDays: cfg.Advisor.ForecastDays,
		StrictPlan:   cfg.Advisor.StrictPlan,
	}

	base := []Option{
		WithLogger(logger),
		WithLocator(api.NewIPInfoClient(clientOpts...)),
	}
	if cfg.Advisor.AirQuality {
		base = append(base, WithAirQuality(api.NewAirQualityClient(clientOpts...)))
	}

	return New(api.NewOpenMeteoClient(clientOpts...), settings, append(base, opts...)...)
}
