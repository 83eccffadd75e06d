package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runadvisor/internal/heat"
	"runadvisor/internal/metrics"
	"runadvisor/internal/models"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	// ErrFetchFailed wraps any failure to obtain the forecast
	ErrFetchFailed = errors.New("failed to fetch weather")
	// ErrNoLocator is returned by Locate when no locator is configured
	ErrNoLocator = errors.New("location detection is not configured")
)

// ForecastFetcher returns the hourly forecast for a coordinate
type ForecastFetcher interface {
	GetRunningForecast(ctx context.Context, lat, long float64, days int) (*models.Forecast, error)
}

// AirQualityFetcher returns hourly particulate readings for a coordinate
type AirQualityFetcher interface {
	GetAirQuality(ctx context.Context, lat, long float64, days int) (*models.AirQuality, error)
}

// Locator resolves the caller's approximate location
type Locator interface {
	Locate(ctx context.Context) (models.Location, error)
}

// Settings are the advisory defaults applied to every assessment
type Settings struct {
	ThresholdC   float64
	OutlookHours int
	ForecastDays int
	StrictPlan   bool
}

// DefaultSettings mirrors the configuration defaults
func DefaultSettings() Settings {
	return Settings{
		ThresholdC:   heat.DefaultSafeThresholdC,
		OutlookHours: DefaultOutlookHours,
		ForecastDays: 3,
	}
}

// Advisor fetches forecasts and turns them into running reports
type Advisor struct {
	forecasts  ForecastFetcher
	airQuality AirQualityFetcher
	locator    Locator
	settings   Settings
	clock      clockwork.Clock
	logger     *slog.Logger
}

// Option configures an Advisor
type Option func(*Advisor)

// WithAirQuality enables the air-quality side advisory
func WithAirQuality(f AirQualityFetcher) Option {
	return func(a *Advisor) { a.airQuality = f }
}

// WithLocator enables IP based location detection
func WithLocator(l Locator) Option {
	return func(a *Advisor) { a.locator = l }
}

// WithClock replaces the wall clock, mostly for tests
func WithClock(c clockwork.Clock) Option {
	return func(a *Advisor) { a.clock = c }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(a *Advisor) { a.logger = l }
}

// New creates an Advisor
func New(forecasts ForecastFetcher, settings Settings, opts ...Option) *Advisor {
	if settings.ThresholdC == 0 {
		settings.ThresholdC = heat.DefaultSafeThresholdC
	}
	if settings.OutlookHours <= 0 {
		settings.OutlookHours = DefaultOutlookHours
	}
	if settings.ForecastDays <= 0 {
		settings.ForecastDays = 3
	}

	a := &Advisor{
		forecasts: forecasts,
		settings:  settings,
		clock:     clockwork.NewRealClock(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Settings returns the defaults this advisor was built with
func (a *Advisor) Settings() Settings {
	return a.settings
}

// AssessOption overrides a setting for a single assessment
type AssessOption func(*ReportInput)

// WithThreshold overrides the safe-window threshold
func WithThreshold(thresholdC float64) AssessOption {
	return func(in *ReportInput) {
		if thresholdC > 0 {
			in.ThresholdC = thresholdC
		}
	}
}

// WithStrictPlan selects fully merged planner windows instead of first-to-last spans
func WithStrictPlan(strict bool) AssessOption {
	return func(in *ReportInput) { in.StrictPlan = strict }
}

// Assess fetches the forecast for loc and builds its report. An air-quality
// failure only degrades that section to Unavailable.
func (a *Advisor) Assess(ctx context.Context, loc models.Location, opts ...AssessOption) (*Report, error) {
	log := a.logger.With("location", loc.Name, "lat", loc.Latitude, "lon", loc.Longitude)

	forecast, err := a.forecasts.GetRunningForecast(ctx, loc.Latitude, loc.Longitude, a.settings.ForecastDays)
	if err != nil {
		metrics.RecordAdvisoryFailure("fetch")
		log.Error("failed to fetch forecast", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	var airQuality *models.AirQuality
	if a.airQuality != nil {
		airQuality, err = a.airQuality.GetAirQuality(ctx, loc.Latitude, loc.Longitude, a.settings.ForecastDays)
		if err != nil {
			metrics.RecordAdvisoryFailure("air_quality")
			log.Warn("air quality unavailable", "error", err)
			airQuality = nil
		}
	}

	in := ReportInput{
		Location:     loc,
		Forecast:     forecast,
		AirQuality:   airQuality,
		ThresholdC:   a.settings.ThresholdC,
		OutlookHours: a.settings.OutlookHours,
		StrictPlan:   a.settings.StrictPlan,
		GeneratedAt:  a.clock.Now(),
	}
	for _, opt := range opts {
		opt(&in)
	}

	report, err := BuildReport(in)
	if err != nil {
		metrics.RecordAdvisoryFailure("build")
		log.Error("failed to build report", "error", err)
		return nil, err
	}

	var best *time.Duration
	if report.Today.Best != nil {
		d := report.Today.Best.Duration()
		best = &d
	}
	metrics.RecordAdvisory(report.Current.Risk.Level.String(), best)

	log.Info("assessment complete",
		"heat_index_c", report.Current.HeatIndex.HeatIndexC,
		"risk", report.Current.Risk.Level.String(),
		"safe_windows", len(report.Today.Windows))

	return report, nil
}

// Locate resolves the caller's location through the configured locator
func (a *Advisor) Locate(ctx context.Context) (models.Location, error) {
	if a.locator == nil {
		return models.Location{}, ErrNoLocator
	}

	loc, err := a.locator.Locate(ctx)
	if err != nil {
		metrics.RecordAdvisoryFailure("locate")
		return models.Location{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return loc, nil
}

// AssessHere detects the caller's location and assesses it
func (a *Advisor) AssessHere(ctx context.Context, opts ...AssessOption) (*Report, error) {
	loc, err := a.Locate(ctx)
	if err != nil {
		return nil, err
	}
	return a.Assess(ctx, loc, opts...)
}
