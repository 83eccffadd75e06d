package advisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"runadvisor/internal/heat"
	"runadvisor/internal/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForecasts struct {
	forecast *models.Forecast
	err      error
	days     int
}

func (f *fakeForecasts) GetRunningForecast(_ context.Context, _, _ float64, days int) (*models.Forecast, error) {
	f.days = days
	return f.forecast, f.err
}

type fakeAirQuality struct {
	aq  *models.AirQuality
	err error
}

func (f *fakeAirQuality) GetAirQuality(context.Context, float64, float64, int) (*models.AirQuality, error) {
	return f.aq, f.err
}

type fakeLocator struct {
	loc models.Location
	err error
}

func (f *fakeLocator) Locate(context.Context) (models.Location, error) {
	return f.loc, f.err
}

var berlin = models.Location{Name: "Berlin", Latitude: 52.52, Longitude: 13.41}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_Defaults(t *testing.T) {
	a := New(&fakeForecasts{}, Settings{})

	assert.Equal(t, DefaultSettings(), a.Settings())
}

func TestAssess(t *testing.T) {
	now := time.Date(2025, 7, 1, 7, 3, 0, 0, time.UTC)
	forecasts := &fakeForecasts{forecast: twoDayForecast()}
	a := New(forecasts, Settings{ForecastDays: 2},
		WithAirQuality(&fakeAirQuality{aq: airQualityFixture()}),
		WithClock(clockwork.NewFakeClockAt(now)),
		WithLogger(quietLogger()),
	)

	report, err := a.Assess(context.Background(), berlin)
	require.NoError(t, err)

	assert.Equal(t, 2, forecasts.days)
	assert.Equal(t, now, report.GeneratedAt)
	assert.Equal(t, berlin, report.Location)
	assert.Equal(t, heat.RiskModerate, report.Current.Risk.Level)
	assert.Equal(t, AirQualityUnhealthySensitive, report.AirQuality.Status)
}

func TestAssess_Options(t *testing.T) {
	a := New(&fakeForecasts{forecast: twoDayForecast()}, DefaultSettings(), WithLogger(quietLogger()))

	report, err := a.Assess(context.Background(), berlin, WithThreshold(20), WithStrictPlan(true))
	require.NoError(t, err)

	assert.Equal(t, 20.0, report.ThresholdC)
	assert.True(t, report.StrictPlan)
	assert.True(t, report.Today.NoSafeTime)
}

func TestAssess_FetchError(t *testing.T) {
	upstream := errors.New("connection refused")
	a := New(&fakeForecasts{err: upstream}, DefaultSettings(), WithLogger(quietLogger()))

	_, err := a.Assess(context.Background(), berlin)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, upstream)
}

func TestAssess_AirQualityFailureDegrades(t *testing.T) {
	a := New(&fakeForecasts{forecast: twoDayForecast()}, DefaultSettings(),
		WithAirQuality(&fakeAirQuality{err: errors.New("timeout")}),
		WithLogger(quietLogger()),
	)

	report, err := a.Assess(context.Background(), berlin)
	require.NoError(t, err)
	assert.Equal(t, AirQualityUnavailable, report.AirQuality.Status)
}

func TestAssess_EmptySeries(t *testing.T) {
	a := New(&fakeForecasts{forecast: &models.Forecast{}}, DefaultSettings(), WithLogger(quietLogger()))

	_, err := a.Assess(context.Background(), berlin)
	assert.ErrorIs(t, err, heat.ErrEmptySeries)
	assert.NotErrorIs(t, err, ErrFetchFailed)
}

func TestLocate(t *testing.T) {
	a := New(&fakeForecasts{}, DefaultSettings(), WithLocator(&fakeLocator{loc: berlin}))

	loc, err := a.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, berlin, loc)
}

func TestLocate_NotConfigured(t *testing.T) {
	a := New(&fakeForecasts{}, DefaultSettings())

	_, err := a.Locate(context.Background())
	assert.ErrorIs(t, err, ErrNoLocator)
}

func TestAssessHere(t *testing.T) {
	a := New(&fakeForecasts{forecast: twoDayForecast()}, DefaultSettings(),
		WithLocator(&fakeLocator{loc: berlin}),
		WithLogger(quietLogger()),
	)

	report, err := a.AssessHere(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Berlin", report.Location.Name)
}

func TestAssessHere_LocatorError(t *testing.T) {
	a := New(&fakeForecasts{forecast: twoDayForecast()}, DefaultSettings(),
		WithLocator(&fakeLocator{err: errors.New("no network")}),
	)

	_, err := a.AssessHere(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
}
