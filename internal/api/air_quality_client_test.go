package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAirQualityBuildURL(t *testing.T) {
	client := NewAirQualityClient()

	got := client.BuildURL(52.52, 13.41, 3)
	want := "https://air-quality-api.open-meteo.com/v1/air-quality?latitude=52.5200&longitude=13.4100&timezone=auto&hourly=pm2_5,pm10&forecast_days=3"

	assert.Equal(t, want, got)
	assert.NotContains(t, client.BuildURL(52.52, 13.41, 0), "forecast_days")
}

func TestGetAirQuality(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pm2_5,pm10", r.URL.Query().Get("hourly"))
		w.Write([]byte(`{
			"latitude": 52.5,
			"longitude": 13.4,
			"utc_offset_seconds": 7200,
			"hourly": {
				"time": ["2025-07-01T10:00", "2025-07-01T11:00"],
				"pm2_5": [8.4, null],
				"pm10": [14.0, 15.5]
			}
		}`))
	}))
	defer srv.Close()

	client := NewAirQualityClient(WithBaseURL(srv.URL))

	aq, err := client.GetAirQuality(context.Background(), 52.52, 13.41, 1)
	require.NoError(t, err)

	require.Len(t, aq.Hourly.PM25, 2)
	require.NotNil(t, aq.Hourly.PM25[0])
	assert.Equal(t, 8.4, *aq.Hourly.PM25[0])
	assert.Nil(t, aq.Hourly.PM25[1])
	assert.Equal(t, 15.5, *aq.Hourly.PM10[1])
}

func TestGetAirQuality_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewAirQualityClient(WithBaseURL(srv.URL))

	_, err := client.GetAirQuality(context.Background(), 52.52, 13.41, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
