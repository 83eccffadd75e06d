package api

import (
	"context"
	"fmt"
	"runadvisor/internal/models"
	"strings"
)

const baseURL = "https://api.open-meteo.com/v1/forecast"

// RunningFields are the hourly fields the heat index needs
var RunningFields = []string{"temperature_2m", "relative_humidity_2m"}

// OpenMeteoClient is a client for the Open-Meteo forecast API
type OpenMeteoClient struct {
	req *requester
}

type ForecastParams struct {
	Latitude        float64
	Longitude       float64
	HourlyFields    []string
	CurrentWeather  bool
	Timezone        string
	TemperatureUnit string
	PastDays        int // how many days in the past you want to get
	ForecastDays    int // how many days in the future you want to forecast
}

// NewOpenMeteoClient creates a new Open-Meteo API client
func NewOpenMeteoClient(opts ...Option) *OpenMeteoClient {
	return &OpenMeteoClient{
		req: newRequester("open-meteo", baseURL, opts),
	}
}

// GetForecast fetches forecast data for the given parameters
func (c *OpenMeteoClient) GetForecast(ctx context.Context, forecastParams ForecastParams) (*models.Forecast, error) {
	var forecast models.Forecast
	if err := c.req.getJSON(ctx, c.BuildURL(forecastParams), &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}

// Builds URL for OpenMeteoClient request
func (c *OpenMeteoClient) BuildURL(forecastParams ForecastParams) string {
	if forecastParams.Timezone == "" {
		forecastParams.Timezone = "auto"
	}

	if forecastParams.TemperatureUnit == "" {
		forecastParams.TemperatureUnit = "celsius"
	}

	url := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&timezone=%s&temperature_unit=%s",
		c.req.baseURL, forecastParams.Latitude, forecastParams.Longitude, forecastParams.Timezone, forecastParams.TemperatureUnit)

	if forecastParams.PastDays > 0 {
		url += fmt.Sprintf("&past_days=%d", forecastParams.PastDays)
	}

	if forecastParams.ForecastDays > 0 {
		url += fmt.Sprintf("&forecast_days=%d", forecastParams.ForecastDays)
	}

	if forecastParams.CurrentWeather {
		url += "&current_weather=true"
	}

	if len(forecastParams.HourlyFields) > 0 {
		url += "&hourly=" + strings.Join(forecastParams.HourlyFields, ",")
	}

	return url
}

// GetRunningForecast fetches current weather plus hourly temperature and humidity
// in Celsius, local to the location's timezone
func (c *OpenMeteoClient) GetRunningForecast(ctx context.Context, lat, long float64, days int) (*models.Forecast, error) {
	if days < 1 {
		return nil, fmt.Errorf("GetRunningForecast: forecast days must be positive, got %d", days)
	}

	return c.GetForecast(ctx, ForecastParams{
		Latitude:       lat,
		Longitude:      long,
		HourlyFields:   RunningFields,
		CurrentWeather: true,
		ForecastDays:   days,
	})
}
