package api

import (
	"context"
	"fmt"
	"runadvisor/internal/models"
)

const airQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

// AirQualityClient is a client for the Open-Meteo air quality API
type AirQualityClient struct {
	req *requester
}

// NewAirQualityClient creates a new air quality client
func NewAirQualityClient(opts ...Option) *AirQualityClient {
	return &AirQualityClient{
		req: newRequester("open-meteo-air-quality", airQualityURL, opts),
	}
}

// BuildURL builds the hourly pm2_5/pm10 request URL
func (c *AirQualityClient) BuildURL(lat, long float64, days int) string {
	url := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&timezone=auto&hourly=pm2_5,pm10", c.req.baseURL, lat, long)
	if days > 0 {
		url += fmt.Sprintf("&forecast_days=%d", days)
	}
	return url
}

// GetAirQuality fetches hourly particulate matter readings for the coordinates
func (c *AirQualityClient) GetAirQuality(ctx context.Context, lat, long float64, days int) (*models.AirQuality, error) {
	var aq models.AirQuality
	if err := c.req.getJSON(ctx, c.BuildURL(lat, long, days), &aq); err != nil {
		return nil, err
	}
	return &aq, nil
}
