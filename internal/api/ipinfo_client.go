package api

import (
	"context"
	"fmt"
	"runadvisor/internal/models"
	"strconv"
	"strings"
)

const ipInfoURL = "https://ipinfo.io/json"

// IPInfoClient detects the caller's approximate location from its public IP
type IPInfoClient struct {
	req *requester
}

// NewIPInfoClient creates a new ipinfo.io client
func NewIPInfoClient(opts ...Option) *IPInfoClient {
	return &IPInfoClient{
		req: newRequester("ipinfo", ipInfoURL, opts),
	}
}

// Locate returns the location of the current public IP
func (c *IPInfoClient) Locate(ctx context.Context) (models.Location, error) {
	var info models.IPInfo
	if err := c.req.getJSON(ctx, c.req.baseURL, &info); err != nil {
		return models.Location{}, err
	}
	return LocationFromIPInfo(info)
}

// LocationFromIPInfo parses the "lat,lon" field of an ipinfo response
func LocationFromIPInfo(info models.IPInfo) (models.Location, error) {
	parts := strings.Split(info.Loc, ",")
	if len(parts) != 2 {
		return models.Location{}, fmt.Errorf("invalid ipinfo loc %q", info.Loc)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("invalid ipinfo latitude %q: %w", parts[0], err)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("invalid ipinfo longitude %q: %w", parts[1], err)
	}

	name := info.City
	if name == "" {
		name = "Unknown"
	}

	return models.Location{Name: name, Latitude: lat, Longitude: lon}, nil
}
