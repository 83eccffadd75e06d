package advisor

import (
	"runadvisor/internal/heat"
	"runadvisor/internal/models"
	"time"
)

// AirQualityStatus is the particulate matter band for the current hour
type AirQualityStatus string

const (
	AirQualityUnavailable        AirQualityStatus = "Unavailable"
	AirQualityGood               AirQualityStatus = "Good"
	AirQualityModerate           AirQualityStatus = "Moderate"
	AirQualityUnhealthySensitive AirQualityStatus = "Unhealthy for sensitive groups"
	AirQualityUnhealthy          AirQualityStatus = "Unhealthy"
)

// AirQualityAdvisory is a side note next to the heat risk; it never changes the risk level
type AirQualityAdvisory struct {
	Status AirQualityStatus `json:"status"`
	PM25   *float64         `json:"pm2_5,omitempty"`
	PM10   *float64         `json:"pm10,omitempty"`
	Advice string           `json:"advice"`
}

// Upper bounds (µg/m³, inclusive) of the Good, Moderate and sensitive-groups bands,
// following the US EPA 24-hour breakpoints.
var (
	pm25Bands = [3]float64{12.0, 35.4, 55.4}
	pm10Bands = [3]float64{54, 154, 254}
)

var airQualityOrder = []AirQualityStatus{
	AirQualityGood,
	AirQualityModerate,
	AirQualityUnhealthySensitive,
	AirQualityUnhealthy,
}

var airQualityAdvice = map[AirQualityStatus]string{
	AirQualityUnavailable:        "Air quality data unavailable.",
	AirQualityGood:               "Air quality is fine for running.",
	AirQualityModerate:           "Unusually sensitive runners should consider a shorter run.",
	AirQualityUnhealthySensitive: "Sensitive runners should lower intensity or run indoors.",
	AirQualityUnhealthy:          "Air quality is poor. Prefer an indoor workout.",
}

// ClassifyAirQuality grades PM2.5 and PM10 readings, taking the worse of the two.
// With neither reading available the status is Unavailable, never Good.
func ClassifyAirQuality(pm25, pm10 *float64) AirQualityAdvisory {
	worst := -1
	if pm25 != nil {
		worst = max(worst, band(*pm25, pm25Bands))
	}
	if pm10 != nil {
		worst = max(worst, band(*pm10, pm10Bands))
	}

	status := AirQualityUnavailable
	if worst >= 0 {
		status = airQualityOrder[worst]
	}

	return AirQualityAdvisory{
		Status: status,
		PM25:   pm25,
		PM10:   pm10,
		Advice: airQualityAdvice[status],
	}
}

func band(value float64, bounds [3]float64) int {
	for i, upper := range bounds {
		if value <= upper {
			return i
		}
	}
	return len(bounds)
}

// AirQualityAt picks the PM readings of the hour closest to target.
// Missing data comes back as nil pointers.
func AirQualityAt(aq *models.AirQuality, target time.Time) (pm25, pm10 *float64) {
	if aq == nil || len(aq.Hourly.Time) == 0 {
		return nil, nil
	}

	loc := zoneOf("", aq.UTCOffsetSeconds)
	times := make([]time.Time, 0, len(aq.Hourly.Time))
	for _, raw := range aq.Hourly.Time {
		ts, err := ParseLocalTime(raw, loc)
		if err != nil {
			return nil, nil
		}
		times = append(times, ts)
	}

	idx, err := heat.FindClosest(target, times)
	if err != nil {
		return nil, nil
	}

	if idx < len(aq.Hourly.PM25) {
		pm25 = aq.Hourly.PM25[idx]
	}
	if idx < len(aq.Hourly.PM10) {
		pm10 = aq.Hourly.PM10[idx]
	}
	return pm25, pm10
}
