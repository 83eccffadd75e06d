package advisor

import (
	"fmt"
	"runadvisor/internal/models"
)

const (
	fixtureOffset = 7200 // CEST
	safeTemp      = 24.0
	unsafeTemp    = 35.0 // 40.8 °C heat index at 50% RH
)

// twoDayForecast covers 2025-07-01 and 2025-07-02 at hourly resolution.
// Day one is unsafe from 11:00 to 16:00, day two is safe all day.
// Hour 9 of day one has 60% RH; everything else has 50%.
func twoDayForecast() *models.Forecast {
	f := &models.Forecast{
		Latitude:             52.52,
		Longitude:            13.41,
		Timezone:             "Europe/Berlin",
		TimezoneAbbreviation: "CEST",
		UTCOffsetSeconds:     fixtureOffset,
		CurrentWeather: &models.CurrentWeather{
			Time:        "2025-07-01T09:00",
			Temperature: 30,
		},
	}

	for day := 1; day <= 2; day++ {
		for hour := 0; hour < 24; hour++ {
			temp, rh := safeTemp, 50.0
			if day == 1 && hour >= 11 && hour <= 16 {
				temp = unsafeTemp
			}
			if day == 1 && hour == 9 {
				rh = 60
			}
			f.Hourly.Time = append(f.Hourly.Time, fmt.Sprintf("2025-07-%02dT%02d:00", day, hour))
			f.Hourly.Temperature2m = append(f.Hourly.Temperature2m, temp)
			f.Hourly.RelativeHumidity2m = append(f.Hourly.RelativeHumidity2m, rh)
		}
	}

	return f
}

func ptr(v float64) *float64 {
	return &v
}

func airQualityFixture() *models.AirQuality {
	return &models.AirQuality{
		UTCOffsetSeconds: fixtureOffset,
		Hourly: models.AirQualityHourly{
			Time: []string{"2025-07-01T08:00", "2025-07-01T09:00", "2025-07-01T10:00"},
			PM25: []*float64{ptr(5), ptr(40), ptr(5)},
			PM10: []*float64{ptr(10), ptr(20), nil},
		},
	}
}
