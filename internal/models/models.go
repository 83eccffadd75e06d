package models

// Forecast represents weather forecast data from Open-Meteo API
type Forecast struct {
	Latitude             float64         `json:"latitude"`
	Longitude            float64         `json:"longitude"`
	Timezone             string          `json:"timezone"`
	TimezoneAbbreviation string          `json:"timezone_abbreviation"`
	UTCOffsetSeconds     int             `json:"utc_offset_seconds"`
	Elevation            float64         `json:"elevation"`
	CurrentWeather       *CurrentWeather `json:"current_weather,omitempty"`
	HourlyUnits          HourlyUnits     `json:"hourly_units"`
	Hourly               Hourly          `json:"hourly"`
	GenerationTimeMs     float64         `json:"generation_time_ms"`
}

// CurrentWeather is the block returned when current_weather=true is requested
type CurrentWeather struct {
	Time          string  `json:"time"`
	Interval      int     `json:"interval"`
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	IsDay         int     `json:"is_day"`
	WeatherCode   int     `json:"weathercode"`
}

type HourlyUnits struct {
	Time               string `json:"time"`
	Temperature2m      string `json:"temperature_2m"`
	RelativeHumidity2m string `json:"relative_humidity_2m"`
}

type Hourly struct {
	Time               []string  `json:"time"`
	Temperature2m      []float64 `json:"temperature_2m"`
	RelativeHumidity2m []float64 `json:"relative_humidity_2m"`
}

// AirQuality represents hourly data from the Open-Meteo air quality API
type AirQuality struct {
	Latitude         float64          `json:"latitude"`
	Longitude        float64          `json:"longitude"`
	Timezone         string           `json:"timezone"`
	UTCOffsetSeconds int              `json:"utc_offset_seconds"`
	HourlyUnits      AirQualityUnits  `json:"hourly_units"`
	Hourly           AirQualityHourly `json:"hourly"`
}

type AirQualityUnits struct {
	Time string `json:"time"`
	PM25 string `json:"pm2_5"`
	PM10 string `json:"pm10"`
}

// AirQualityHourly holds pollutant readings; the API reports missing hours as null
type AirQualityHourly struct {
	Time []string   `json:"time"`
	PM25 []*float64 `json:"pm2_5"`
	PM10 []*float64 `json:"pm10"`
}

// Location is a named point a report is produced for
type Location struct {
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// IPInfo is the subset of the ipinfo.io response used for location detection
type IPInfo struct {
	IP       string `json:"ip"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Loc      string `json:"loc"` // "lat,lon"
	Timezone string `json:"timezone"`
}
