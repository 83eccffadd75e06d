package advisor

import (
	"errors"
	"fmt"
	"runadvisor/internal/heat"
	"runadvisor/internal/models"
	"time"
)

const (
	DefaultOutlookHours = 24

	sourceCurrentWeather = "current_weather"
	sourceHourly         = "hourly"
)

// ReportInput is everything BuildReport needs; it does no I/O of its own
type ReportInput struct {
	Location     models.Location
	Forecast     *models.Forecast
	AirQuality   *models.AirQuality // optional
	ThresholdC   float64
	OutlookHours int
	StrictPlan   bool
	GeneratedAt  time.Time
}

// Conditions describes the hour the advice is for
type Conditions struct {
	ObservedAt          time.Time            `json:"observed_at"`
	MatchedHour         time.Time            `json:"matched_hour"`
	TemperatureC        float64              `json:"temperature_c"`
	TemperatureSource   string               `json:"temperature_source"`
	RelativeHumidityPct float64              `json:"relative_humidity_pct"`
	HeatIndex           heat.HeatIndexResult `json:"heat_index"`
	Risk                heat.RiskAssessment  `json:"risk"`
}

// Today holds the safe windows of the current calendar date
type Today struct {
	Date       string            `json:"date"`
	Windows    []heat.SafeWindow `json:"windows"`
	Best       *heat.SafeWindow  `json:"best,omitempty"`
	NoSafeTime bool              `json:"no_safe_time"`
}

// Report is the running advisory for one location
type Report struct {
	Location    models.Location        `json:"location"`
	GeneratedAt time.Time              `json:"generated_at"`
	ThresholdC  float64                `json:"threshold_c"`
	Current     Conditions             `json:"current"`
	Outlook     []heat.HeatIndexResult `json:"outlook"`
	Today       Today                  `json:"today"`
	Planner     heat.Plan              `json:"planner"`
	StrictPlan  bool                   `json:"strict_plan"`
	AirQuality  AirQualityAdvisory     `json:"air_quality"`
}

// BuildReport locates the current hour in the forecast, rates it, and derives the
// outlook, today's safe windows and the multi-day planner.
//
// The current temperature comes from the current_weather block and the humidity
// from the closest hourly entry. Without a current_weather block, GeneratedAt is
// used as "now" and both values come from the closest hour.
func BuildReport(in ReportInput) (*Report, error) {
	if in.Forecast == nil {
		return nil, errors.New("BuildReport: no forecast provided")
	}
	if in.ThresholdC == 0 {
		in.ThresholdC = heat.DefaultSafeThresholdC
	}
	if in.OutlookHours <= 0 {
		in.OutlookHours = DefaultOutlookHours
	}

	series, err := SeriesFromForecast(in.Forecast)
	if err != nil {
		return nil, err
	}

	loc := ForecastZone(in.Forecast)
	target := in.GeneratedAt.In(loc)
	source := sourceHourly
	if cw := in.Forecast.CurrentWeather; cw != nil {
		target, err = ParseLocalTime(cw.Time, loc)
		if err != nil {
			return nil, fmt.Errorf("current weather: %w", err)
		}
		source = sourceCurrentWeather
	}

	idx, err := heat.FindClosest(target, series.Times())
	if err != nil {
		return nil, err
	}
	matched := series[idx]

	temperature := matched.TemperatureC
	if source == sourceCurrentWeather {
		temperature = in.Forecast.CurrentWeather.Temperature
	}

	hi := heat.HeatIndex(heat.HourlyPoint{
		Time:                target,
		TemperatureC:        temperature,
		RelativeHumidityPct: matched.RelativeHumidityPct,
	})

	report := &Report{
		Location:    in.Location,
		GeneratedAt: in.GeneratedAt,
		ThresholdC:  in.ThresholdC,
		Current: Conditions{
			ObservedAt:          target,
			MatchedHour:         matched.Time,
			TemperatureC:        temperature,
			TemperatureSource:   source,
			RelativeHumidityPct: matched.RelativeHumidityPct,
			HeatIndex:           hi,
			Risk:                heat.Classify(hi.HeatIndexC),
		},
		Outlook:    heat.Outlook(series, idx, in.OutlookHours),
		Today:      today(series, target, in.ThresholdC),
		StrictPlan: in.StrictPlan,
	}

	if in.StrictPlan {
		report.Planner = heat.BuildStrictPlan(series, in.ThresholdC)
	} else {
		report.Planner = heat.BuildPlan(series, in.ThresholdC)
	}

	pm25, pm10 := AirQualityAt(in.AirQuality, target)
	report.AirQuality = ClassifyAirQuality(pm25, pm10)

	return report, nil
}

// today takes its date from now rather than the matched hour, which may already
// belong to the next day shortly before midnight
func today(series heat.HourlySeries, now time.Time, thresholdC float64) Today {
	date := now.Format("2006-01-02")
	_, byDate := heat.SplitByDate(series)

	windows, best := heat.FindWindows(byDate[date], thresholdC)
	return Today{
		Date:       date,
		Windows:    windows,
		Best:       best,
		NoSafeTime: best == nil,
	}
}
