package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream API metrics
var (
	// APIRequestsTotal tracks requests to weather, air quality and geolocation providers
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runadvisor_api_requests_total",
			Help: "Total number of upstream API requests",
		},
		[]string{"provider", "status"},
	)

	// APIRequestDuration tracks the duration of upstream API requests
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "runadvisor_api_request_duration_seconds",
			Help:    "Duration of upstream API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
)

// Advisory metrics
var (
	// AdvisoriesTotal counts produced reports by risk level
	AdvisoriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runadvisor_advisories_total",
			Help: "Total number of running advisories produced, by risk level",
		},
		[]string{"risk_level"},
	)

	// AdvisoryFailuresTotal counts reports that could not be produced
	AdvisoryFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runadvisor_advisory_failures_total",
			Help: "Total number of advisories that failed, by stage",
		},
		[]string{"stage"},
	)

	// BestWindowHours observes the length of today's best safe window
	BestWindowHours = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "runadvisor_best_window_hours",
			Help:    "Length in hours of the best safe running window found for today",
			Buckets: []float64{0, 1, 2, 3, 4, 6, 8, 12, 16, 24},
		},
	)

	// NoSafeWindowTotal counts reports where today had no safe hour at all
	NoSafeWindowTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "runadvisor_no_safe_window_total",
			Help: "Total number of advisories with no safe running time today",
		},
	)

	// PublishedTotal counts advisories handed to a publisher sink
	PublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runadvisor_published_total",
			Help: "Total number of advisories published, by sink and status",
		},
		[]string{"sink", "status"},
	)

	// AppInfo provides static information about the application
	AppInfo = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "runadvisor_app_info",
			Help: "Application information (always 1)",
		},
	)

	// AppStartTime records when the application started
	AppStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "runadvisor_app_start_time_seconds",
			Help: "Unix timestamp of when the application started",
		},
	)
)

func init() {
	AppInfo.Set(1)
	AppStartTime.SetToCurrentTime()
}

// RecordAPIRequest records an upstream API call
func RecordAPIRequest(provider string, duration time.Duration, err error) {
	APIRequestsTotal.WithLabelValues(provider, status(err)).Inc()
	APIRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordAdvisory records a produced report. bestWindow is nil when no safe time was found.
func RecordAdvisory(riskLevel string, bestWindow *time.Duration) {
	AdvisoriesTotal.WithLabelValues(riskLevel).Inc()
	if bestWindow == nil {
		NoSafeWindowTotal.Inc()
		return
	}
	BestWindowHours.Observe(bestWindow.Hours())
}

// RecordAdvisoryFailure records a report that could not be built
func RecordAdvisoryFailure(stage string) {
	AdvisoryFailuresTotal.WithLabelValues(stage).Inc()
}

// RecordPublish records a publish attempt
func RecordPublish(sink string, err error) {
	PublishedTotal.WithLabelValues(sink, status(err)).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
