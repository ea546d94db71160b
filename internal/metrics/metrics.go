package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	EventsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "events_created_total",
			Help: "Total number of events persisted",
		},
	)

	EventValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_validation_failures_total",
			Help: "Total number of rejected create requests by offending field",
		},
		[]string{"field"},
	)

	LookupRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_requests_total",
			Help: "Total number of outbound address and geocoding lookups",
		},
		[]string{"service", "outcome"},
	)

	LookupRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lookup_request_duration_seconds",
			Help:    "Duration of outbound lookups",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	ImageUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Total number of image uploads by outcome",
		},
		[]string{"outcome"},
	)
)

var registerOnce sync.Once

// Register регистрирует все метрики в дефолтном реестре. Повторный вызов ничего не делает.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HttpRequestsTotal,
			HttpRequestDuration,
			EventsCreatedTotal,
			EventValidationFailuresTotal,
			LookupRequestsTotal,
			LookupRequestDuration,
			ImageUploadsTotal,
		)
	})
}
