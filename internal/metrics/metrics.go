package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsewatch_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulsewatch_http_request_duration_seconds",
			Help:    "Histogram of response durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// TicksRecorded counts ingested ticks by reported status
	TicksRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsewatch_ticks_recorded_total",
			Help: "Number of website ticks recorded",
		},
		[]string{"status"},
	)
)

func Init() {
	prometheus.MustRegister(HTTPRequests, RequestDuration, TicksRecorded)
}
