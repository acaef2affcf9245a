package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "univ_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "univ_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	// Room availability
	AvailabilityComputations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "univ_room_availability_computations_total",
			Help: "Total room availability computations",
		},
	)

	RoomsBusy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "univ_rooms_busy",
			Help: "Rooms reported busy by the last availability computation",
		},
	)

	// Auth
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "univ_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"}, // "success" or "failure"
	)

	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "univ_rate_limit_hits_total",
			Help: "Total rate limit rejections",
		},
		[]string{"endpoint"},
	)
)
