package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Business metrics
	ELOCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elo_calculations_total",
			Help: "Total number of rating pipeline runs",
		},
		[]string{"outcome"},
	)

	ELOCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "elo_calculation_duration_seconds",
			Help:    "Rating pipeline duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	SkillRatingsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skill_ratings_submitted_total",
			Help: "Total number of peer skill ratings accepted",
		},
	)

	DeltaPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delta_polls_total",
			Help: "Total number of delta poll requests",
		},
		[]string{"client_type", "has_changes"},
	)

	ChangeLogPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "change_log_pruned_total",
			Help: "Total number of change log entries removed by retention sweeps",
		},
	)
)

// statusRecorder captures the response status for labelling.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware instruments every request with count, duration, and in-flight
// gauges. Path templates come from the router so label cardinality stays
// bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(recorder.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
