package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// rejectReason labels a request turned away before the orchestrator saw it.
type rejectReason string

const (
	rejectContentType  rejectReason = "content_type"
	rejectBodyTooLarge rejectReason = "body_too_large"
	rejectInvalidJSON  rejectReason = "invalid_json"
	rejectMissingModel rejectReason = "missing_model"
	rejectMissingType  rejectReason = "missing_model_type"
)

var rejectReasons = []rejectReason{rejectContentType, rejectBodyTooLarge, rejectInvalidJSON, rejectMissingModel, rejectMissingType}

var (
	apiRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orcad",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "API requests by route pattern, method and status code.",
	}, []string{"path", "method", "status"})

	apiLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "orcad",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "API latency by route pattern. Status reads are sub-millisecond on a cache hit.",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2.5, 5},
	}, []string{"path", "method", "status"})

	apiInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "orcad",
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "API requests currently being served.",
	}, []string{"method"})

	apiRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orcad",
		Subsystem: "http",
		Name:      "rejected_total",
		Help:      "Prepare/advise requests rejected by input validation.",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(apiRequests, apiLatency, apiInflight, apiRejected)
	// export every reason at zero so dashboards see the full set
	for _, r := range rejectReasons {
		apiRejected.WithLabelValues(string(r))
	}
}

// reject counts a validation failure and writes the 4xx answer.
func reject(w http.ResponseWriter, reason rejectReason, status int, msg string) {
	apiRejected.WithLabelValues(string(reason)).Inc()
	writeJSONError(w, status, msg)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware records count, latency and in-flight gauges per route.
// chi resolves the route pattern while routing, so it is read after next
// returns; unrouted requests fall back to the raw path.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g := apiInflight.WithLabelValues(r.Method)
		g.Inc()
		defer g.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		labels := []string{routeLabel(r), r.Method, strconv.Itoa(rec.status)}
		apiRequests.WithLabelValues(labels...).Inc()
		apiLatency.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}

func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
