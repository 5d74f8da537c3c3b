package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "metro_http_requests_total",
		Help: "Number of HTTP requests by route pattern, method and status",
	}, []string{"pattern", "method", "code"})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "metro_http_request_duration_seconds",
		Help:    "Time spent serving HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"pattern", "method"})
)

func init() {
	prometheus.MustRegister(requestCount, requestDuration)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Metrics records a request count and latency for every request, labelled by
// the ServeMux pattern that served it.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		requestCount.WithLabelValues(pattern, r.Method, strconv.Itoa(rec.status)).Inc()
		requestDuration.WithLabelValues(pattern, r.Method).Observe(time.Since(start).Seconds())
	})
}
