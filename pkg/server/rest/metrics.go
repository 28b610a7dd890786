package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HttpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pathpilot",
			Name:      "http_requests_total",
			Help:      "total number of http requests processed by the routing engine",
		}, []string{"path", "method", "status"}),
		HttpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pathpilot",
			Name:      "http_request_duration_seconds",
			Help:      "duration of http requests processed by the routing engine",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
	}
	reg.MustRegister(m.HttpRequestsTotal, m.HttpRequestDuration)
	return m
}

func PromeHttpMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			m.HttpRequestsTotal.WithLabelValues(r.URL.Path, r.Method,
				strconv.Itoa(ww.Status())).Inc()
			m.HttpRequestDuration.WithLabelValues(r.URL.Path, r.Method).
				Observe(time.Since(start).Seconds())
		})
	}
}
