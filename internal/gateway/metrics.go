package gateway

import (
	"net/http"
	"strconv"

	"github.com/MEKXH/passgauge/internal/policy"
	"github.com/prometheus/client_golang/prometheus"
)

var knownPaths = map[string]bool{
	"/health":   true,
	"/version":  true,
	"/policy":   true,
	"/evaluate": true,
	"/metrics":  true,
}

// Metrics holds the gateway's prometheus collectors on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	requests    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passgauge_evaluations_total",
				Help: "Total number of password evaluations",
			},
			[]string{"tier", "valid"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passgauge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "code"},
		),
	}

	registry.MustRegister(
		m.evaluations,
		m.requests,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveEvaluation counts one evaluation by tier and validity.
func (m *Metrics) ObserveEvaluation(res policy.Result) {
	m.evaluations.WithLabelValues(string(res.Tier), strconv.FormatBool(res.Valid)).Inc()
}

// Middleware counts requests by path and status code.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if !knownPaths[path] {
			path = "other"
		}
		m.requests.WithLabelValues(path, statusLabel(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
