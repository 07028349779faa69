// Package metrics holds the identity server's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the identity server. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// RPC outcomes by method and gRPC status code
	RequestsTotal *prometheus.CounterVec

	RequestDuration *prometheus.HistogramVec

	// Authentication events: register, login, oauth_login, refresh, logout
	AuthEvents *prometheus.CounterVec

	RefreshTokensPurged prometheus.Counter
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "careerkit_grpc_requests_total",
			Help: "Total gRPC requests by method and status code",
		}, []string{"method", "code"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "careerkit_grpc_request_duration_seconds",
			Help:    "Duration of gRPC requests by method",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method"}),

		AuthEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "careerkit_auth_events_total",
			Help: "Authentication events by kind and result",
		}, []string{"event", "result"}),

		RefreshTokensPurged: f.NewCounter(prometheus.CounterOpts{
			Name: "careerkit_refresh_tokens_purged_total",
			Help: "Expired refresh tokens removed by the cleanup job",
		}),
	}
}

// ObserveRequest records one finished RPC.
func (m *Metrics) ObserveRequest(method, code string, d time.Duration) {
	if m != nil {
		m.RequestsTotal.WithLabelValues(method, code).Inc()
		m.RequestDuration.WithLabelValues(method).Observe(d.Seconds())
	}
}

// AuthEvent counts an authentication event. result is "ok" or "error".
func (m *Metrics) AuthEvent(event string, err error) {
	if m != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		m.AuthEvents.WithLabelValues(event, result).Inc()
	}
}

func (m *Metrics) AddRefreshTokensPurged(n int64) {
	if m != nil && n > 0 {
		m.RefreshTokensPurged.Add(float64(n))
	}
}
