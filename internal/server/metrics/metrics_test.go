package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("Login", "OK", 10*time.Millisecond)
	m.ObserveRequest("Login", "OK", 20*time.Millisecond)
	m.AuthEvent("login", nil)
	m.AuthEvent("login", errors.New("nope"))
	m.AddRefreshTokensPurged(3)
	m.AddRefreshTokensPurged(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("Login", "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthEvents.WithLabelValues("login", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthEvents.WithLabelValues("login", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RefreshTokensPurged))

	n, err := testutil.GatherAndCount(reg, "careerkit_grpc_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("Ping", "OK", time.Millisecond)
		m.AuthEvent("login", nil)
		m.AddRefreshTokensPurged(1)
	})
}
