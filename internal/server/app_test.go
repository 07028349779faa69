package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/careerkit/internal/logging"
	"github.com/dmitrijs2005/careerkit/internal/server/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type fakePurger struct {
	calls atomic.Int32
	n     int64
	err   error
}

func (f *fakePurger) PurgeExpiredRefreshTokens(context.Context) (int64, error) {
	f.calls.Add(1)
	return f.n, f.err
}

func TestPurgeLoop(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	p := &fakePurger{n: 2}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		purgeLoop(ctx, p, m, logging.Nop{}, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.GreaterOrEqual(t, testutil.ToFloat64(m.RefreshTokensPurged), 4.0)
}

func TestPurgeLoop_ErrorKeepsRunning(t *testing.T) {
	p := &fakePurger{err: errors.New("db down")}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go purgeLoop(ctx, p, nil, logging.Nop{}, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}
