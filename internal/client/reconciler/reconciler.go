package reconciler

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/careerkit/internal/client/models"
	"github.com/dmitrijs2005/careerkit/internal/client/navigation"
	"github.com/dmitrijs2005/careerkit/internal/logging"
)

// DefaultSettleWindow bounds how long a manual flow may hold off the
// automatic reconciliation.
const DefaultSettleWindow = 2 * time.Second

// SessionSource is the read side of the session store.
type SessionSource interface {
	Snapshot() models.AuthSession
	Subscribe() (<-chan struct{}, func())
}

// Reconciler keeps the router consistent with the session.
//
// In automatic mode it redirects according to RedirectFor whenever the
// session or the location changes. A manual flow started with RunManual
// suspends automatic mode, awaits its mutation and navigates to the
// ManualTarget of the settled session itself. Suspension always ends after
// the settle window, even if the flow never returns.
type Reconciler struct {
	session SessionSource
	router  navigation.Router
	settle  time.Duration
	logger  logging.Logger

	mu         sync.Mutex
	suppressed map[uint64]struct{}
	nextFlow   uint64
}

// New constructs a Reconciler. A non-positive settle uses DefaultSettleWindow.
func New(session SessionSource, router navigation.Router, settle time.Duration, logger logging.Logger) *Reconciler {
	if settle <= 0 {
		settle = DefaultSettleWindow
	}
	return &Reconciler{
		session:    session,
		router:     router,
		settle:     settle,
		logger:     logger,
		suppressed: make(map[uint64]struct{}),
	}
}

// State is the derived state of the current session, or StateRedirecting
// while a manual flow is in progress.
func (r *Reconciler) State() State {
	if r.isSuppressed() {
		return StateRedirecting
	}
	return Derive(r.session.Snapshot())
}

func (r *Reconciler) isSuppressed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.suppressed) > 0
}

// Reconcile applies the automatic redirect policy once. It returns the
// target it navigated to, if any. While loading or suppressed it does
// nothing.
func (r *Reconciler) Reconcile() (string, bool) {
	return r.reconcile(RedirectFor)
}

// ReconcileLocation is Reconcile after a location change; it applies
// RedirectOnVisit.
func (r *Reconciler) ReconcileLocation() (string, bool) {
	return r.reconcile(RedirectOnVisit)
}

func (r *Reconciler) reconcile(policy func(State, string) (string, bool)) (string, bool) {
	if r.isSuppressed() {
		return "", false
	}
	state := Derive(r.session.Snapshot())
	if state == StateLoading {
		return "", false
	}

	from := r.router.Location()
	target, ok := policy(state, from)
	if !ok {
		return "", false
	}
	r.logger.Debug(context.Background(), "reconciler: redirect", "state", string(state), "from", from, "to", target)
	r.router.Navigate(target, true)
	return target, true
}

// Run reconciles on every session or location change until ctx is done or
// either source is closed.
func (r *Reconciler) Run(ctx context.Context) {
	sessionCh, unsubSession := r.session.Subscribe()
	defer unsubSession()
	routerCh, unsubRouter := r.router.Subscribe()
	defer unsubRouter()

	r.Reconcile()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sessionCh:
			if !ok {
				return
			}
			r.Reconcile()
		case _, ok := <-routerCh:
			if !ok {
				return
			}
			r.ReconcileLocation()
		}
	}
}

// RunManual runs flow with automatic reconciliation suspended. When flow
// succeeds the router is sent to the ManualTarget of the session as it is
// after flow returned, and that target is returned. A failing flow does not
// navigate; its error is returned.
func (r *Reconciler) RunManual(ctx context.Context, flow func(ctx context.Context) error) (string, error) {
	id := r.suppress()
	timer := time.AfterFunc(r.settle, func() {
		if r.lift(id) {
			r.logger.Warn(context.Background(), "reconciler: manual flow exceeded settle window")
			r.Reconcile()
		}
	})
	defer func() {
		timer.Stop()
		if r.lift(id) {
			r.Reconcile()
		}
	}()

	if err := flow(ctx); err != nil {
		return "", err
	}

	target, ok := ManualTarget(Derive(r.session.Snapshot()))
	if !ok {
		return "", nil
	}
	r.router.Navigate(target, false)
	return target, nil
}

func (r *Reconciler) suppress() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextFlow++
	r.suppressed[r.nextFlow] = struct{}{}
	return r.nextFlow
}

// lift reports whether id was still suppressing.
func (r *Reconciler) lift(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppressed[id]; !ok {
		return false
	}
	delete(r.suppressed, id)
	return true
}
