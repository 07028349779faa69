// Package navigation holds the client's routes and the router that tracks the
// current location.
package navigation

import (
	"path"
	"strings"
	"sync"

	"github.com/dmitrijs2005/careerkit/internal/client/notify"
)

const (
	RouteHome           = "/"
	RouteLogin          = "/login"
	RouteDashboard      = "/dashboard"
	RouteTermsAgreement = "/terms-agreement"
)

// Router exposes the current location and imperative navigation.
type Router interface {
	Location() string
	// Navigate moves to p. With replace the current history entry is
	// overwritten instead of pushing a new one.
	Navigate(p string, replace bool)
	Subscribe() (<-chan struct{}, func())
}

// Clean normalizes a user supplied location to an absolute, slash separated
// path.
func Clean(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// MemoryRouter is a Router backed by an in-memory history stack.
type MemoryRouter struct {
	mu      sync.RWMutex
	history []string
	changes notify.Broadcaster
}

var _ Router = (*MemoryRouter)(nil)

// NewMemoryRouter constructs a MemoryRouter whose history starts at initial.
func NewMemoryRouter(initial string) *MemoryRouter {
	return &MemoryRouter{history: []string{Clean(initial)}}
}

func (r *MemoryRouter) Location() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.history[len(r.history)-1]
}

// Navigate to the current location is a no-op and does not notify.
func (r *MemoryRouter) Navigate(p string, replace bool) {
	p = Clean(p)

	r.mu.Lock()
	last := len(r.history) - 1
	if r.history[last] == p {
		r.mu.Unlock()
		return
	}
	if replace {
		r.history[last] = p
	} else {
		r.history = append(r.history, p)
	}
	r.mu.Unlock()

	r.changes.Notify()
}

// Back pops the current history entry. It reports false when there is
// nowhere to go back to.
func (r *MemoryRouter) Back() bool {
	r.mu.Lock()
	if len(r.history) < 2 {
		r.mu.Unlock()
		return false
	}
	r.history = r.history[:len(r.history)-1]
	r.mu.Unlock()

	r.changes.Notify()
	return true
}

// History returns a copy of the history stack, oldest first.
func (r *MemoryRouter) History() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.history...)
}

func (r *MemoryRouter) Subscribe() (<-chan struct{}, func()) {
	return r.changes.Subscribe()
}

// Close releases all subscribers.
func (r *MemoryRouter) Close() {
	r.changes.Close()
}
