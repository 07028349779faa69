// Package termsgate guards routes that need an authenticated user who has
// accepted the terms of service and the privacy policy.
package termsgate

import (
	"github.com/dmitrijs2005/careerkit/internal/client/reconciler"
)

// Decision is the outcome of a gate check.
type Decision int

const (
	// Pending means the session has not settled; show a neutral indicator.
	Pending Decision = iota
	Allow
	Redirect
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

// Result is the outcome of a Check. Target is set for Redirect only.
type Result struct {
	Decision Decision
	Target   string
}

// StateSource reports the reconciler's current state.
type StateSource interface {
	State() reconciler.State
}

// Gate holds no state; every decision is read from the reconciler.
type Gate struct {
	states StateSource
}

// New constructs a Gate reading the state from states.
func New(states StateSource) *Gate {
	return &Gate{states: states}
}

// Check decides whether path may be shown.
func (g *Gate) Check(path string) Result {
	state := g.states.State()
	if state == reconciler.StateLoading || state == reconciler.StateRedirecting {
		return Result{Decision: Pending}
	}
	if target, ok := reconciler.RedirectFor(state, path); ok {
		return Result{Decision: Redirect, Target: target}
	}
	return Result{Decision: Allow}
}
