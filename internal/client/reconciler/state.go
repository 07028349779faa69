// Package reconciler derives the navigation state of the client from its
// authentication session and redirects the router accordingly.
package reconciler

import (
	"github.com/dmitrijs2005/careerkit/internal/client/models"
	"github.com/dmitrijs2005/careerkit/internal/client/navigation"
)

// State is the navigation state derived from an AuthSession.
type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateNeedsTerms      State = "needs_terms"
	StateAuthenticated   State = "authenticated"
	// StateRedirecting is reported while a manual flow holds off the
	// automatic reconciliation.
	StateRedirecting State = "redirecting"
)

// Derive maps a session onto its navigation state.
func Derive(s models.AuthSession) State {
	switch {
	case s.AuthLoading:
		return StateLoading
	case !s.IsAuthenticated:
		return StateUnauthenticated
	case s.NeedsTerms():
		return StateNeedsTerms
	default:
		return StateAuthenticated
	}
}

// RedirectFor returns where the automatic reconciler sends a client in state
// that is currently at path. ok is false when path is acceptable.
func RedirectFor(state State, path string) (target string, ok bool) {
	switch state {
	case StateUnauthenticated:
		if path != navigation.RouteLogin && path != navigation.RouteHome {
			return navigation.RouteLogin, true
		}
	case StateNeedsTerms:
		if path != navigation.RouteTermsAgreement {
			return navigation.RouteTermsAgreement, true
		}
	case StateAuthenticated:
		if path != navigation.RouteDashboard && path != navigation.RouteTermsAgreement {
			return navigation.RouteDashboard, true
		}
	}
	return "", false
}

// RedirectOnVisit is RedirectFor for a client that has just moved to path.
// It differs in one case: an authenticated user who comes back to the terms
// agreement is sent on to the dashboard. RedirectFor leaves that user alone
// so that accepting the terms never races the flow that accepted them.
func RedirectOnVisit(state State, path string) (string, bool) {
	if state == StateAuthenticated && path == navigation.RouteTermsAgreement {
		return navigation.RouteDashboard, true
	}
	return RedirectFor(state, path)
}

// ManualTarget is where a finished manual flow lands for a settled state.
// Nothing is decided for loading or redirecting.
func ManualTarget(state State) (string, bool) {
	switch state {
	case StateUnauthenticated:
		return navigation.RouteLogin, true
	case StateNeedsTerms:
		return navigation.RouteTermsAgreement, true
	case StateAuthenticated:
		return navigation.RouteDashboard, true
	}
	return "", false
}
