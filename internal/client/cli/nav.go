package cli

import (
	"context"

	"github.com/dmitrijs2005/careerkit/internal/client/navigation"
	"github.com/dmitrijs2005/careerkit/internal/client/termsgate"
)

// protected routes render only after the gate allows them.
var protected = map[string]bool{
	navigation.RouteDashboard:      true,
	navigation.RouteTermsAgreement: true,
}

func (a *App) Goto(ctx context.Context, path string) error {
	p := navigation.Clean(path)

	if protected[p] {
		res := a.gate.Check(p)
		switch res.Decision {
		case termsgate.Pending:
			a.printf("Session is still loading, try again in a moment")
			return nil
		case termsgate.Redirect:
			a.router.Navigate(res.Target, true)
			a.printf("%s is not available, redirected to %s", p, res.Target)
			return nil
		}
	}

	a.router.Navigate(p, false)
	a.reconciler.ReconcileLocation()
	return a.Where(ctx)
}

func (a *App) Where(ctx context.Context) error {
	s := a.store.Snapshot()
	a.printf("At %s (%s)", a.router.Location(), a.reconciler.State())
	if s.User == nil {
		return nil
	}

	a.printf("User: %s <%s>", s.User.Name, s.User.Email)
	if s.NeedsTerms() {
		a.printf("Terms of service and privacy policy are awaiting your answer")
	}
	return nil
}
