package cli

import (
	"context"
)

// Accept asks for both agreements and records the answers. Answering no to
// both records nothing.
func (a *App) Accept(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.printf("Log in first")
		return nil
	}

	terms, err := GetYesNo(a.reader, "Do you accept the terms of service?", a.out)
	if err != nil {
		return a.fail(ctx, "Terms acceptance", err)
	}
	privacy, err := GetYesNo(a.reader, "Do you accept the privacy policy?", a.out)
	if err != nil {
		return a.fail(ctx, "Terms acceptance", err)
	}
	if !terms && !privacy {
		a.printf("Nothing accepted")
		return nil
	}

	target, err := a.reconciler.RunManual(ctx, func(ctx context.Context) error {
		return a.terms.Accept(ctx, terms, privacy)
	})
	if err != nil {
		return a.fail(ctx, "Terms acceptance", err)
	}
	a.arrived("Thank you", target)
	return nil
}

// Decline refuses the agreements, which ends the session.
func (a *App) Decline(ctx context.Context) error {
	target, err := a.reconciler.RunManual(ctx, func(ctx context.Context) error {
		a.terms.Decline(ctx)
		return nil
	})
	if err != nil {
		return a.fail(ctx, "Decline", err)
	}
	a.arrived("Terms declined, logged out", target)
	return nil
}
