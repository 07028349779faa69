package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/careerkit/internal/client/client"
	"github.com/dmitrijs2005/careerkit/internal/client/oauth"
	"github.com/dmitrijs2005/careerkit/internal/common"
)

// describeError turns a client error into a line for the user.
func describeError(err error) string {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "not authorized"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrAlreadyExists):
		return "an account with this email already exists"
	case errors.Is(err, oauth.ErrEmptyToken):
		return "identity provider returned no token"
	}
	return err.Error()
}

func (a *App) fail(ctx context.Context, action string, err error) error {
	a.logger.Debug(ctx, action+" failed", "error", err)
	a.printf("%s failed: %s", action, describeError(err))
	return err
}

func (a *App) arrived(msg, target string) {
	if target == "" {
		a.printf("%s", msg)
		return
	}
	a.printf("%s, now at %s", msg, target)
}

func (a *App) readCredentials() (string, []byte, error) {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return "", nil, err
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, pw, nil
}

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return a.fail(ctx, "Registration", err)
	}
	email, pw, err := a.readCredentials()
	if err != nil {
		return a.fail(ctx, "Registration", err)
	}
	defer common.WipeByteArray(pw)

	target, err := a.reconciler.RunManual(ctx, func(ctx context.Context) error {
		return a.store.Register(ctx, email, string(pw), name)
	})
	if err != nil {
		return a.fail(ctx, "Registration", err)
	}
	a.arrived("Registered", target)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, pw, err := a.readCredentials()
	if err != nil {
		return a.fail(ctx, "Login", err)
	}
	defer common.WipeByteArray(pw)

	target, err := a.reconciler.RunManual(ctx, func(ctx context.Context) error {
		return a.store.Login(ctx, email, string(pw))
	})
	if err != nil {
		return a.fail(ctx, "Login", err)
	}
	a.arrived("Logged in", target)
	return nil
}

// pastedToken is an identity SDK whose sign-in already happened elsewhere;
// the user pastes the resulting ID token.
type pastedToken string

func (p pastedToken) Prompt(callback func(token string, err error)) {
	callback(string(p), nil)
}

func (a *App) OAuth(ctx context.Context, token string) error {
	pending := oauth.Begin(pastedToken(token))

	target, err := a.reconciler.RunManual(ctx, func(ctx context.Context) error {
		return pending.Login(ctx, a.store)
	})
	if err != nil {
		return a.fail(ctx, "OAuth login", err)
	}
	a.arrived("Logged in", target)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	target, err := a.reconciler.RunManual(ctx, func(ctx context.Context) error {
		a.store.Logout(ctx)
		return nil
	})
	if err != nil {
		return a.fail(ctx, "Logout", err)
	}
	a.arrived("Logged out", target)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.store.RefreshUser(ctx); err != nil {
		return a.fail(ctx, "Refresh", err)
	}
	return a.Where(ctx)
}
