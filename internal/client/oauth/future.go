// Package oauth adapts callback-style identity SDKs to the session store.
package oauth

import (
	"context"
	"errors"
	"sync"
)

var ErrEmptyToken = errors.New("identity provider returned an empty token")

// SDK is a callback-style identity provider client. Prompt starts the sign-in
// and eventually invokes callback, possibly more than once and from any
// goroutine.
type SDK interface {
	Prompt(callback func(token string, err error))
}

// TokenLogin is implemented by the session store.
type TokenLogin interface {
	LoginWithOAuthToken(ctx context.Context, providerToken string) error
}

// Future resolves once, with the first callback it receives.
type Future struct {
	once  sync.Once
	done  chan struct{}
	token string
	err   error
}

// NewFuture constructs an unresolved Future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Begin prompts sdk and returns the future its callback resolves.
func Begin(sdk SDK) *Future {
	f := NewFuture()
	sdk.Prompt(func(token string, err error) { f.Callback(token, err) })
	return f
}

// Callback resolves the future and reports whether this call did so. Later
// calls are ignored.
func (f *Future) Callback(token string, err error) bool {
	resolved := false
	f.once.Do(func() {
		if err == nil && token == "" {
			err = ErrEmptyToken
		}
		f.token, f.err = token, err
		resolved = true
		close(f.done)
	})
	return resolved
}

// Done is closed once the future is resolved.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future resolves or ctx is done.
func (f *Future) Wait(ctx context.Context) (string, error) {
	select {
	case <-f.done:
		return f.token, f.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Login waits for the provider token and exchanges it through store.
func (f *Future) Login(ctx context.Context, store TokenLogin) error {
	token, err := f.Wait(ctx)
	if err != nil {
		return err
	}
	return store.LoginWithOAuthToken(ctx, token)
}
