package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/careerkit/internal/client/client"
)

// TermsService records the user's answer to the terms of service and the
// privacy policy.
type TermsService struct {
	client client.Client
	store  *SessionStore
}

// NewTermsService constructs a TermsService that refreshes store after acceptance.
func NewTermsService(c client.Client, store *SessionStore) *TermsService {
	return &TermsService{client: c, store: store}
}

// Accept sends the acceptance flags and then refreshes the session's user,
// so a redirect decided after Accept returns sees the new timestamps. Errors
// leave the session unchanged and may be retried.
func (t *TermsService) Accept(ctx context.Context, terms, privacy bool) error {
	if !terms && !privacy {
		return fmt.Errorf("%w: nothing to accept", client.ErrInvalidArgument)
	}
	if _, err := t.client.AcceptTerms(ctx, terms, privacy); err != nil {
		return fmt.Errorf("accept terms: %w", err)
	}
	if err := t.store.RefreshUser(ctx); err != nil {
		return fmt.Errorf("refresh user: %w", err)
	}
	return nil
}

// Decline ends the session.
func (t *TermsService) Decline(ctx context.Context) {
	t.store.Logout(ctx)
}
