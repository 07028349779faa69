// Package users persists identity-service accounts.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/careerkit/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills ID and CreatedAt. A duplicate email (or
	// OAuth subject) yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByOAuthSubject(ctx context.Context, provider, subject string) (*models.User, error)
	// LinkOAuth attaches an external identity to an existing account.
	LinkOAuth(ctx context.Context, userID, provider, subject string) error
	// AcceptTerms stamps the accepted documents with at and returns the
	// updated user. Flags that are false leave their column untouched.
	AcceptTerms(ctx context.Context, userID string, terms, privacy bool, at time.Time) (*models.User, error)
}
