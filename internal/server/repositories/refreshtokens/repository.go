// Package refreshtokens declares the repository contract for refresh tokens
// issued by the identity service.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/careerkit/internal/server/models"
)

// Repository stores opaque refresh tokens.
type Repository interface {
	// Create stores token for userID, valid until expiresAt.
	Create(ctx context.Context, userID string, token string, expiresAt time.Time) error

	// Find returns the row for token or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes token if it belongs to userID. It returns
	// common.ErrorNotFound when no such row exists, which inside a
	// transaction means a concurrent rotation already consumed the token.
	Delete(ctx context.Context, userID, token string) error

	// DeleteExpired removes every token that expired before now and reports
	// how many rows were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
