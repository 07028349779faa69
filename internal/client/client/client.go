package client

import (
	"context"

	"github.com/dmitrijs2005/careerkit/internal/client/models"
)

// Client is the identity API as seen by the client services. Calls that need
// authorization read the access token from the TokenStorage the client was
// built with.
type Client interface {
	Close() error
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (Tokens, error)
	OAuthLogin(ctx context.Context, provider, idToken string) (Tokens, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	AcceptTerms(ctx context.Context, terms, privacy bool) (*models.User, error)
	// Logout revokes t on the server. It authorizes with t.Access rather than
	// the stored tokens, which the caller may already have cleared.
	Logout(ctx context.Context, t Tokens) error
	Ping(ctx context.Context) error
	ResumeUploadURL(ctx context.Context, contentType string) (*models.PresignedURL, error)
	ResumeDownloadURL(ctx context.Context, key string) (*models.PresignedURL, error)
}
