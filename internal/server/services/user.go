// Package services contains the identity server's business logic.
// UserService handles accounts, credentials, terms acceptance and the
// access/refresh token lifecycle.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/careerkit/internal/common"
	"github.com/dmitrijs2005/careerkit/internal/dbx"
	"github.com/dmitrijs2005/careerkit/internal/server/auth"
	"github.com/dmitrijs2005/careerkit/internal/server/config"
	"github.com/dmitrijs2005/careerkit/internal/server/models"
	"github.com/dmitrijs2005/careerkit/internal/server/repositories/repomanager"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// IdentityVerifier validates third-party ID tokens.
type IdentityVerifier interface {
	Verify(provider, idToken string) (*auth.Identity, error)
}

// UserService implements account and token operations.
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	verifier                     IdentityVerifier
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

// NewUserService constructs a UserService with the token lifetimes and secret from cfg.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, v IdentityVerifier, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		verifier:                     v,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	return email, nil
}

// Register creates a password account. The email is normalised to lower case.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{Email: email, Name: strings.TrimSpace(name), PasswordHash: hash}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies email and password and mints a new TokenPair. Unknown
// emails, OAuth-only accounts and wrong passwords all yield
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if user.PasswordHash == "" {
		return nil, common.ErrorUnauthorized
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	return s.generateTokenPair(ctx, user.ID, s.db)
}

// OAuthLogin exchanges a provider ID token for a TokenPair. The provider
// subject is looked up first; otherwise an account with the same email is
// linked, otherwise a new account is created.
func (s *UserService) OAuthLogin(ctx context.Context, provider, idToken string) (*TokenPair, error) {
	id, err := s.verifier.Verify(provider, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}
	email, err := normalizeEmail(id.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repomanager.Users(tx)

		user, err := users.GetByOAuthSubject(ctx, id.Provider, id.Subject)
		switch {
		case err == nil:
		case errors.Is(err, common.ErrorNotFound):
			user, err = users.GetByEmail(ctx, email)
			switch {
			case err == nil:
				if err := users.LinkOAuth(ctx, user.ID, id.Provider, id.Subject); err != nil {
					return fmt.Errorf("error linking identity: %w", err)
				}
			case errors.Is(err, common.ErrorNotFound):
				user, err = users.Create(ctx, &models.User{
					Email:         email,
					Name:          id.Name,
					OAuthProvider: id.Provider,
					OAuthSubject:  id.Subject,
				})
				if err != nil {
					return fmt.Errorf("error creating user: %w", err)
				}
			default:
				return fmt.Errorf("error searching user: %w", err)
			}
		default:
			return fmt.Errorf("error searching user: %w", err)
		}

		pair, err = s.generateTokenPair(ctx, user.ID, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally and
// returns a fresh TokenPair. Unknown tokens yield common.ErrorUnauthorized,
// expired ones common.ErrRefreshTokenExpired. Only the transaction that
// actually deletes the token mints a new pair; a replayed token loses the
// race and is rejected as unknown.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(s.now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, token.UserID, refreshToken); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// CurrentUser returns the account behind an authenticated request.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u, nil
}

// AcceptTerms records acceptance of the terms of service and/or the privacy
// policy and returns the updated user. At least one flag must be set.
func (s *UserService) AcceptTerms(ctx context.Context, userID string, terms, privacy bool) (*models.User, error) {
	if !terms && !privacy {
		return nil, fmt.Errorf("%w: nothing to accept", common.ErrorValidation)
	}
	u, err := s.repomanager.Users(s.db).AcceptTerms(ctx, userID, terms, privacy, s.now().UTC())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error accepting terms: %w", err)
	}
	return u, nil
}

// Logout revokes refreshToken if it belongs to userID. An empty, unknown or
// foreign token is not an error and leaves every row in place.
func (s *UserService) Logout(ctx context.Context, userID, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := s.repomanager.RefreshTokens(s.db).Delete(ctx, userID, refreshToken)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// PurgeExpiredRefreshTokens deletes refresh tokens past their expiry.
func (s *UserService) PurgeExpiredRefreshTokens(ctx context.Context) (int64, error) {
	return s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, s.now())
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	expires := s.now().Add(s.refreshTokenValidityDuration)
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, expires); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
