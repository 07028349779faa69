package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/careerkit/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/careerkit/internal/dbx"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keySessionID    = "session_id"
)

// Tokens is the persisted credential of a session. SessionID is assigned when
// the session is established and survives token refreshes, so it identifies
// the login the tokens belong to.
type Tokens struct {
	Access    string
	Refresh   string
	SessionID string
}

// Empty reports whether no access token is present.
func (t Tokens) Empty() bool {
	return t.Access == ""
}

// TokenStorage is the durable slot holding the session's tokens. A missing
// slot loads as zero Tokens.
type TokenStorage interface {
	Load(ctx context.Context) (Tokens, error)
	Save(ctx context.Context, t Tokens) error
	// CompareAndSwap replaces the stored tokens with next only if they still
	// equal old.
	CompareAndSwap(ctx context.Context, old, next Tokens) (bool, error)
	Clear(ctx context.Context) error
}

// SQLiteTokenStorage keeps the tokens in the metadata table.
type SQLiteTokenStorage struct {
	db *sql.DB
}

// NewSQLiteTokenStorage constructs a SQLiteTokenStorage over a migrated session database.
func NewSQLiteTokenStorage(db *sql.DB) *SQLiteTokenStorage {
	return &SQLiteTokenStorage{db: db}
}

func (s *SQLiteTokenStorage) Load(ctx context.Context) (Tokens, error) {
	return loadTokens(ctx, metadata.NewSQLiteRepository(s.db))
}

func (s *SQLiteTokenStorage) Save(ctx context.Context, t Tokens) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return saveTokens(ctx, metadata.NewSQLiteRepository(tx), t)
	})
}

func (s *SQLiteTokenStorage) CompareAndSwap(ctx context.Context, old, next Tokens) (bool, error) {
	swapped := false
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		cur, err := loadTokens(ctx, repo)
		if err != nil {
			return err
		}
		if cur != old {
			return nil
		}
		if err := saveTokens(ctx, repo, next); err != nil {
			return err
		}
		swapped = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return swapped, nil
}

func (s *SQLiteTokenStorage) Clear(ctx context.Context) error {
	repo := metadata.NewSQLiteRepository(s.db)
	if err := repo.Delete(ctx, keyAccessToken, keyRefreshToken, keySessionID); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}

func loadTokens(ctx context.Context, repo metadata.Repository) (Tokens, error) {
	m, err := repo.GetMany(ctx, keyAccessToken, keyRefreshToken, keySessionID)
	if err != nil {
		return Tokens{}, fmt.Errorf("load tokens: %w", err)
	}
	return Tokens{
		Access:    string(m[keyAccessToken]),
		Refresh:   string(m[keyRefreshToken]),
		SessionID: string(m[keySessionID]),
	}, nil
}

func saveTokens(ctx context.Context, repo metadata.Repository, t Tokens) error {
	values := map[string]string{
		keyAccessToken:  t.Access,
		keyRefreshToken: t.Refresh,
		keySessionID:    t.SessionID,
	}
	for k, v := range values {
		if v == "" {
			if err := repo.Delete(ctx, k); err != nil {
				return fmt.Errorf("save tokens: %w", err)
			}
			continue
		}
		if err := repo.Set(ctx, k, []byte(v)); err != nil {
			return fmt.Errorf("save tokens: %w", err)
		}
	}
	return nil
}
