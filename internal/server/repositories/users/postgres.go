package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/careerkit/internal/common"
	"github.com/dmitrijs2005/careerkit/internal/dbx"
	"github.com/dmitrijs2005/careerkit/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const userColumns = `id, email, name, password_hash, oauth_provider, oauth_subject,
		terms_accepted_at, privacy_policy_accepted_at, created_at`

// PostgresRepository implements Repository on Postgres.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a user repository bound to db or a transaction.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u                       models.User
		hash, provider, subject sql.NullString
		termsAt, privacyAt      sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &hash, &provider, &subject, &termsAt, &privacyAt, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	u.PasswordHash = hash.String
	u.OAuthProvider = provider.String
	u.OAuthSubject = subject.String
	if termsAt.Valid {
		t := termsAt.Time
		u.TermsAcceptedAt = &t
	}
	if privacyAt.Valid {
		t := privacyAt.Time
		u.PrivacyPolicyAcceptedAt = &t
	}
	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, name, password_hash, oauth_provider, oauth_subject)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Name, nullString(user.PasswordHash),
		nullString(user.OAuthProvider), nullString(user.OAuthSubject),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByOAuthSubject(ctx context.Context, provider, subject string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE oauth_provider = $1 AND oauth_subject = $2`
	return scanUser(r.db.QueryRowContext(ctx, query, provider, subject))
}

func (r *PostgresRepository) LinkOAuth(ctx context.Context, userID, provider, subject string) error {
	query :=
		`UPDATE users SET oauth_provider = $2, oauth_subject = $3
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, userID, provider, subject)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) AcceptTerms(ctx context.Context, userID string, terms, privacy bool, at time.Time) (*models.User, error) {
	query :=
		`UPDATE users SET
		   terms_accepted_at = CASE WHEN $2::boolean THEN $4 ELSE terms_accepted_at END,
		   privacy_policy_accepted_at = CASE WHEN $3::boolean THEN $4 ELSE privacy_policy_accepted_at END
		 WHERE id = $1
		 RETURNING ` + userColumns

	return scanUser(r.db.QueryRowContext(ctx, query, userID, terms, privacy, at))
}
