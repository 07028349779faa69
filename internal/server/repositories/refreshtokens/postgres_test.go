package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/careerkit/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

const (
	insertQ = `(?s)^\s*INSERT\s+INTO\s+refresh_tokens\s*\(user_id,\s*token,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*$`
	findQ   = `(?s)^\s*SELECT\s+id,\s*user_id,\s*token,\s*expires_at,\s*created_at\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1\s*$`
	deleteQ = `(?s)^\s*DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`
	purgeQ  = `(?s)^\s*DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+expires_at\s*<\s*\$1\s*$`
)

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	exp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(insertQ).
		WithArgs("u1", "tok123", exp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), "u1", "tok123", exp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQ).
		WithArgs("u1", "tok123", sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), "u1", "tok123", time.Now())
	assert.ErrorContains(t, err, "db error: db down")
}

func TestFind(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m sqlmock.Sqlmock)
		wantErr error
		wantMsg string
	}{
		{
			name: "found",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(findQ).WithArgs("tok123").WillReturnRows(
					sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "created_at"}).
						AddRow("rt-1", "u1", "tok123", time.Unix(200, 0), time.Unix(100, 0)))
			},
		},
		{
			name: "not found",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(findQ).WithArgs("tok123").WillReturnError(sql.ErrNoRows)
			},
			wantErr: common.ErrorNotFound,
		},
		{
			name: "db error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(findQ).WithArgs("tok123").WillReturnError(errors.New("db err"))
			},
			wantMsg: "db error: db err",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			tt.setup(mock)

			got, err := repo.Find(context.Background(), "tok123")
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantMsg != "":
				assert.ErrorContains(t, err, tt.wantMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, "u1", got.UserID)
				assert.Equal(t, "rt-1", got.ID)
				assert.True(t, got.Expires.Equal(time.Unix(200, 0)))
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m sqlmock.Sqlmock)
		wantErr error
		wantMsg string
	}{
		{
			name: "deletes own token",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQ).WithArgs("tok123", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "no matching row",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQ).WithArgs("tok123", "u1").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: common.ErrorNotFound,
		},
		{
			name: "exec error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQ).WithArgs("tok123", "u1").WillReturnError(errors.New("db err"))
			},
			wantMsg: "db error",
		},
		{
			name: "rows affected error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQ).WithArgs("tok123", "u1").
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))
			},
			wantMsg: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			tt.setup(mock)

			err := repo.Delete(context.Background(), "u1", "tok123")
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantMsg != "":
				assert.ErrorContains(t, err, tt.wantMsg)
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeleteExpired(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Unix(1000, 0)

	mock.ExpectExec(purgeQ).WithArgs(now).WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
