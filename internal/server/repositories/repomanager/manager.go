package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/careerkit/internal/dbx"
	"github.com/dmitrijs2005/careerkit/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/careerkit/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can use
// the same code on a plain connection and inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
