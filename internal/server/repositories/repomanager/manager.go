package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/crmauth/internal/dbx"
	"github.com/dmitrijs2005/crmauth/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/crmauth/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a database handle, so the
// same code path can run against *sql.DB or inside a *sql.Tx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
