package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookmarker/internal/dbx"
	"github.com/dmitrijs2005/bookmarker/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/bookmarker/internal/server/repositories/bookmarks"
)

// RepositoryManager vends repositories bound to a DBTX (a pool or an open
// transaction) and prepares the schema.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Bookmarks(db dbx.DBTX) bookmarks.Repository
}
