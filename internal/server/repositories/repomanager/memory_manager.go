package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookmarker/internal/dbx"
	"github.com/dmitrijs2005/bookmarker/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/bookmarker/internal/server/repositories/bookmarks"
)

// MemoryRepositoryManager hands out the same process-local repositories
// regardless of the DBTX it is given. There is no schema, so RunMigrations
// does nothing.
type MemoryRepositoryManager struct {
	accounts  *accounts.MemoryRepository
	bookmarks *bookmarks.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		accounts:  accounts.NewMemoryRepository(),
		bookmarks: bookmarks.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Accounts(dbx.DBTX) accounts.Repository {
	return m.accounts
}

func (m *MemoryRepositoryManager) Bookmarks(dbx.DBTX) bookmarks.Repository {
	return m.bookmarks
}
