package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLiteRepositoryManager vends SQLite-backed repositories. SQLite serializes
// writers itself, so no session locker is configured.
type SQLiteRepositoryManager struct {
	p *provisioner
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) (*SchemaReport, error) {
	return m.p.run(ctx, db)
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{p: &provisioner{
		dialect: goose.DialectSQLite3,
		dir:     "sqlite",
	}}
}
