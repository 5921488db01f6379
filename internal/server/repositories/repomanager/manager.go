// Package repomanager vends store-specific repository implementations and
// provisions the schema they need through embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/migrations"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophauth/internal/server/storage"
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/singleflight"
)

// SchemaReport describes the outcome of a provisioning run.
type SchemaReport struct {
	Applied []int64 `json:"applied"`
	Version int64   `json:"version"`
}

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) (*SchemaReport, error)
	Users(db dbx.DBTX) users.Repository
}

// migrator is the part of *goose.Provider the managers rely on.
type migrator interface {
	Up(ctx context.Context) ([]*goose.MigrationResult, error)
	GetDBVersion(ctx context.Context) (int64, error)
}

// newMigrator is a seam for testing goose.NewProvider.
var newMigrator = func(dialect goose.Dialect, db *sql.DB, fsys fs.FS, opts ...goose.ProviderOption) (migrator, error) {
	return goose.NewProvider(dialect, db, fsys, opts...)
}

// ForDriver returns the manager matching the store driver.
func ForDriver(driver storage.Driver) (RepositoryManager, error) {
	switch driver {
	case storage.DriverPostgres:
		return NewPostgresRepositoryManager(), nil
	case storage.DriverSQLite:
		return NewSQLiteRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// provisioner runs one dialect's migrations. Concurrent runs inside the
// process share a single execution.
type provisioner struct {
	dialect goose.Dialect
	dir     string
	options func() ([]goose.ProviderOption, error)
	group   singleflight.Group
}

func (p *provisioner) run(ctx context.Context, db *sql.DB) (*SchemaReport, error) {
	v, err, _ := p.group.Do(p.dir, func() (interface{}, error) {
		return p.up(ctx, db)
	})
	if err != nil {
		return nil, err
	}
	return v.(*SchemaReport), nil
}

func (p *provisioner) up(ctx context.Context, db *sql.DB) (*SchemaReport, error) {
	fsys, err := fs.Sub(migrations.Migrations, p.dir)
	if err != nil {
		return nil, fmt.Errorf("migrations fs: %w", err)
	}

	var opts []goose.ProviderOption
	if p.options != nil {
		if opts, err = p.options(); err != nil {
			return nil, err
		}
	}

	m, err := newMigrator(p.dialect, db, fsys, opts...)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}

	results, err := m.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("goose up: %w", err)
	}

	report := &SchemaReport{Applied: make([]int64, 0, len(results))}
	for _, r := range results {
		if r != nil && r.Source != nil {
			report.Applied = append(report.Applied, r.Source.Version)
		}
	}

	if report.Version, err = m.GetDBVersion(ctx); err != nil {
		return nil, fmt.Errorf("goose version: %w", err)
	}
	return report, nil
}
