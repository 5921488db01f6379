// Package storage opens the relational store behind the auth server and
// hands out per-request connections. The driver is picked from the DSN:
// postgres:// and key=value DSNs go to pgx, sqlite: and file: DSNs go to
// modernc.org/sqlite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver is a database/sql driver name.
type Driver string

const (
	DriverPostgres Driver = "pgx"
	DriverSQLite   Driver = "sqlite"
)

// DetectDriver returns the driver for dsn and the data source name to hand
// to sql.Open.
func DetectDriver(dsn string) (Driver, string) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(dsn, "sqlite://")
	case strings.HasPrefix(dsn, "sqlite:"):
		return DriverSQLite, strings.TrimPrefix(dsn, "sqlite:")
	case strings.HasPrefix(dsn, "file:"):
		return DriverSQLite, dsn
	default:
		return DriverPostgres, dsn
	}
}

// Store owns the connection pool. A Store built from an empty DSN is
// unconfigured: every access reports common.ErrorConfiguration.
type Store struct {
	db     *sql.DB
	driver Driver
}

// Open prepares a pool for dsn without connecting. An empty dsn yields an
// unconfigured Store and no error.
func Open(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return &Store{}, nil
	}

	driver, source := DetectDriver(dsn)
	if driver == DriverSQLite {
		source = sharedMemory(source)
		if !strings.Contains(source, "_pragma=busy_timeout") {
			source = withParam(source, "_pragma=busy_timeout(5000)")
		}
	}

	db, err := sql.Open(string(driver), source)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// NewStore wraps an existing pool.
func NewStore(db *sql.DB, driver Driver) *Store {
	return &Store{db: db, driver: driver}
}

// sharedMemory rewrites a private in-memory source (":memory:") into a
// uniquely named shared-cache one. Without it every pool connection opens
// its own empty database and the schema created on one is invisible to the
// others.
func sharedMemory(source string) string {
	base, query, _ := strings.Cut(source, "?")
	if base != ":memory:" && base != "file::memory:" {
		return source
	}
	if strings.Contains(query, "cache=shared") {
		return source
	}

	shared := "file:gophauth-" + uuid.NewString() + "?mode=memory&cache=shared"
	if query != "" {
		shared += "&" + query
	}
	return shared
}

func withParam(source, param string) string {
	if strings.Contains(source, "?") {
		return source + "&" + param
	}
	return source + "?" + param
}

// Configured reports whether a DSN was supplied.
func (s *Store) Configured() bool {
	return s != nil && s.db != nil
}

// Driver returns the driver the pool was opened with.
func (s *Store) Driver() Driver {
	return s.driver
}

// DB returns the pool, or common.ErrorConfiguration.
func (s *Store) DB() (*sql.DB, error) {
	if !s.Configured() {
		return nil, common.ErrorConfiguration
	}
	return s.db, nil
}

// WithConn runs fn on a dedicated connection that is released when fn
// returns, whatever the outcome.
func (s *Store) WithConn(ctx context.Context, fn func(ctx context.Context, conn dbx.DBTX) error) error {
	db, err := s.DB()
	if err != nil {
		return err
	}
	return dbx.WithConn(ctx, db, fn)
}

// Close closes the pool. Closing an unconfigured Store is a no-op.
func (s *Store) Close() error {
	if !s.Configured() {
		return nil
	}
	return s.db.Close()
}
