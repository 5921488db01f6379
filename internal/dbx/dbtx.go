// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by *sql.DB, *sql.Conn and *sql.Tx,
// and a helper that scopes a dedicated pool connection to one unit of work.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithConn takes a dedicated connection from the pool, runs fn with it and
// returns the connection to the pool on every exit path, panics included.
//
// Typical use:
//
//	err := dbx.WithConn(ctx, db, func(ctx context.Context, conn dbx.DBTX) error {
//	    _, err := conn.ExecContext(ctx, "UPDATE ...")
//	    return err
//	})
func WithConn(ctx context.Context, db *sql.DB, fn func(ctx context.Context, conn DBTX) error) (err error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(ctx, conn)
}
