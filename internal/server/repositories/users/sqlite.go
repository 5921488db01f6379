package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var createdAt timestamp
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password) VALUES (?, ?, ?) RETURNING id, created_at`,
		user.Name, user.Email, user.PasswordHash).Scan(&user.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", classifySQLite(err))
	}
	user.CreatedAt = createdAt.Time
	return user, nil
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	var createdAt timestamp
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password, created_at FROM users WHERE email = ?`, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", classifySQLite(err))
	}
	user.CreatedAt = createdAt.Time
	return user, nil
}

// The driver exposes no dedicated code for a missing table, only
// SQLITE_ERROR with a "no such table" message.
func classifySQLite(err error) error {
	var sqErr *sqlite.Error
	if !errors.As(err, &sqErr) {
		return err
	}
	switch {
	case sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		strings.Contains(sqErr.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %w", common.ErrDuplicateKey, err)
	case strings.Contains(sqErr.Error(), "no such table"):
		return fmt.Errorf("%w: %w", common.ErrUndefinedTable, err)
	}
	return err
}

// timestamp scans SQLite CURRENT_TIMESTAMP values, which the driver may hand
// back either as time.Time or as text depending on the column's declared type.
type timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

func (ts *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		ts.Time = v
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		ts.Time = time.Time{}
		return nil
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (ts *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("unparsable timestamp %q", s)
}
