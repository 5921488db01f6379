package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    password TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

func openSQLite(t *testing.T, name string, withSchema bool) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	if withSchema {
		_, err = db.Exec(sqliteSchema)
		require.NoError(t, err)
	}
	return db
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	db := openSQLite(t, "users_create_get", true)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{Name: "Ada", Email: "ada@x.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.WithinDuration(t, time.Now().UTC(), created.CreatedAt, time.Minute)

	got, err := repo.GetUserByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestSQLiteRepository_Duplicate(t *testing.T) {
	db := openSQLite(t, "users_dup", true)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Name: "Ada", Email: "ada@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Name: "Other", Email: "ada@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, common.ErrDuplicateKey)
}

func TestSQLiteRepository_NotFound(t *testing.T) {
	db := openSQLite(t, "users_not_found", true)

	_, err := NewSQLiteRepository(db).GetUserByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_UndefinedTable(t *testing.T) {
	db := openSQLite(t, "users_no_table", false)

	_, err := NewSQLiteRepository(db).GetUserByEmail(context.Background(), "ada@x.com")
	assert.ErrorIs(t, err, common.ErrUndefinedTable)
}

func TestTimestamp_Scan(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	var ts timestamp
	require.NoError(t, ts.Scan(now))
	assert.True(t, now.Equal(ts.Time))

	require.NoError(t, ts.Scan("2026-01-02 03:04:05"))
	assert.True(t, now.Equal(ts.Time))

	require.NoError(t, ts.Scan([]byte("2026-01-02T03:04:05Z")))
	assert.True(t, now.Equal(ts.Time))

	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(42))
}
