package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newSQLiteService builds the real stack over a fresh in-memory database
// without a users table.
func newSQLiteService(t *testing.T, name string) *UserService {
	t.Helper()
	store, err := storage.Open("sqlite:file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewUserService(store, repomanager.NewSQLiteRepositoryManager(),
		auth.NewPasswordHasher(bcrypt.MinCost), auth.NewPlaceholderIssuer(), logging.Nop{})
}

func TestUserService_SQLite_RegisterLoginFlow(t *testing.T) {
	s := newSQLiteService(t, "services_flow")
	ctx := context.Background()

	reg, err := s.Register(ctx, "Ada", "ada@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.User.ID)
	assert.Regexp(t, `^demo-token-\d+$`, reg.Token)

	login, err := s.Login(ctx, "ada@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.Equal(t, "Ada", login.User.Name)

	_, err = s.Login(ctx, "ada@x.com", "wrong")
	assert.Equal(t, common.ErrorUnauthorized, err)

	_, err = s.Register(ctx, "Ada Again", "ada@x.com", "other12")
	assert.Equal(t, common.ErrorAlreadyExists, err)
}

func TestUserService_SQLite_LoginOnFreshStore(t *testing.T) {
	s := newSQLiteService(t, "services_fresh_login")

	_, err := s.Login(context.Background(), "ghost@x.com", "secret1")
	assert.Equal(t, common.ErrorUnauthorized, err)
}

func TestUserService_SQLite_ProvisionIdempotent(t *testing.T) {
	s := newSQLiteService(t, "services_provision")
	ctx := context.Background()

	first, err := s.ProvisionSchema(ctx)
	require.NoError(t, err)
	second, err := s.ProvisionSchema(ctx)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, first.Applied)
	assert.Empty(t, second.Applied)
	assert.Equal(t, first.Version, second.Version)
}
