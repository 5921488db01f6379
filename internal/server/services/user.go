// Package services contains server-side business logic. This file implements
// UserService, which registers accounts, verifies credentials and provisions
// the users schema when the store does not have it yet.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

// Store is the slice of storage.Store the service needs.
type Store interface {
	Configured() bool
	DB() (*sql.DB, error)
	WithConn(ctx context.Context, fn func(ctx context.Context, conn dbx.DBTX) error) error
}

// AuthResult is what a successful register or login hands back.
type AuthResult struct {
	User  *models.User
	Token string
}

// UserService provides the account operations:
//   - Register: create an account with a bcrypt-hashed password
//   - Login: verify credentials and mint a token
//   - ProvisionSchema: create the users table if needed
type UserService struct {
	store       Store
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      auth.TokenIssuer
	logger      logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService wires a UserService.
func NewUserService(store Store, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, tokens auth.TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{
		store:       store,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "user_service"),
	}
}

// Configured reports whether a store DSN was supplied.
func (s *UserService) Configured() bool {
	return s.store.Configured()
}

// Register creates a new account. A blank field yields ErrorValidation, an
// existing email ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	var user *models.User
	err := s.store.WithConn(ctx, func(ctx context.Context, conn dbx.DBTX) error {
		repo := s.repomanager.Users(conn)

		_, err := s.findByEmail(ctx, repo, email)
		if err == nil {
			return common.ErrorAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		hash, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		user, err = repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
		if errors.Is(err, common.ErrDuplicateKey) {
			return common.ErrorAlreadyExists
		}
		return err
	})
	if err != nil {
		return nil, s.mapError(ctx, "register", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, s.mapError(ctx, "register", fmt.Errorf("issue token: %w", err))
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "email", user.Email)
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies email and password. Unknown email and wrong password both
// yield ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	var user *models.User
	err := s.store.WithConn(ctx, func(ctx context.Context, conn dbx.DBTX) error {
		var err error
		user, err = s.findByEmail(ctx, s.repomanager.Users(conn), email)
		return err
	})
	if errors.Is(err, common.ErrorNotFound) {
		// keep the unknown-email path as slow as a real comparison
		_ = s.hasher.Compare(s.dummy(), password)
		s.logger.Info(ctx, "login rejected", "email", email)
		return nil, common.ErrorUnauthorized
	}
	if err != nil {
		return nil, s.mapError(ctx, "login", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrMismatchedPassword) {
			s.logger.Info(ctx, "login rejected", "email", email)
			return nil, common.ErrorUnauthorized
		}
		return nil, s.mapError(ctx, "login", fmt.Errorf("compare password: %w", err))
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, s.mapError(ctx, "login", fmt.Errorf("issue token: %w", err))
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// ProvisionSchema creates the users table when it does not exist. Errors are
// returned as-is so callers can surface the store's message.
func (s *UserService) ProvisionSchema(ctx context.Context) (*repomanager.SchemaReport, error) {
	db, err := s.store.DB()
	if err != nil {
		return nil, err
	}

	report, err := s.repomanager.RunMigrations(ctx, db)
	if err != nil {
		s.logger.Error(ctx, "schema provisioning failed", "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "schema provisioned", "applied", report.Applied, "version", report.Version)
	return report, nil
}

// findByEmail looks the account up, provisioning the schema and retrying
// exactly once when the table is missing.
func (s *UserService) findByEmail(ctx context.Context, repo users.Repository, email string) (*models.User, error) {
	user, err := repo.GetUserByEmail(ctx, email)
	if !errors.Is(err, common.ErrUndefinedTable) {
		return user, err
	}

	s.logger.Warn(ctx, "users table missing, provisioning")
	if _, err := s.ProvisionSchema(ctx); err != nil {
		return nil, err
	}

	return repo.GetUserByEmail(ctx, email)
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("dummy-password")
	})
	return s.dummyHash
}

// mapError keeps the sentinels callers branch on and collapses everything
// else into ErrorInternal after logging it.
func (s *UserService) mapError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrorConfiguration):
		return err
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}
