// Package users persists accounts. Driver errors are classified into the
// common sentinels so callers never inspect driver-specific codes.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository is the account store.
//
// GetUserByEmail returns common.ErrorNotFound when no row matches. Both
// methods report a missing table as common.ErrUndefinedTable and Create
// reports a taken email as common.ErrDuplicateKey.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
