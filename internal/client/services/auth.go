// Package services contains application services for the terminal client.
// This file defines the authentication service: register, login, logout and
// the in-memory session they maintain.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/models"
)

const MinPasswordLength = 6

var ErrPasswordTooShort = errors.New("Password must be at least 6 characters long")

// Session is the signed-in state: the account and its token.
type Session struct {
	User  models.User
	Token string
}

// AuthService defines authentication operations for the CLI.
//
// Register checks the password length locally before calling the server.
// A successful Register or Login replaces the current session; Logout clears
// it.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context) error
	Current() *Session
}

type authService struct {
	client client.Client

	mu      sync.RWMutex
	session *Session
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

func (a *authService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	resp, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return a.set(resp), nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return a.set(resp), nil
}

// Logout clears the session even when the client reports an error.
func (a *authService) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)

	a.mu.Lock()
	a.session = nil
	a.mu.Unlock()

	return err
}

func (a *authService) Current() *Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *authService) set(resp *models.AuthResponse) *Session {
	s := &Session{User: resp.User, Token: resp.Token}

	a.mu.Lock()
	a.session = s
	a.mu.Unlock()

	return s
}

// ErrorMessage returns the user-facing text for err: the server's or
// transport's message when there is one, err.Error() otherwise.
func ErrorMessage(err error) string {
	var appErr *client.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	var tErr *client.TransportError
	if errors.As(err, &tErr) {
		return tErr.Message
	}
	return err.Error()
}
