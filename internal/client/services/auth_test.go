package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

type fakeClient struct {
	RegisterErr error
	LoginErr    error
	LogoutErr   error
	Resp        *models.AuthResponse

	RegisterCalls int
	LoginCalls    int
	LogoutCalls   int
	GotName       string
	GotEmail      string
	GotPassword   string
}

func (f *fakeClient) Register(_ context.Context, name, email, password string) (*models.AuthResponse, error) {
	f.RegisterCalls++
	f.GotName, f.GotEmail, f.GotPassword = name, email, password
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return f.Resp, nil
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*models.AuthResponse, error) {
	f.LoginCalls++
	f.GotEmail, f.GotPassword = email, password
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.Resp, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func adaResp() *models.AuthResponse {
	return &models.AuthResponse{
		User:  models.User{ID: "1", Name: "Ada", Email: "ada@x.com"},
		Token: "demo-token-1",
	}
}

func TestRegister_SetsSession(t *testing.T) {
	fc := &fakeClient{Resp: adaResp()}
	a := NewAuthService(fc)

	s, err := a.Register(context.Background(), "Ada", "ada@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "1", s.User.ID)
	assert.Equal(t, s, a.Current())
	assert.Equal(t, "secret1", fc.GotPassword)
}

func TestRegister_ShortPasswordNeverHitsServer(t *testing.T) {
	fc := &fakeClient{Resp: adaResp()}
	a := NewAuthService(fc)

	_, err := a.Register(context.Background(), "Ada", "ada@x.com", "12345")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Zero(t, fc.RegisterCalls)
	assert.Nil(t, a.Current())
}

func TestRegister_ServerError(t *testing.T) {
	fc := &fakeClient{RegisterErr: &client.ApplicationError{Status: 409, Message: "User already exists"}}
	a := NewAuthService(fc)

	_, err := a.Register(context.Background(), "Ada", "ada@x.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "User already exists", ErrorMessage(err))
	assert.Nil(t, a.Current())
}

func TestLogin_AndLogout(t *testing.T) {
	fc := &fakeClient{Resp: adaResp()}
	a := NewAuthService(fc)

	_, err := a.Login(context.Background(), "ada@x.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, a.Current())

	require.NoError(t, a.Logout(context.Background()))
	assert.Nil(t, a.Current())
	assert.Equal(t, 1, fc.LogoutCalls)
}

func TestLogin_FailureKeepsPreviousSession(t *testing.T) {
	fc := &fakeClient{Resp: adaResp()}
	a := NewAuthService(fc)

	_, err := a.Login(context.Background(), "ada@x.com", "secret1")
	require.NoError(t, err)

	fc.LoginErr = &client.ApplicationError{Status: 401, Message: "Invalid credentials"}
	_, err = a.Login(context.Background(), "ada@x.com", "wrong")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "1", a.Current().User.ID)
}

func TestLogout_ClearsEvenOnError(t *testing.T) {
	fc := &fakeClient{Resp: adaResp(), LogoutErr: errors.New("x")}
	a := NewAuthService(fc)
	_, _ = a.Login(context.Background(), "ada@x.com", "secret1")

	assert.Error(t, a.Logout(context.Background()))
	assert.Nil(t, a.Current())
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Server is unavailable", ErrorMessage(&client.TransportError{Message: "Server is unavailable"}))
	assert.Equal(t, "Invalid credentials", ErrorMessage(&client.ApplicationError{Status: 401, Message: "Invalid credentials"}))
	assert.Equal(t, "plain", ErrorMessage(errors.New("plain")))
	assert.Equal(t, ErrPasswordTooShort.Error(), ErrorMessage(ErrPasswordTooShort))
}
