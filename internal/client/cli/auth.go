package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/client/services"
)

var errNotLoggedIn = errors.New("not logged in")

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for name, email and password and creates the account.
// On success the dashboard is shown.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if _, err := a.authService.Register(ctx, name, email, password); err != nil {
		printlnFn("Registration failed:", services.ErrorMessage(err))
		return err
	}

	printlnFn("Account created.")
	return a.Dashboard(ctx)
}

// Login prompts for email and password and signs in. On success the
// dashboard is shown.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if _, err := a.authService.Login(ctx, email, password); err != nil {
		printlnFn("Login failed:", services.ErrorMessage(err))
		return err
	}

	printlnFn("Welcome back.")
	return a.Dashboard(ctx)
}

// Dashboard prints the signed-in account.
func (a *App) Dashboard(ctx context.Context) error {
	s := a.authService.Current()
	if s == nil {
		printlnFn("Not logged in. Use 'login' or 'register'.")
		return errNotLoggedIn
	}

	printlnFn("Dashboard")
	printlnFn("  Name:  ", s.User.Name)
	printlnFn("  Email: ", s.User.Email)
	printlnFn("  ID:    ", s.User.ID)
	return nil
}

// Logout ends the local session.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return errNotLoggedIn
	}
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Signed out.")
	return nil
}
