package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/guesscode/guesscode-cli/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates through the session
// controller. Errors are printed for the user and returned unchanged.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		if errors.Is(err, session.ErrInvalidServerResponse) {
			printlnFn("Login failed: the server returned an unusable response, try again later")
		} else {
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", a.session.CurrentUser().Username))
	return nil
}

// Register prompts for account details, creates the account, and logs
// the new user in (registration alone does not establish a session).
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, email, username, password); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Success!")
	return nil
}

// Logout ends the session. Safe to run when nobody is logged in.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// Reload re-fetches the current profile from the server.
func (a *App) Reload(ctx context.Context) error {
	if err := a.session.Reload(ctx); err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			printlnFn("Not logged in")
		} else {
			printlnFn("Reload failed:", err.Error())
		}
		return err
	}
	printlnFn("Profile refreshed")
	return nil
}
