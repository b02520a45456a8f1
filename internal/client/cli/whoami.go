package cli

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Whoami prints the authenticated user's profile, the presence channel
// state, and, when the bearer token happens to be a JWT, its expiry.
// The token stays opaque to all control flow; the expiry is shown
// purely for the user's information.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	user := a.session.CurrentUser()
	printlnFn(fmt.Sprintf("%s (id %d), %s", user.Username, user.UserID, user.ActivityStatus))
	if user.Description != "" {
		printlnFn(user.Description)
	}
	if user.AvatarURL != "" {
		printlnFn("Avatar:", user.AvatarURL)
	}

	printlnFn("Status hub:", a.channel.State().String())
	if s := a.channel.LastStatus(); s != nil {
		printlnFn(fmt.Sprintf("Last status update: user %d is %s", s.UserID, s.ActivityStatus))
	}

	if exp := a.tokenExpiry(ctx); exp != "" {
		printlnFn("Token expires:", exp)
	}
	return nil
}

func (a *App) tokenExpiry(ctx context.Context) string {
	token, err := a.tokens.Token(ctx)
	if err != nil || token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ""
	}
	return exp.Format("2006-01-02 15:04:05 MST")
}
