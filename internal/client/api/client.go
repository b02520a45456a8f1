// Package api is the single gateway to the GuessCode HTTP API. It injects
// the stored bearer credential into every request, turns non-2xx
// responses into typed errors, and invalidates the session when the
// server reports the credential stale.
package api

import (
	"context"

	"github.com/guesscode/guesscode-cli/internal/client/models"
)

// Client is the API surface the rest of the client programs against.
// Tests substitute struct fakes.
type Client interface {
	Login(ctx context.Context, username, password string) (*TokenResponse, error)
	Register(ctx context.Context, email, username, password string) error
	ProfileInfo(ctx context.Context, userID int64) (*models.Profile, error)
	SearchKatas(ctx context.Context) ([]models.Kata, error)
	GetKata(ctx context.Context, kataID int64) (*models.Kata, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error)
}
