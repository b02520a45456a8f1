// Package tokenstore persists the bearer credential of the current
// session: the access token and the user id it belongs to. The two values
// form one logical credential and are always written and removed together.
package tokenstore

import "context"

const (
	keyAuthToken = "authToken"
	keyUserID    = "userId"
)

// Store is the credential storage used by the API client and the session
// controller.
//
// An absent token is reported as "", an absent user id as 0. Token and
// user id are set and cleared as a pair; callers never observe one
// without the other.
type Store interface {
	Token(ctx context.Context) (string, error)
	UserID(ctx context.Context) (int64, error)
	SetTokenData(ctx context.Context, token string, userID int64) error
	RemoveTokenData(ctx context.Context) error
}
