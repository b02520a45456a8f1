// Package session owns the client's authentication state. The controller
// is the only component that mutates the session; everything else reads
// it. It coordinates the token store, the API client, and the presence
// channel so that the channel is open exactly while the session is
// authenticated.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/guesscode/guesscode-cli/internal/client/api"
	"github.com/guesscode/guesscode-cli/internal/client/bus"
	"github.com/guesscode/guesscode-cli/internal/client/models"
	"github.com/guesscode/guesscode-cli/internal/client/tokenstore"
	"github.com/guesscode/guesscode-cli/internal/logging"
)

// State of the session.
type State string

const (
	// StateAnonymous: no authenticated user.
	StateAnonymous State = "anonymous"
	// StateHydrating: a stored credential exists and the profile fetch
	// that would confirm it is in flight.
	StateHydrating State = "hydrating"
	// StateAuthenticated: the profile fetch succeeded; CurrentUser is set.
	StateAuthenticated State = "authenticated"
	// StateInvalidating: a forced logout is being processed.
	StateInvalidating State = "invalidating"
)

var (
	// ErrInvalidServerResponse: the login response is missing the access
	// token or the user id. The credential store is left untouched.
	ErrInvalidServerResponse = errors.New("invalid server response")

	// ErrNotAuthenticated: the operation needs an authenticated session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// PresenceRunner is the slice of the presence channel the controller
// drives on state transitions.
type PresenceRunner interface {
	Start(ctx context.Context) error
	Stop()
}

// Controller implements the session state machine.
//
// isAuthenticated is true if and only if a profile fetch succeeded for
// the stored credential; the mere presence of a token never flips it.
type Controller struct {
	api      api.Client
	tokens   tokenstore.Store
	presence PresenceRunner
	log      logging.Logger

	mu    sync.Mutex
	state State
	user  *models.Profile
	// gen increments on every transition out of the session; an async
	// result is applied only if gen is unchanged since the request
	// started, so a stale profile fetch cannot resurrect an ended session.
	gen uint64

	unsubscribe func()
}

// NewController wires the controller and subscribes it to the forced
// logout signal. Call Close to release the subscription.
func NewController(apiClient api.Client, tokens tokenstore.Store, pres PresenceRunner, b *bus.Bus, log logging.Logger) *Controller {
	c := &Controller{
		api:      apiClient,
		tokens:   tokens,
		presence: pres,
		log:      log.With("component", "session"),
		state:    StateAnonymous,
	}
	c.unsubscribe = b.OnForceLogout(c.onForceLogout)
	return c
}

// Close unsubscribes the controller from the forced-logout bus.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsAuthenticated reports whether a confirmed user session exists.
func (c *Controller) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// IsLoading reports whether hydration is still in flight.
func (c *Controller) IsLoading() bool {
	return c.State() == StateHydrating
}

// CurrentUser returns the authenticated user's profile, or nil.
func (c *Controller) CurrentUser() *models.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// enterAuthenticated flips the session to authenticated and, as a
// consequence of that transition, opens the presence channel. Presence
// coupling lives here and in enterAnonymous only; call sites never touch
// the channel directly.
func (c *Controller) enterAuthenticated(ctx context.Context, user *models.Profile) {
	c.mu.Lock()
	c.state = StateAuthenticated
	c.user = user
	c.mu.Unlock()

	if err := c.presence.Start(ctx); err != nil {
		c.log.Error(ctx, "failed to start presence channel", "error", err)
	}
}

// enterAnonymous flips the session to anonymous, invalidates in-flight
// async results, and closes the presence channel.
func (c *Controller) enterAnonymous() {
	c.mu.Lock()
	c.state = StateAnonymous
	c.user = nil
	c.gen++
	c.mu.Unlock()

	c.presence.Stop()
}

// Hydrate reconstructs the session from a persisted credential. Failures
// are logged, never returned: there is no user action to report them
// against. A 401 means the credential is stale and clears it; any other
// failure keeps the credential for a later retry.
func (c *Controller) Hydrate(ctx context.Context) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Error(ctx, "failed to read credential", "error", err)
		return
	}
	userID, err := c.tokens.UserID(ctx)
	if err != nil {
		c.log.Error(ctx, "failed to read credential", "error", err)
		return
	}
	if token == "" || userID == 0 {
		return
	}

	c.mu.Lock()
	c.state = StateHydrating
	gen := c.gen
	c.mu.Unlock()

	profile, err := c.api.ProfileInfo(ctx, userID)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.log.Warn(ctx, "stored credential rejected, clearing it")
			if rmErr := c.tokens.RemoveTokenData(ctx); rmErr != nil {
				c.log.Error(ctx, "failed to clear credential", "error", rmErr)
			}
		} else {
			// Transient failure: do not punish the user for a flaky
			// network, the credential stays for the next attempt.
			c.log.Warn(ctx, "hydration failed, keeping credential", "error", err)
		}
		c.enterAnonymous()
		return
	}

	c.mu.Lock()
	if c.gen != gen || c.state != StateHydrating {
		// The session ended (or restarted) while the fetch was in
		// flight; applying the result would resurrect it.
		c.mu.Unlock()
		c.log.Info(ctx, "discarding stale hydration result")
		return
	}
	c.state = StateAuthenticated
	c.user = profile
	c.mu.Unlock()

	if err := c.presence.Start(ctx); err != nil {
		c.log.Error(ctx, "failed to start presence channel", "error", err)
	}
}

// Login authenticates with the server, persists the credential, and
// hydrates the profile. Any failure is returned to the caller for
// display; the session ends up either fully Authenticated or Anonymous,
// never in between.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	resp, err := c.api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if resp.AccessToken == nil || *resp.AccessToken == "" || resp.UserID == nil || *resp.UserID == 0 {
		return ErrInvalidServerResponse
	}

	if err := c.tokens.SetTokenData(ctx, *resp.AccessToken, *resp.UserID); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	profile, err := c.api.ProfileInfo(ctx, *resp.UserID)
	if err != nil {
		// The credential is in an unconfirmed state; roll everything back
		// rather than leave a token that never produced a session.
		c.Logout(ctx)
		return fmt.Errorf("load profile after login: %w", err)
	}

	c.enterAuthenticated(ctx, profile)
	return nil
}

// Register creates the account and then performs the identical login
// flow: registration alone does not establish a session, and a failed
// registration leaves no credential behind.
func (c *Controller) Register(ctx context.Context, email, username, password string) error {
	if err := c.api.Register(ctx, email, username, password); err != nil {
		return err
	}
	return c.Login(ctx, username, password)
}

// Logout ends the session: the presence channel closes, the credential
// is cleared, and the state flips to Anonymous. Safe to call from any
// state, any number of times.
func (c *Controller) Logout(ctx context.Context) {
	c.presence.Stop()

	if err := c.tokens.RemoveTokenData(ctx); err != nil {
		c.log.Error(ctx, "failed to clear credential", "error", err)
	}

	c.mu.Lock()
	c.state = StateAnonymous
	c.user = nil
	c.gen++
	c.mu.Unlock()
}

// Reload re-fetches the current user's profile, e.g. after the server
// acknowledged a profile edit. A 401 ends the session; any other failure
// is returned with the session left authenticated (same tolerance rule
// as hydration).
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateAuthenticated || c.user == nil {
		c.mu.Unlock()
		return ErrNotAuthenticated
	}
	gen := c.gen
	userID := c.user.UserID
	c.mu.Unlock()

	profile, err := c.api.ProfileInfo(ctx, userID)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.Logout(ctx)
		}
		return err
	}

	c.mu.Lock()
	if c.gen == gen && c.state == StateAuthenticated {
		c.user = profile
	}
	c.mu.Unlock()
	return nil
}

// onForceLogout reacts to the API client's invalidation broadcast. The
// credential is already cleared by the publisher; this closes the rest
// of the session down.
func (c *Controller) onForceLogout() {
	ctx := context.Background()

	c.mu.Lock()
	if c.state == StateAnonymous {
		c.mu.Unlock()
		// Still make sure the channel is down; Stop is idempotent.
		c.presence.Stop()
		return
	}
	c.state = StateInvalidating
	c.mu.Unlock()

	c.log.Warn(ctx, "forced logout")
	c.Logout(ctx)
}
