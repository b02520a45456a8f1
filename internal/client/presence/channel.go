// Package presence maintains the client's connection to the status hub:
// a single server-push channel carrying activity-status notifications,
// opened when the session becomes authenticated and closed on logout.
package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/guesscode/guesscode-cli/internal/client/models"
	"github.com/guesscode/guesscode-cli/internal/client/tokenstore"
	"github.com/guesscode/guesscode-cli/internal/logging"
)

// State of the hub connection.
type State int

const (
	StateClosed State = iota
	StateConnecting
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "closed"
	}
}

// Conn is the minimal connection surface the channel needs. It is
// satisfied by *websocket.Conn; tests substitute fakes.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Dialer performs a single connection attempt.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// Channel owns at most one live hub connection, keyed by the stored user
// id. Start and Stop are idempotent and serialize on the channel mutex,
// so a Start racing a Stop can never leave a dangling open connection.
type Channel struct {
	hubURL string
	dialer Dialer
	tokens tokenstore.Store
	log    logging.Logger

	mu     sync.Mutex
	state  State
	conn   Conn
	cancel context.CancelFunc
	done   chan struct{}

	lastStatus *models.StatusUpdate
}

func NewChannel(hubURL string, dialer Dialer, tokens tokenstore.Store, log logging.Logger) *Channel {
	return &Channel{
		hubURL: hubURL,
		dialer: dialer,
		tokens: tokens,
		log:    log.With("component", "presence"),
	}
}

// State reports the current connection state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastStatus returns the most recent status update received from the
// hub, or nil if none arrived yet.
func (c *Channel) LastStatus() *models.StatusUpdate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastStatus
}

// Start opens the hub connection for the stored user id. It is a no-op
// when a connection is already connecting or open. A missing user id is
// logged, not returned: Start can race a teardown and must stay quiet.
func (c *Channel) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateClosed {
		return nil
	}

	userID, err := c.tokens.UserID(ctx)
	if err != nil || userID == 0 {
		c.log.Warn(ctx, "no user id for status hub connection", "error", err)
		return nil
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	c.done = make(chan struct{})
	c.state = StateConnecting

	go c.run(runCtx, userID, c.done)
	return nil
}

// Stop closes the connection and waits for the connection goroutine to
// exit. Safe to call any number of times, in any state, and it never
// fails on an already-dropped transport.
func (c *Channel) Stop() {
	c.mu.Lock()
	if c.cancel == nil {
		c.state = StateClosed
		c.mu.Unlock()
		return
	}

	c.cancel()
	c.cancel = nil
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.state = StateClosed
	done := c.done
	c.done = nil
	c.mu.Unlock()

	<-done
	c.log.Info(context.Background(), "status hub disconnected")
}

// run dials (with exponential backoff) and reads until canceled,
// reconnecting after a dropped connection.
func (c *Channel) run(ctx context.Context, userID int64, done chan struct{}) {
	defer close(done)

	url := fmt.Sprintf("%s?userId=%d", c.hubURL, userID)

	for {
		conn, err := c.connect(ctx, url)
		if err != nil {
			return
		}

		c.log.Info(ctx, "status hub connected", "userID", userID)
		c.readLoop(ctx, conn)

		c.mu.Lock()
		if c.state == StateClosed {
			c.mu.Unlock()
			return
		}
		// Connection dropped underneath us; go back to connecting and retry.
		c.conn = nil
		c.state = StateConnecting
		c.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		c.log.Warn(ctx, "status hub connection lost, reconnecting")
	}
}

func (c *Channel) connect(ctx context.Context, url string) (Conn, error) {
	backoff := retry.WithCappedDuration(30*time.Second, retry.NewExponential(500*time.Millisecond))

	var conn Conn
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		dialed, err := c.dialer.Dial(ctx, url)
		if err != nil {
			c.log.Warn(ctx, "status hub dial failed", "error", err)
			return retry.RetryableError(err)
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil || c.state == StateClosed {
			// Lost the race with Stop; do not leave the handle dangling.
			_ = dialed.Close()
			if err := ctx.Err(); err != nil {
				return err
			}
			return context.Canceled
		}
		c.conn = dialed
		c.state = StateOpen
		conn = dialed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (c *Channel) readLoop(ctx context.Context, conn Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var update models.StatusUpdate
		if err := json.Unmarshal(data, &update); err != nil {
			c.log.Debug(ctx, "ignoring unparseable hub frame", "error", err)
			continue
		}

		c.mu.Lock()
		c.lastStatus = &update
		c.mu.Unlock()
		c.log.Debug(ctx, "status update", "userID", update.UserID, "status", update.ActivityStatus.String())
	}
}
