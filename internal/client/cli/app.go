package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/guesscode/guesscode-cli/internal/client/api"
	"github.com/guesscode/guesscode-cli/internal/client/bus"
	"github.com/guesscode/guesscode-cli/internal/client/config"
	"github.com/guesscode/guesscode-cli/internal/client/presence"
	"github.com/guesscode/guesscode-cli/internal/client/session"
	"github.com/guesscode/guesscode-cli/internal/client/storage"
	"github.com/guesscode/guesscode-cli/internal/client/tokenstore"
	"github.com/guesscode/guesscode-cli/internal/logging"
)

// App wires the client together: local credential storage, the API
// client, the presence channel, and the session controller, plus the
// interactive input used by the REPL commands.
type App struct {
	config  *config.Config
	session *session.Controller
	client  api.Client
	channel *presence.Channel
	tokens  tokenstore.Store
	db      *sql.DB
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init local database: %w", err)
	}

	tokens := tokenstore.NewSQLiteStore(db)
	eventBus := bus.New()
	client := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout, tokens, eventBus, log)
	channel := presence.NewChannel(cfg.StatusHubURL(), presence.WebsocketDialer{}, tokens, log)
	sess := session.NewController(client, tokens, channel, eventBus, log)

	return &App{
		config:  cfg,
		session: sess,
		client:  client,
		channel: channel,
		tokens:  tokens,
		db:      db,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Close releases the bus subscription, the presence connection, and the
// local database.
func (a *App) Close() {
	a.session.Close()
	a.channel.Stop()
	_ = a.db.Close()
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}
