package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"

	"github.com/deckpilot/deckpilot/internal/client/api"
	"github.com/deckpilot/deckpilot/internal/client/config"
	"github.com/deckpilot/deckpilot/internal/client/project"
	"github.com/deckpilot/deckpilot/internal/client/repositories/state"
	"github.com/deckpilot/deckpilot/internal/client/session"
	"github.com/deckpilot/deckpilot/internal/client/tasks"
	"github.com/deckpilot/deckpilot/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	db      *sql.DB
	repo    state.Repository
	client  *api.HTTPClient
	session *session.Session
	store   *project.Store
	tracker *tasks.Tracker
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	db, err := state.Open(ctx, c.StateDBPath)
	if err != nil {
		log.Printf("error initializing state database: %s", err.Error())
		return nil, err
	}
	repo := state.NewSQLiteRepository(db)

	app := &App{config: c, db: db, repo: repo, reader: bufio.NewReader(os.Stdin)}

	// The token provider reads through the app so the client can be built
	// before the session that feeds it.
	client := api.New(c.ServerBaseURL,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(logger),
		api.WithTokenProvider(api.TokenFunc(func() string {
			if app.session == nil {
				return ""
			}
			return app.session.Token()
		})),
	)

	tracker := tasks.NewTracker(logger)

	app.client = client
	app.session = session.New(client, repo, logger)
	app.tracker = tracker
	app.store = project.NewStore(client, repo, tracker, logger,
		tasks.WithInterval(c.PollInterval),
		tasks.WithMaxAttempts(c.PollMaxAttempts),
		tasks.WithOnUpdate(printTaskProgress),
	)

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	defer a.tracker.CancelAll()

	if err := a.session.Load(ctx); err != nil {
		log.Printf("could not restore session: %s", err.Error())
	}

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}
