package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/config"
	"github.com/dmitrijs2005/authdemo/internal/client/jar"
	"github.com/dmitrijs2005/authdemo/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/authdemo/internal/client/repositories/history"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
	"github.com/dmitrijs2005/authdemo/internal/client/state"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

// cookieJar is the part of jar.Jar the reset command needs.
type cookieJar interface {
	Clear(ctx context.Context) error
}

type App struct {
	config      *config.Config
	authService services.AuthService
	store       *state.Store
	db          *sql.DB
	jar         cookieJar
	reader      *bufio.Reader
	out         io.Writer
	log         logging.Logger
	unsubscribe func()
}

// NewApp opens the local database, restores the cookie jar and builds the
// services. Logs go to stderr so they never interleave with the panels.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	j, err := jar.New(ctx, cookies.NewSQLiteRepository(db), logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error loading cookies: %w", err)
	}

	httpClient := client.NewHTTPClient(c.BaseURL, j, c.RequestTimeout, logger)
	store := state.NewStore(state.State{})
	as := services.NewAuthService(httpClient, store, history.NewSQLiteRepository(db), logger)

	return newApp(c, as, store, db, j, os.Stdin, os.Stdout, logger), nil
}

func newApp(c *config.Config, as services.AuthService, store *state.Store, db *sql.DB, j cookieJar, in io.Reader, out io.Writer, l logging.Logger) *App {
	a := &App{
		config:      c,
		authService: as,
		store:       store,
		db:          db,
		jar:         j,
		reader:      bufio.NewReader(in),
		out:         out,
		log:         l,
	}
	a.unsubscribe = store.Subscribe(sessionLogger(l))
	return a
}

// sessionLogger logs sign-in and sign-out transitions at debug level.
func sessionLogger(l logging.Logger) func(state.State) {
	var signedIn atomic.Bool
	return func(s state.State) {
		if signedIn.Swap(s.Session.SignedIn) == s.Session.SignedIn {
			return
		}
		if s.Session.SignedIn && s.Session.User != nil {
			l.Debug(context.Background(), "session established", "user_id", string(s.Session.User.ID))
		} else {
			l.Debug(context.Background(), "session cleared")
		}
	}
}

// Run probes the session, then serves the REPL until exit or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close releases the database. It is safe to call more than once.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "closing database", "error", err)
		}
		a.db = nil
	}
}

func (a *App) isSignedIn() bool {
	return a.store.Snapshot().Session.SignedIn
}
