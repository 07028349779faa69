package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/careerkit/internal/client/client"
	"github.com/dmitrijs2005/careerkit/internal/client/config"
	"github.com/dmitrijs2005/careerkit/internal/client/navigation"
	"github.com/dmitrijs2005/careerkit/internal/client/reconciler"
	"github.com/dmitrijs2005/careerkit/internal/client/services"
	"github.com/dmitrijs2005/careerkit/internal/client/termsgate"
	"github.com/dmitrijs2005/careerkit/internal/logging"
	"github.com/dmitrijs2005/careerkit/internal/netx"
	"golang.org/x/sync/errgroup"
)

// Mode is the connectivity shown in the prompt.
type Mode string

const (
	ModeUnknown Mode = "unknown"
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

// App is the interactive client: session, navigation and REPL.
type App struct {
	config     *config.Config
	logger     logging.Logger
	client     client.Client
	db         *sql.DB
	store      *services.SessionStore
	terms      *services.TermsService
	resumes    *services.ResumeService
	router     *navigation.MemoryRouter
	reconciler *reconciler.Reconciler
	gate       *termsgate.Gate
	reader     *bufio.Reader
	out        io.Writer

	mu   sync.Mutex
	mode Mode
}

// NewApp builds the client from cfg. With a DataDir the session survives
// restarts in a SQLite database there; without one it is kept in memory.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr, slog.LevelInfo)

	var (
		db     *sql.DB
		tokens client.TokenStorage
	)
	if cfg.DataDir != "" {
		var err error
		db, err = client.OpenDataDir(ctx, cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		tokens = client.NewSQLiteTokenStorage(db)
	} else {
		tokens = client.NewMemoryTokenStorage()
	}

	apiClient, err := client.NewGRPCClient(cfg.ServerEndpointAddr, tokens, cfg.RequestTimeout)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	a := newApp(cfg, apiClient, tokens, &http.Client{Timeout: cfg.RequestTimeout}, logger, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

func newApp(cfg *config.Config, c client.Client, tokens client.TokenStorage, h netx.HTTPDoer,
	logger logging.Logger, in io.Reader, out io.Writer) *App {

	store := services.NewSessionStore(c, tokens, logger)
	router := navigation.NewMemoryRouter(navigation.RouteHome)
	rec := reconciler.New(store, router, cfg.SettleWindow, logger)

	return &App{
		config:     cfg,
		logger:     logger,
		client:     c,
		store:      store,
		terms:      services.NewTermsService(c, store),
		resumes:    services.NewResumeService(c, h),
		router:     router,
		reconciler: rec,
		gate:       termsgate.New(rec),
		reader:     bufio.NewReader(in),
		out:        out,
		mode:       ModeUnknown,
	}
}

// Run restores the persisted session, starts the background reconciler and
// connectivity watcher, and serves the REPL until the user leaves or ctx is
// done. Everything the App holds is released before Run returns.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.reconciler.Run(gctx)
		return nil
	})
	if a.config.PingInterval > 0 {
		g.Go(func() error {
			a.StartOnlineStatusWatcher(gctx, a.config.PingInterval)
			return nil
		})
	}

	a.store.Initialize(ctx)
	a.reconciler.Reconcile()

	runREPL(ctx, a, a.status, a.reader)

	cancel()
	return g.Wait()
}

// Close releases the session store, the router, the connection and the
// local database.
func (a *App) Close() {
	a.store.Close()
	a.router.Close()
	if err := a.client.Close(); err != nil {
		a.logger.Warn(context.Background(), "close client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "close database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().IsAuthenticated
}

// Mode reports the outcome of the last server ping.
func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", string(mode))
	}
}

// status renders the prompt: navigation state, location and connectivity.
func (a *App) status() string {
	return fmt.Sprintf("%s@%s [%s]", a.reconciler.State(), a.router.Location(), a.Mode())
}

// checkOnline pings the server once and records the outcome.
func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.client.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}
