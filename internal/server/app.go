// Package server wires the identity server together: configuration, the
// Postgres connection and migrations, services, the gRPC endpoint, the ops
// HTTP endpoint and background maintenance.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/careerkit/internal/logging"
	"github.com/dmitrijs2005/careerkit/internal/server/auth"
	"github.com/dmitrijs2005/careerkit/internal/server/config"
	"github.com/dmitrijs2005/careerkit/internal/server/metrics"
	"github.com/dmitrijs2005/careerkit/internal/server/ops"
	"github.com/dmitrijs2005/careerkit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/careerkit/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/careerkit/internal/server/grpc"
)

// PurgeInterval is how often expired refresh tokens are deleted.
const PurgeInterval = time.Hour

// tokenPurger is the slice of UserService the cleanup loop needs.
type tokenPurger interface {
	PurgeExpiredRefreshTokens(ctx context.Context) (int64, error)
}

// App owns the server components and runs them until shutdown.
type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	registry      *prometheus.Registry
	metrics       *metrics.Metrics
	userService   *services.UserService
	resumeService *services.ResumeService
}

// NewApp connects to the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	verifier := auth.NewOAuthVerifier(c.OAuthProvider, []byte(c.OAuthSecret), c.OAuthIssuer, c.OAuthAudience)

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		registry:      reg,
		metrics:       metrics.New(reg),
		userService:   services.NewUserService(db, rm, verifier, c),
		resumeService: services.NewResumeService(c),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// purgeLoop deletes expired refresh tokens every interval until ctx ends.
func purgeLoop(ctx context.Context, p tokenPurger, m *metrics.Metrics, l logging.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpiredRefreshTokens(ctx)
			if err != nil {
				l.Warn(ctx, "refresh token purge failed", "error", err)
				continue
			}
			m.AddRefreshTokensPurged(n)
			if n > 0 {
				l.Info(ctx, "purged expired refresh tokens", "count", n)
			}
		}
	}
}

// Run serves until a signal arrives or one of the servers fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.metrics,
		app.userService, app.resumeService, app.config.SecretKey)
	opsServer := ops.NewServer(app.config.EndpointAddrOps, ops.NewRouter(app.db, app.registry), app.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return grpcServer.Run(gctx) })
	g.Go(func() error { return opsServer.Run(gctx) })
	g.Go(func() error {
		purgeLoop(gctx, app.userService, app.metrics, app.logger, PurgeInterval)
		return nil
	})

	err := g.Wait()
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Warn(ctx, "db close failed", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
