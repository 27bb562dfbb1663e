// Package server wires the bookmarker API together: configuration, logging,
// storage (PostgreSQL or in-memory), migrations, services, metrics and the
// HTTP server, and runs it until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/bookmarker/internal/logging"
	"github.com/dmitrijs2005/bookmarker/internal/server/auth"
	"github.com/dmitrijs2005/bookmarker/internal/server/config"
	"github.com/dmitrijs2005/bookmarker/internal/server/httpserver"
	"github.com/dmitrijs2005/bookmarker/internal/server/metrics"
	"github.com/dmitrijs2005/bookmarker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookmarker/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	metrics     *metrics.Metrics
	handler     http.Handler
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

const pingTimeout = 5 * time.Second

// NewApp validates c, connects storage and builds the HTTP handler. A DSN
// starting with "memory://" selects in-process repositories and no database.
func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(os.Stdout, logging.ParseLevel(c.LogLevel))
	gin.SetMode(c.GinMode)

	app := &App{config: c, logger: logger, metrics: metrics.New()}

	if c.MemoryStorage() {
		app.repomanager = repomanager.NewMemoryRepositoryManager()
	} else {
		db, err := sqlOpen("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db ping error: %w", err)
		}
		app.db = db
		app.repomanager = repomanager.NewPostgresRepositoryManager()
	}

	signer := auth.NewJWTSigner()
	credentials := services.NewCredentialService(
		app.repomanager.Accounts(app.db),
		auth.NewArgon2Hasher(),
		signer,
		c,
		c.AccessTokenTTL,
		logger,
	).WithRecorder(app.metrics)

	app.handler = httpserver.NewRouter(httpserver.Deps{
		Credentials:        credentials,
		Users:              services.NewUserService(app.db, app.repomanager, logger),
		Bookmarks:          services.NewBookmarkService(app.db, app.repomanager, logger),
		Tokens:             signer,
		Secrets:            c,
		Metrics:            app.metrics,
		Logger:             logger,
		CORSAllowedOrigins: c.CORSAllowedOrigins,
	})

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *App) Handler() http.Handler {
	return app.handler
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := httpserver.NewHTTPServer(app.config.HTTPAddr, app.handler, app.logger, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
		cancelFunc()
		return err
	}
	return nil
}

// Run migrates the schema and serves until ctx is cancelled or a signal
// arrives. The database is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.closeDB()

	app.logger.Info(ctx, "Starting app...", "storage", app.storageName())

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err)
		return err
	}

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return runErr
}

func (app *App) storageName() string {
	if app.db == nil {
		return "memory"
	}
	return "postgres"
}

func (app *App) closeDB() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close failed", "error", err)
	}
}
