// Package server initializes and runs the session server: it opens the
// database, applies migrations, serves the REST API, purges expired refresh
// tokens periodically and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/crmauth/internal/logging"
	"github.com/dmitrijs2005/crmauth/internal/server/config"
	"github.com/dmitrijs2005/crmauth/internal/server/httpapi"
	"github.com/dmitrijs2005/crmauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/crmauth/internal/server/services"
)

// purger is the part of the user service the cleanup loop needs.
type purger interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

// runner is a long-running component stopped by cancelling its context.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService purger
	httpServer  runner
}

// openDB is a seam for tests.
var openDB = repomanager.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	return newApp(ctx, c, logger, repomanager.NewPostgresRepositoryManager())
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, rm repomanager.RepositoryManager) (*App, error) {
	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "JWT_SECRET is not set; access tokens are signed with the built-in default key")
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, rm, c, logger)
	hs := httpapi.NewServer(c, logger, us)

	return &App{config: c, logger: logger, db: db, userService: us, httpServer: hs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startPurgeLoop deletes expired refresh tokens every CleanupInterval until
// ctx is done. A non-positive interval disables it.
func (app *App) startPurgeLoop(ctx context.Context) {
	if app.config.CleanupInterval <= 0 {
		return
	}

	ticker := time.NewTicker(app.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.userService.PurgeExpiredTokens(ctx)
			if err != nil {
				app.logger.Error(ctx, "Purging expired refresh tokens failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "Purged expired refresh tokens", "count", n)
			}
		}
	}
}

// Run blocks until a termination signal arrives or the HTTP server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startPurgeLoop(ctx)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "Closing database failed", "error", err)
		}
	}
	app.logger.Info(context.Background(), "App stopped")
}
