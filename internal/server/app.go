// Package server initializes and runs the calcapi server.
// It opens PostgreSQL, applies migrations, wires the auth and arithmetic
// services, serves HTTP and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/calcapi/internal/dbx"
	"github.com/dmitrijs2005/calcapi/internal/logging"
	"github.com/dmitrijs2005/calcapi/internal/server/auth"
	"github.com/dmitrijs2005/calcapi/internal/server/config"
	"github.com/dmitrijs2005/calcapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/calcapi/internal/server/services"

	hs "github.com/dmitrijs2005/calcapi/internal/server/http"
)

type App struct {
	config           *config.Config
	logger           logging.Logger
	db               *sql.DB
	userService      *services.UserService
	operationService *services.OperationService
}

// openDB is replaced in tests.
var openDB = dbx.OpenPostgres

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewForEnv(c.Env, os.Stdout)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	app, err := newAppWithDeps(c, logger, db, rm)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

func newAppWithDeps(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {

	hasher, err := auth.NewPasswordHasher(c.BcryptCost, c.HashConcurrency, logger)
	if err != nil {
		return nil, fmt.Errorf("password hasher init error: %w", err)
	}

	codec, err := auth.NewTokenCodec([]byte(c.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("token codec init error: %w", err)
	}

	us := services.NewUserService(db, rm, hasher, codec, c, logger)
	ops := services.NewOperationService(db, rm, logger)

	return &App{config: c, logger: logger, db: db, userService: us, operationService: ops}, nil
}

// initSignalHandler cancels on SIGINT, SIGTERM or SIGQUIT. The handler stops
// listening once ctx is done; the returned channel closes when it has exited.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) <-chan struct{} {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "Received signal, shutting down", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
	return done
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := hs.NewHTTPServer(app.config.EndpointAddr, app.logger,
		app.userService, app.userService.Resolver(), app.operationService)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "env", app.config.Env)

	signalDone := app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	cancelFunc()
	<-signalDone

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
}
