// Package server initializes and runs the auth server: it opens the store,
// optionally provisions the schema, handles graceful shutdown and starts the
// HTTP JSON API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	httpserver "github.com/dmitrijs2005/gophauth/internal/server/http"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/dmitrijs2005/gophauth/internal/server/storage"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	store       *storage.Store
	userService *services.UserService
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	return newApp(c, logger)
}

func newApp(c *config.Config, logger logging.Logger) (*App, error) {
	store, err := storage.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	driver := store.Driver()
	if !store.Configured() {
		// handlers answer 500 before touching the manager
		driver = storage.DriverPostgres
		logger.Warn(context.Background(), "no database configured", "env", common.DatabaseURLEnv)
	}

	rm, err := repomanager.ForDriver(driver)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(store, rm,
		auth.NewPasswordHasher(c.BcryptCost),
		auth.NewTokenIssuer(c.SecretKey, c.TokenValidityDuration),
		logger)

	return &App{config: c, logger: logger, store: store, userService: us}, nil
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
	s := httpserver.NewServer(app.config.EndpointAddrHTTP, app.userService, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// migrate provisions the schema at startup when requested. A failure is
// logged and left to the lazy path.
func (app *App) migrate(ctx context.Context) {
	if !app.config.RunMigrations || !app.store.Configured() {
		return
	}
	if _, err := app.userService.ProvisionSchema(ctx); err != nil {
		app.logger.Error(ctx, "startup migrations failed", "error", err)
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)
	app.migrate(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "closing store", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
