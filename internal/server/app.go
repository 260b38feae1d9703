// Package server wires the development backend: in-memory users, questions
// and chat behind the gin HTTP API, with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/doubtsolver/internal/logging"
	"github.com/dmitrijs2005/doubtsolver/internal/server/chat"
	"github.com/dmitrijs2005/doubtsolver/internal/server/config"
	"github.com/dmitrijs2005/doubtsolver/internal/server/doubts"
	"github.com/dmitrijs2005/doubtsolver/internal/server/httpapi"
	"github.com/dmitrijs2005/doubtsolver/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	http   *httpapi.Server
}

func NewApp(cfg *config.Config, logger logging.Logger) *App {
	us := users.NewService(users.NewMemoryRepository(), cfg.SecretKey, cfg.TokenTTL)
	ds := doubts.NewService(doubts.NewMemoryRepository(), doubts.NewTemplateAnswerer(), logger)
	cs := chat.NewService(chat.NewMemoryRepository())

	return &App{
		config: cfg,
		logger: logger,
		http:   httpapi.NewServer(cfg.ListenAddr, logger, us, ds, cs),
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a termination signal arrives or the
// listener fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "address", app.config.ListenAddr)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
