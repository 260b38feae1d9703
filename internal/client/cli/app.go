package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/doubtsolver/internal/client/api"
	"github.com/dmitrijs2005/doubtsolver/internal/client/config"
	"github.com/dmitrijs2005/doubtsolver/internal/client/history"
	"github.com/dmitrijs2005/doubtsolver/internal/client/repositories"
	"github.com/dmitrijs2005/doubtsolver/internal/client/services"
	"github.com/dmitrijs2005/doubtsolver/internal/client/session"
	"github.com/dmitrijs2005/doubtsolver/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// healthTimeout caps a single connectivity probe.
const healthTimeout = 3 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	out    io.Writer
	reader *bufio.Reader
	now    func() time.Time

	repos   *repositories.Repositories
	api     api.Client
	session *session.Store
	history *history.Store
	doubts  services.DoubtService
	chat    services.ChatService

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp wires the client against the configured backend and state database.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := repositories.InitDatabase(ctx, c.StateDB)
	if err != nil {
		return nil, fmt.Errorf("init state database: %w", err)
	}

	apiClient, err := api.NewHTTPClient(c.BackendURL, &http.Client{}, logger)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	a := newApp(c, logger, apiClient, session.NewSQLiteStorage(repos.DB), os.Stdin, os.Stdout)
	a.repos = repos
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, client api.Client, storage session.Storage, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	sess := session.NewStore(client, storage, logger)
	hist := history.NewStore()

	return &App{
		config:  c,
		logger:  logger,
		out:     out,
		reader:  bufio.NewReader(in),
		now:     time.Now,
		api:     client,
		session: sess,
		history: hist,
		doubts:  services.NewDoubtService(client, sess, hist, logger),
		chat:    services.NewChatService(client, sess, logger),
	}
}

// Run restores the session, serves the REPL until the user exits and then
// releases resources.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	a.Root(ctx)
	return nil
}

func (a *App) Close() error {
	if a.repos == nil {
		return nil
	}
	return a.repos.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

// setMode records the connectivity mode and reports whether it changed.
func (a *App) setMode(ctx context.Context, mode Mode) bool {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", mode)
	}
	return changed
}

func (a *App) checkOnline(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if err := a.api.Health(ctx); err != nil {
		a.setMode(ctx, ModeOffline)
		return false
	}
	a.setMode(ctx, ModeOnline)
	return true
}

// StartOnlineStatusWatcher probes the backend every interval until ctx is
// done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultOnlineCheckInterval
	}
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

func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Email + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report prints err the way the user should see it: the server message for
// remote failures, the error text otherwise.
func (a *App) report(err error) error {
	if err != nil {
		a.println("Error:", api.Message(err))
	}
	return err
}
