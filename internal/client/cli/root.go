package cli

import (
	"context"
)

// Root restores the persisted session, starts the connectivity watcher and
// serves the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("Welcome to doubtsolver (type 'help' for commands)")

	a.session.Restore(ctx)
	if a.checkOnline(ctx) && a.isLoggedIn() {
		if err := a.session.Refresh(ctx); err != nil {
			a.logger.Warn(ctx, "refresh restored session", "error", err)
		}
	}
	a.syncHistory(ctx)
	if u := a.session.User(); u != nil {
		a.printf("Welcome back, %s\n", u.Name)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
