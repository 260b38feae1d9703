package cli

import (
	"context"
	"errors"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// historyPageSize is how many questions a sign-in or startup sync pulls.
const historyPageSize = 50

var errAuthFailed = errors.New("authentication failed")

// Register prompts for name, email and password and creates an account. The
// new session is active on success.
func (a *App) Register(ctx context.Context, _ []string) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	res := a.session.Register(ctx, name, email, password)
	if !res.Success {
		a.println("Registration failed:", res.Error)
		return errAuthFailed
	}
	a.printf("Welcome, %s!\n", a.session.User().Name)
	a.resetHistory(ctx)
	return nil
}

func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	res := a.session.Login(ctx, email, password)
	if !res.Success {
		a.println("Login failed:", res.Error)
		return errAuthFailed
	}
	a.printf("Logged in as %s\n", a.session.User().Email)
	a.resetHistory(ctx)
	return nil
}

// resetHistory drops whatever the previous account left in the cache and, when
// the backend is reachable, pulls the current user's questions.
func (a *App) resetHistory(ctx context.Context) {
	a.history.Replace(nil)
	a.syncHistory(ctx)
}

func (a *App) syncHistory(ctx context.Context) {
	if a.Mode() != ModeOnline || !a.isLoggedIn() {
		return
	}
	if _, err := a.doubts.SyncHistory(ctx, 0, historyPageSize); err != nil {
		a.logger.Warn(ctx, "history sync", "error", err)
	}
}

// Logout always ends the local session and drops the cached history.
func (a *App) Logout(ctx context.Context, _ []string) error {
	a.session.Logout(ctx)
	a.history.Replace(nil)
	a.println("Logged out")
	return nil
}

// WhoAmI refreshes the current user from the backend and prints it.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	if err := a.session.Refresh(ctx); err != nil {
		if !a.isLoggedIn() {
			a.println("Not logged in")
			return err
		}
		a.logger.Warn(ctx, "refresh current user", "error", err)
	}
	u := a.session.User()
	if u == nil {
		a.println("Not logged in")
		return nil
	}
	a.printf("%s <%s>\nid: %s\n", u.Name, u.Email, u.ID)
	if !u.CreatedAt.IsZero() {
		a.printf("member since %s\n", u.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
