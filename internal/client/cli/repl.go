package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Subjects(ctx context.Context, args []string) error
	Ask(ctx context.Context, args []string) error
	AskImage(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Sync(ctx context.Context, args []string) error
	Chat(ctx context.Context, args []string) error
	Messages(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: register, login, subjects, exit"
	helpLoggedIn  = "Available commands: ask [subject], askimage <path> [subject], (h)istory [all|text|image], stats, show <id>, delete <id>, sync [limit], chat [doubt_id], messages [doubt_id] [limit], export <file.pdf>, subjects, whoami, logout, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// Commands that need a session are refused while logged out. Errors returned
// by handlers are not printed here; handlers report their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "doubtsolver %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return
		}

		parts := strings.Fields(line)
		if len(parts) > 0 {
			if quit := dispatch(ctx, a, parts[0], parts[1:], w); quit {
				return
			}
		}
		if err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, w io.Writer) (quit bool) {
	anonymous := map[string]func(context.Context, []string) error{
		"register": a.Register,
		"login":    a.Login,
		"subjects": a.Subjects,
	}
	authed := map[string]func(context.Context, []string) error{
		"logout":   a.Logout,
		"whoami":   a.WhoAmI,
		"ask":      a.Ask,
		"askimage": a.AskImage,
		"h":        a.History,
		"history":  a.History,
		"stats":    a.Stats,
		"show":     a.Show,
		"delete":   a.Delete,
		"sync":     a.Sync,
		"chat":     a.Chat,
		"messages": a.Messages,
		"export":   a.Export,
	}

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(w, helpLoggedIn)
		} else {
			fmt.Fprintln(w, helpAnonymous)
		}
		return false
	case "exit", "quit":
		fmt.Fprintln(w, "Bye!")
		return true
	}

	if fn, ok := anonymous[cmd]; ok {
		_ = fn(ctx, args)
		return false
	}
	if fn, ok := authed[cmd]; ok {
		if !a.isLoggedIn() {
			fmt.Fprintln(w, "Please login first")
			return false
		}
		_ = fn(ctx, args)
		return false
	}

	fmt.Fprintln(w, "Unknown command:", cmd)
	return false
}
