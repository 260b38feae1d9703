package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/doubtsolver/internal/client/export"
	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
)

var errUsage = errors.New("usage")

func (a *App) Subjects(_ context.Context, _ []string) error {
	for _, s := range models.Subjects {
		a.println(" -", s)
	}
	return nil
}

// subjectArg takes the subject from args or asks for it. Multi-word subjects
// may be typed without quotes.
func (a *App) subjectArg(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return getSimpleText(a.reader, "Enter subject (type 'subjects' to list them)", a.out)
}

// Ask submits a text question: "ask [subject]".
func (a *App) Ask(ctx context.Context, args []string) error {
	subject, err := a.subjectArg(args)
	if err != nil {
		return err
	}
	question, err := getMultiline(a.reader, "Enter your question", a.out)
	if err != nil {
		return err
	}

	a.println("Solving...")
	d, err := a.doubts.AskText(ctx, question, subject)
	if err != nil {
		return a.report(err)
	}
	printDoubt(a.out, d)
	return nil
}

// AskImage submits an image question: "askimage <path> [subject]".
func (a *App) AskImage(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: askimage <path> [subject]")
		return errUsage
	}
	path := args[0]

	subject, err := a.subjectArg(args[1:])
	if err != nil {
		return err
	}
	question, err := getSimpleText(a.reader, "Add a note about the image (optional)", a.out)
	if err != nil {
		return err
	}

	a.println("Uploading and solving...")
	d, err := a.doubts.AskImage(ctx, path, question, subject)
	if err != nil {
		return a.report(err)
	}
	printDoubt(a.out, d)
	return nil
}

// History lists the questions: "history [all|text|image]".
func (a *App) History(_ context.Context, args []string) error {
	var filter string
	if len(args) > 0 {
		filter = args[0]
	}
	t, err := models.ParseQuestionType(filter)
	if err != nil {
		return a.report(err)
	}

	list := a.history.Filter(t)
	if len(list) == 0 {
		a.println("No questions yet")
		return nil
	}
	for _, d := range list {
		printDoubtLine(a.out, d)
	}
	return nil
}

func (a *App) Stats(_ context.Context, _ []string) error {
	printStats(a.out, a.history.Stats())
	return nil
}

func (a *App) Show(_ context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: show <id>")
		return errUsage
	}
	d, ok := a.history.GetByID(args[0])
	if !ok {
		a.println("Question not found:", args[0])
		return nil
	}
	printDoubt(a.out, d)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: delete <id>")
		return errUsage
	}
	if err := a.doubts.Delete(ctx, args[0]); err != nil {
		return a.report(err)
	}
	a.println("Deleted", args[0])
	return nil
}

// Sync reloads the history from the backend: "sync [limit]".
func (a *App) Sync(ctx context.Context, args []string) error {
	limit := 50
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			a.println("Usage: sync [limit]")
			return errUsage
		}
		limit = n
	}

	n, err := a.doubts.SyncHistory(ctx, 0, limit)
	if err != nil {
		return a.report(err)
	}
	a.printf("Synced %d question(s)\n", n)
	return nil
}

func (a *App) Export(_ context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: export <file.pdf>")
		return errUsage
	}
	owner := ""
	if u := a.session.User(); u != nil {
		owner = u.Name
	}
	if err := export.HistoryPDFFile(args[0], owner, a.history.List(), a.now()); err != nil {
		return a.report(err)
	}
	a.println("Exported to", args[0])
	return nil
}
