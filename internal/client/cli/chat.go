package cli

import (
	"context"
	"strconv"
)

// Chat sends one message to the tutor: "chat [doubt_id]".
func (a *App) Chat(ctx context.Context, args []string) error {
	var doubtID string
	if len(args) > 0 {
		doubtID = args[0]
	}
	msg, err := getSimpleText(a.reader, "Message to tutor", a.out)
	if err != nil {
		return err
	}

	reply, err := a.chat.Send(ctx, msg, doubtID)
	if err != nil {
		return a.report(err)
	}
	printMessage(a.out, reply)
	return nil
}

// Messages prints the chat: "messages [doubt_id] [limit]".
func (a *App) Messages(ctx context.Context, args []string) error {
	var (
		doubtID string
		limit   int
	)
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			limit = n
			continue
		}
		doubtID = arg
	}

	msgs, err := a.chat.Messages(ctx, doubtID, limit)
	if err != nil {
		return a.report(err)
	}
	if len(msgs) == 0 {
		a.println("No messages")
		return nil
	}
	for _, m := range msgs {
		printMessage(a.out, m)
	}
	return nil
}
