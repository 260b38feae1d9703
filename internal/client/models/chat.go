package models

import (
	"fmt"
	"strings"
	"time"
)

type SenderType string

const (
	SenderUser   SenderType = "user"
	SenderTutor  SenderType = "tutor"
	SenderSystem SenderType = "system"
)

// ChatMessage is one message of the tutor chat.
type ChatMessage struct {
	ID         string     `json:"id"`
	Message    string     `json:"message"`
	SenderType SenderType `json:"sender_type"`
	Timestamp  time.Time  `json:"timestamp"`
	DoubtID    *string    `json:"doubt_id,omitempty"`
}

func (m *ChatMessage) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("%w: chat message id is empty", ErrInvalidPayload)
	}
	switch m.SenderType {
	case SenderUser, SenderTutor, SenderSystem:
	default:
		return fmt.Errorf("%w: unknown sender type %q", ErrInvalidPayload, m.SenderType)
	}
	return nil
}
