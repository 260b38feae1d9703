package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
	"github.com/dmitrijs2005/doubtsolver/internal/logging"
)

// DefaultChatLimit is the page size used when none is given.
const DefaultChatLimit = 50

type ChatClient interface {
	SendChatMessage(ctx context.Context, token, message, doubtID string) (*models.ChatMessage, error)
	ChatMessages(ctx context.Context, token, doubtID string, limit int) ([]models.ChatMessage, error)
}

type ChatService interface {
	Send(ctx context.Context, message, doubtID string) (models.ChatMessage, error)
	Messages(ctx context.Context, doubtID string, limit int) ([]models.ChatMessage, error)
}

type chatService struct {
	client ChatClient
	creds  Credentials
	logger logging.Logger
}

func NewChatService(client ChatClient, creds Credentials, logger logging.Logger) ChatService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &chatService{client: client, creds: creds, logger: logger.With("component", "chat")}
}

func (s *chatService) Send(ctx context.Context, message, doubtID string) (models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.ChatMessage{}, fmt.Errorf("%w: %w", models.ErrValidation, ErrEmptyMessage)
	}
	_, token, err := s.creds.Credentials()
	if err != nil {
		return models.ChatMessage{}, err
	}

	reply, err := s.client.SendChatMessage(ctx, token, message, strings.TrimSpace(doubtID))
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("send chat message: %w", err)
	}
	return *reply, nil
}

func (s *chatService) Messages(ctx context.Context, doubtID string, limit int) ([]models.ChatMessage, error) {
	_, token, err := s.creds.Credentials()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultChatLimit
	}

	msgs, err := s.client.ChatMessages(ctx, token, strings.TrimSpace(doubtID), limit)
	if err != nil {
		return nil, fmt.Errorf("fetch chat messages: %w", err)
	}
	return msgs, nil
}
