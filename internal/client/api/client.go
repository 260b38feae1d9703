package api

import (
	"context"

	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
)

// Client is the contract of the remote doubtsolver backend. Methods taking a
// token send it as a bearer credential.
type Client interface {
	Register(ctx context.Context, name, email, password string) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) (*Ack, error)

	SubmitTextQuestion(ctx context.Context, token, question string, subject models.Subject) (*models.Doubt, error)
	SubmitImageQuestion(ctx context.Context, token string, image ImageUpload, question string, subject models.Subject) (*models.Doubt, error)
	UserQuestions(ctx context.Context, token, userID string, skip, limit int) ([]models.Doubt, error)
	DeleteDoubt(ctx context.Context, token, doubtID string) (*Ack, error)

	SendChatMessage(ctx context.Context, token, message, doubtID string) (*models.ChatMessage, error)
	ChatMessages(ctx context.Context, token, doubtID string, limit int) ([]models.ChatMessage, error)

	// Health probes the API root; used by the connectivity watcher.
	Health(ctx context.Context) error
}
