// Package chat keeps the tutor chat of the development backend. Every user
// message gets the canned tutor reply.
package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/doubtsolver/internal/common"
	"github.com/dmitrijs2005/doubtsolver/internal/server/models"
	"github.com/google/uuid"
)

var ErrEmptyMessage = errors.New("message is required")

type Repository interface {
	Append(ctx context.Context, msgs ...models.ChatMessage) error
	// List returns the newest limit messages of userID, optionally
	// restricted to doubtID, in chronological order.
	List(ctx context.Context, userID, doubtID string, limit int) ([]models.ChatMessage, error)
}

type MemoryRepository struct {
	mu   sync.RWMutex
	msgs []models.ChatMessage
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Append(ctx context.Context, msgs ...models.ChatMessage) error {
	r.mu.Lock()
	r.msgs = append(r.msgs, msgs...)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) List(ctx context.Context, userID, doubtID string, limit int) ([]models.ChatMessage, error) {
	r.mu.RLock()
	out := make([]models.ChatMessage, 0)
	for _, m := range r.msgs {
		if m.UserID != userID {
			continue
		}
		if doubtID != "" && (m.DoubtID == nil || *m.DoubtID != doubtID) {
			continue
		}
		out = append(out, m)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	if limit >= 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Send stores the user's message followed by the tutor auto reply and
// returns the user's message.
func (s *Service) Send(ctx context.Context, userID, message string, doubtID *string) (*models.ChatMessage, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	if doubtID != nil && *doubtID == "" {
		doubtID = nil
	}

	now := s.now().UTC()
	sent := models.ChatMessage{
		ID:         uuid.NewString(),
		UserID:     userID,
		DoubtID:    doubtID,
		Message:    message,
		SenderType: models.SenderUser,
		Timestamp:  now,
	}
	reply := models.ChatMessage{
		ID:         uuid.NewString(),
		UserID:     userID,
		DoubtID:    doubtID,
		Message:    common.ChatAutoReply,
		SenderType: models.SenderTutor,
		Timestamp:  now.Add(time.Millisecond),
	}

	if err := s.repo.Append(ctx, sent, reply); err != nil {
		return nil, fmt.Errorf("error storing chat message: %w", err)
	}
	return &sent, nil
}

func (s *Service) Messages(ctx context.Context, userID, doubtID string, limit int) ([]models.ChatMessage, error) {
	if limit < 0 {
		limit = 0
	}
	return s.repo.List(ctx, userID, doubtID, limit)
}
