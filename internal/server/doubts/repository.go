package doubts

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/doubtsolver/internal/common"
	"github.com/dmitrijs2005/doubtsolver/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, d *models.Doubt) error
	Update(ctx context.Context, d *models.Doubt) error
	Get(ctx context.Context, userID, id string) (*models.Doubt, error)
	ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.Doubt, error)
	Delete(ctx context.Context, userID, id string) error
}

// MemoryRepository keeps records in process memory. Records of other users
// are reported as common.ErrNotFound.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]models.Doubt
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.Doubt)}
}

func (r *MemoryRepository) Create(ctx context.Context, d *models.Doubt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[d.ID]; ok {
		return common.ErrAlreadyExists
	}
	r.byID[d.ID] = *d
	return nil
}

func (r *MemoryRepository) Update(ctx context.Context, d *models.Doubt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[d.ID]
	if !ok || cur.UserID != d.UserID {
		return common.ErrNotFound
	}
	r.byID[d.ID] = *d
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, userID, id string) (*models.Doubt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok || d.UserID != userID {
		return nil, common.ErrNotFound
	}
	return &d, nil
}

// ListByUser returns the user's records newest first.
func (r *MemoryRepository) ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.Doubt, error) {
	r.mu.RLock()
	out := make([]models.Doubt, 0)
	for _, d := range r.byID {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if skip >= len(out) {
		return []models.Doubt{}, nil
	}
	out = out[skip:]
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok || d.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
