// Package history keeps the questions asked in this session, most recent
// first. The list lives in memory only; SyncHistory in the services package
// refills it from the backend.
package history

import (
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
	"github.com/google/uuid"
)

// IDPrefix starts every identifier assigned by Add.
const IDPrefix = "doubt_"

// Stats summarizes the list the way the history view shows it.
type Stats struct {
	Total    int
	Text     int
	Image    int
	Answered int
}

type Option func(*Store)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the default "doubt_<uuid>" generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Store is safe for concurrent use. Records are returned by value so callers
// cannot mutate the list.
type Store struct {
	mu      sync.RWMutex
	records []models.Doubt

	now   func() time.Time
	newID func() string
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: func() string { return IDPrefix + uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Add assigns a fresh id and the current time, marks the record answered and
// prepends it.
func (s *Store) Add(d models.Doubt) models.Doubt {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = s.uniqueID()
	d.CreatedAt = s.now()
	d.Status = models.StatusAnswered
	if d.Type == "" {
		d.Type = models.QuestionTypeText
		if d.ImageData != "" {
			d.Type = models.QuestionTypeImage
		}
	}

	s.records = append([]models.Doubt{d}, s.records...)
	return d
}

// Put stores a record that already carries a backend id, replacing any record
// with the same id and moving it to the front. Like Add it marks the record
// answered. Records without an id go through Add.
func (s *Store) Put(d models.Doubt) models.Doubt {
	if d.ID == "" {
		return s.Add(d)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if d.CreatedAt.IsZero() {
		d.CreatedAt = s.now()
	}
	d.Status = models.StatusAnswered
	if i := s.indexOf(d.ID); i >= 0 {
		s.records = append(s.records[:i:i], s.records[i+1:]...)
	}
	s.records = append([]models.Doubt{d}, s.records...)
	return d
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *Store) GetByID(id string) (models.Doubt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	return models.Doubt{}, false
}

// Delete removes the record with id. It reports whether a record was removed;
// an unknown id is a no-op.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.records = append(s.records[:i:i], s.records[i+1:]...)
	return true
}

func (s *Store) List() []models.Doubt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Doubt(nil), s.records...)
}

// Filter returns the records of type t; an empty t returns all.
func (s *Store) Filter(t models.QuestionType) []models.Doubt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Doubt, 0, len(s.records))
	for _, d := range s.records {
		if t == "" || d.Type == t {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Total: len(s.records)}
	for _, d := range s.records {
		switch d.Type {
		case models.QuestionTypeImage:
			st.Image++
		default:
			st.Text++
		}
		if d.Status == models.StatusAnswered {
			st.Answered++
		}
	}
	return st
}

// Replace swaps the whole list for records fetched from the backend, keeping
// their ids and ordering them most recent first. Later duplicates of an id
// are dropped.
func (s *Store) Replace(records []models.Doubt) {
	seen := make(map[string]struct{}, len(records))
	list := make([]models.Doubt, 0, len(records))
	for _, d := range records {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		list = append(list, d)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	s.mu.Lock()
	s.records = list
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}
