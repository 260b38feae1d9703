// Package session owns the client identity: the current user, the bearer
// token and the loading flag. The session is persisted to local storage and
// restored on start.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/doubtsolver/internal/client/api"
	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
	"github.com/dmitrijs2005/doubtsolver/internal/logging"
)

// ErrNotAuthenticated is returned by operations that need an active session.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthClient is the part of api.Client the session depends on.
type AuthClient interface {
	Register(ctx context.Context, name, email, password string) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) (*api.Ack, error)
}

// Result is the outcome of Login and Register. Error holds a message fit for
// display when Success is false.
type Result struct {
	Success bool
	Error   string
}

func failure(msg string) Result {
	return Result{Error: msg}
}

// Store is safe for concurrent use.
type Store struct {
	client  AuthClient
	storage Storage
	logger  logging.Logger

	mu      sync.RWMutex
	user    *models.User
	token   string
	loading bool
}

func NewStore(client AuthClient, storage Storage, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		client:  client,
		storage: storage,
		logger:  logger.With("component", "session"),
	}
}

// Restore loads the persisted session. Missing or unparseable data leaves the
// session empty and clears both storage keys. It never fails.
func (s *Store) Restore(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	rawUser, rawToken, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "load session", "error", err)
		s.reset(ctx)
		return
	}
	if len(rawUser) == 0 && len(rawToken) == 0 {
		return
	}

	token := strings.TrimSpace(string(rawToken))
	var user models.User
	if token == "" {
		s.logger.Warn(ctx, "stored session has no token")
		s.reset(ctx)
		return
	}
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.logger.Warn(ctx, "stored user is unparseable", "error", err)
		s.reset(ctx)
		return
	}
	if err := user.Validate(); err != nil {
		s.logger.Warn(ctx, "stored user is invalid", "error", err)
		s.reset(ctx)
		return
	}

	s.mu.Lock()
	s.user, s.token = &user, token
	s.mu.Unlock()
	s.logger.Debug(ctx, "session restored", "user_id", user.ID)
}

func (s *Store) Login(ctx context.Context, email, password string) Result {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return failure("Email and password are required")
	}

	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.logger.Info(ctx, "login failed", "error", err)
		return failure(api.Message(err))
	}
	return s.establish(ctx, resp)
}

func (s *Store) Register(ctx context.Context, name, email, password string) Result {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return failure("Name, email and password are required")
	}

	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		s.logger.Info(ctx, "registration failed", "error", err)
		return failure(api.Message(err))
	}
	return s.establish(ctx, resp)
}

// establish persists first so that a storage failure leaves no partial state.
func (s *Store) establish(ctx context.Context, resp *api.AuthResponse) Result {
	raw, err := json.Marshal(resp.User)
	if err != nil {
		return failure("could not save session")
	}
	if err := s.storage.Save(ctx, raw, []byte(resp.AccessToken)); err != nil {
		s.logger.Error(ctx, "save session", "error", err)
		return failure("could not save session")
	}

	user := *resp.User
	s.mu.Lock()
	s.user, s.token = &user, resp.AccessToken
	s.mu.Unlock()

	s.logger.Info(ctx, "session established", "user_id", user.ID)
	return Result{Success: true}
}

// Logout notifies the backend on a best-effort basis and then always clears
// the session.
func (s *Store) Logout(ctx context.Context) {
	token := s.Token()
	if token != "" {
		if _, err := s.client.Logout(ctx, token); err != nil {
			s.logger.Debug(ctx, "remote logout failed", "error", err)
		}
	}
	s.reset(ctx)
}

// Refresh re-reads the current user from the backend. A rejected token clears
// the session; other failures keep it.
func (s *Store) Refresh(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	user, err := s.client.CurrentUser(ctx, token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.logger.Info(ctx, "token rejected, clearing session")
			s.reset(ctx)
		}
		return err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.Save(ctx, raw, []byte(token)); err != nil {
		return err
	}

	s.mu.Lock()
	if s.token == token {
		s.user = user
	}
	s.mu.Unlock()
	return nil
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Credentials returns the user id and token of the active session.
func (s *Store) Credentials() (userID, token string, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil || s.token == "" {
		return "", "", ErrNotAuthenticated
	}
	return s.user.ID, s.token, nil
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) reset(ctx context.Context) {
	s.mu.Lock()
	s.user, s.token = nil, ""
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Warn(ctx, "clear stored session", "error", err)
	}
}
