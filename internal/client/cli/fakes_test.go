package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/doubtsolver/internal/client/api"
	"github.com/dmitrijs2005/doubtsolver/internal/client/config"
	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
)

// fakeAPI is an in-memory api.Client.
type fakeAPI struct {
	mu sync.Mutex

	user      models.User
	password  string
	healthErr error
	askErr    error

	doubts  []models.Doubt
	nextID  int
	chat    []models.ChatMessage
	logouts int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		user:     models.User{ID: "u1", Email: "a@b.com", Name: "Ann"},
		password: "pw",
	}
}

func (f *fakeAPI) auth(email, password string) (*api.AuthResponse, error) {
	if email != f.user.Email || password != f.password {
		return nil, api.NewError(401, "Invalid credentials")
	}
	u := f.user
	return &api.AuthResponse{Success: true, User: &u, AccessToken: "T"}, nil
}

func (f *fakeAPI) Register(_ context.Context, name, email, password string) (*api.AuthResponse, error) {
	f.user = models.User{ID: "u2", Email: email, Name: name}
	f.password = password
	return f.auth(email, password)
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*api.AuthResponse, error) {
	return f.auth(email, password)
}

func (f *fakeAPI) CurrentUser(_ context.Context, token string) (*models.User, error) {
	if token != "T" {
		return nil, api.NewError(401, "Could not validate credentials")
	}
	u := f.user
	return &u, nil
}

func (f *fakeAPI) Logout(context.Context, string) (*api.Ack, error) {
	f.logouts++
	return &api.Ack{Success: true}, nil
}

func (f *fakeAPI) answer(question string, subject models.Subject, typ models.QuestionType) *models.Doubt {
	f.nextID++
	d := models.Doubt{
		ID:        fmt.Sprintf("q%d", f.nextID),
		UserID:    f.user.ID,
		Question:  question,
		Subject:   subject,
		Type:      typ,
		Answer:    &models.Answer{Solution: "Solution for " + question, Steps: []string{"Understand", "Solve"}},
		Status:    models.StatusAnswered,
		CreatedAt: time.Date(2024, 12, 20, 10, f.nextID, 0, 0, time.UTC),
	}
	f.doubts = append(f.doubts, d)
	return &d
}

func (f *fakeAPI) SubmitTextQuestion(_ context.Context, _ string, question string, subject models.Subject) (*models.Doubt, error) {
	if f.askErr != nil {
		return nil, f.askErr
	}
	return f.answer(question, subject, models.QuestionTypeText), nil
}

func (f *fakeAPI) SubmitImageQuestion(_ context.Context, _ string, _ api.ImageUpload, question string, subject models.Subject) (*models.Doubt, error) {
	if f.askErr != nil {
		return nil, f.askErr
	}
	return f.answer(question, subject, models.QuestionTypeImage), nil
}

func (f *fakeAPI) UserQuestions(context.Context, string, string, int, int) ([]models.Doubt, error) {
	return append([]models.Doubt(nil), f.doubts...), nil
}

func (f *fakeAPI) DeleteDoubt(_ context.Context, _ string, id string) (*api.Ack, error) {
	for i, d := range f.doubts {
		if d.ID == id {
			f.doubts = append(f.doubts[:i], f.doubts[i+1:]...)
			return &api.Ack{Success: true}, nil
		}
	}
	return nil, api.NewError(404, "Doubt not found")
}

func (f *fakeAPI) SendChatMessage(_ context.Context, _ string, message, _ string) (*models.ChatMessage, error) {
	m := models.ChatMessage{ID: "m1", Message: message, SenderType: models.SenderUser}
	f.chat = append(f.chat, m, models.ChatMessage{ID: "m2", Message: "A tutor will respond shortly.", SenderType: models.SenderTutor})
	return &m, nil
}

func (f *fakeAPI) ChatMessages(context.Context, string, string, int) ([]models.ChatMessage, error) {
	return f.chat, nil
}

func (f *fakeAPI) Health(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.healthErr
}

func (f *fakeAPI) setHealth(err error) {
	f.mu.Lock()
	f.healthErr = err
	f.mu.Unlock()
}

// memStorage is an in-memory session.Storage.
type memStorage struct {
	user, token []byte
}

func (m *memStorage) Load(context.Context) ([]byte, []byte, error) { return m.user, m.token, nil }
func (m *memStorage) Save(_ context.Context, user, token []byte) error {
	m.user, m.token = user, token
	return nil
}
func (m *memStorage) Clear(context.Context) error {
	m.user, m.token = nil, nil
	return nil
}

func newTestApp(t *testing.T, fa *fakeAPI, input string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	cfg := &config.Config{OnlineCheckInterval: 10 * time.Millisecond}
	var out bytes.Buffer
	a := newApp(cfg, nil, fa, &memStorage{}, strings.NewReader(input), &out)
	a.now = func() time.Time { return time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC) }
	return a, &out
}
