package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/doubtsolver/internal/client/api"
	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
	"github.com/dmitrijs2005/doubtsolver/internal/client/session"
)

type fakeCreds struct {
	userID, token string
}

func (f fakeCreds) Credentials() (string, string, error) {
	if f.token == "" {
		return "", "", session.ErrNotAuthenticated
	}
	return f.userID, f.token, nil
}

type fakeClient struct {
	calls int

	textReply  *models.Doubt
	imageReply *models.Doubt
	list       []models.Doubt
	err        error
	deleteErr  error

	lastToken    string
	lastQuestion string
	lastSubject  models.Subject
	lastUpload   api.ImageUpload
	lastSkip     int
	lastLimit    int
	lastDoubtID  string
	lastMessage  string
}

func (f *fakeClient) SubmitTextQuestion(ctx context.Context, token, question string, subject models.Subject) (*models.Doubt, error) {
	f.calls++
	f.lastToken, f.lastQuestion, f.lastSubject = token, question, subject
	if f.err != nil {
		return nil, f.err
	}
	return f.textReply, nil
}

func (f *fakeClient) SubmitImageQuestion(ctx context.Context, token string, image api.ImageUpload, question string, subject models.Subject) (*models.Doubt, error) {
	f.calls++
	f.lastToken, f.lastUpload, f.lastQuestion, f.lastSubject = token, image, question, subject
	if f.err != nil {
		return nil, f.err
	}
	return f.imageReply, nil
}

func (f *fakeClient) UserQuestions(ctx context.Context, token, userID string, skip, limit int) ([]models.Doubt, error) {
	f.calls++
	f.lastToken, f.lastSkip, f.lastLimit = token, skip, limit
	return f.list, f.err
}

func (f *fakeClient) DeleteDoubt(ctx context.Context, token, doubtID string) (*api.Ack, error) {
	f.calls++
	f.lastDoubtID = doubtID
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &api.Ack{Success: true}, nil
}

func (f *fakeClient) SendChatMessage(ctx context.Context, token, message, doubtID string) (*models.ChatMessage, error) {
	f.calls++
	f.lastToken, f.lastMessage, f.lastDoubtID = token, message, doubtID
	if f.err != nil {
		return nil, f.err
	}
	return &models.ChatMessage{ID: "m1", Message: message, SenderType: models.SenderUser}, nil
}

func (f *fakeClient) ChatMessages(ctx context.Context, token, doubtID string, limit int) ([]models.ChatMessage, error) {
	f.calls++
	f.lastDoubtID, f.lastLimit = doubtID, limit
	if f.err != nil {
		return nil, f.err
	}
	return []models.ChatMessage{{ID: "m1", SenderType: models.SenderTutor}}, nil
}

var errBoom = errors.New("boom")
