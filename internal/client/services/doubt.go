package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/doubtsolver/internal/client/api"
	"github.com/dmitrijs2005/doubtsolver/internal/client/history"
	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
	"github.com/dmitrijs2005/doubtsolver/internal/common"
	"github.com/dmitrijs2005/doubtsolver/internal/filex"
	"github.com/dmitrijs2005/doubtsolver/internal/logging"
)

// DefaultImageQuestion is sent when an image is asked without text.
const DefaultImageQuestion = "Image-based question"

// Credentials yields the user id and token of the active session;
// *session.Store implements it.
type Credentials interface {
	Credentials() (userID, token string, err error)
}

// QuestionClient is the part of api.Client used by DoubtService.
type QuestionClient interface {
	SubmitTextQuestion(ctx context.Context, token, question string, subject models.Subject) (*models.Doubt, error)
	SubmitImageQuestion(ctx context.Context, token string, image api.ImageUpload, question string, subject models.Subject) (*models.Doubt, error)
	UserQuestions(ctx context.Context, token, userID string, skip, limit int) ([]models.Doubt, error)
	DeleteDoubt(ctx context.Context, token, doubtID string) (*api.Ack, error)
}

// DoubtService submits questions and mirrors the results into the history.
//
// Input is validated before any request is made; validation failures wrap
// models.ErrValidation.
type DoubtService interface {
	AskText(ctx context.Context, question, subject string) (models.Doubt, error)
	AskImage(ctx context.Context, path, question, subject string) (models.Doubt, error)
	SyncHistory(ctx context.Context, skip, limit int) (int, error)
	Delete(ctx context.Context, id string) error
}

type doubtService struct {
	client  QuestionClient
	creds   Credentials
	history *history.Store
	logger  logging.Logger

	maxImageSize int64
}

func NewDoubtService(client QuestionClient, creds Credentials, hist *history.Store, logger logging.Logger) DoubtService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &doubtService{
		client:       client,
		creds:        creds,
		history:      hist,
		logger:       logger.With("component", "doubts"),
		maxImageSize: common.MaxImageSize,
	}
}

func (s *doubtService) AskText(ctx context.Context, question, subject string) (models.Doubt, error) {
	subj, err := models.ValidateQuestion(question, false, subject)
	if err != nil {
		return models.Doubt{}, err
	}
	_, token, err := s.creds.Credentials()
	if err != nil {
		return models.Doubt{}, err
	}

	question = strings.TrimSpace(question)
	d, err := s.client.SubmitTextQuestion(ctx, token, question, subj)
	if err != nil {
		return models.Doubt{}, fmt.Errorf("submit question: %w", err)
	}

	stored := s.history.Put(*d)
	s.logger.Info(ctx, "question answered", "id", stored.ID, "subject", subj)
	return stored, nil
}

func (s *doubtService) AskImage(ctx context.Context, path, question, subject string) (models.Doubt, error) {
	if strings.TrimSpace(path) == "" {
		return models.Doubt{}, fmt.Errorf("%w: image path is required", models.ErrValidation)
	}
	subj, err := models.ValidateQuestion(question, true, subject)
	if err != nil {
		return models.Doubt{}, err
	}
	_, token, err := s.creds.Credentials()
	if err != nil {
		return models.Doubt{}, err
	}

	img, err := filex.ReadImage(path, s.maxImageSize)
	if err != nil {
		switch {
		case errors.Is(err, filex.ErrTooLarge):
			return models.Doubt{}, fmt.Errorf("%w: image must be %d MB or smaller", models.ErrValidation, s.maxImageSize>>20)
		case errors.Is(err, filex.ErrNotImage):
			return models.Doubt{}, fmt.Errorf("%w: please select an image file", models.ErrValidation)
		}
		return models.Doubt{}, err
	}

	question = strings.TrimSpace(question)
	if question == "" {
		question = DefaultImageQuestion
	}

	upload := api.ImageUpload{Filename: img.Name, ContentType: img.ContentType, Data: img.Data}
	d, err := s.client.SubmitImageQuestion(ctx, token, upload, question, subj)
	if err != nil {
		return models.Doubt{}, fmt.Errorf("submit image question: %w", err)
	}
	if d.Type == "" {
		d.Type = models.QuestionTypeImage
	}

	stored := s.history.Put(*d)
	s.logger.Info(ctx, "image question answered", "id", stored.ID, "subject", subj, "bytes", len(img.Data))
	return stored, nil
}

// SyncHistory replaces the local history with the user's questions on the
// backend and returns how many were fetched.
func (s *doubtService) SyncHistory(ctx context.Context, skip, limit int) (int, error) {
	userID, token, err := s.creds.Credentials()
	if err != nil {
		return 0, err
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 50
	}

	list, err := s.client.UserQuestions(ctx, token, userID, skip, limit)
	if err != nil {
		return 0, fmt.Errorf("fetch history: %w", err)
	}
	s.history.Replace(list)
	s.logger.Debug(ctx, "history synced", "count", len(list))
	return len(list), nil
}

// Delete removes the question on the backend and locally. A question the
// backend no longer knows is still removed locally.
func (s *doubtService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: question id is required", models.ErrValidation)
	}
	_, token, err := s.creds.Credentials()
	if err != nil {
		return err
	}

	if _, err := s.client.DeleteDoubt(ctx, token, id); err != nil && !errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("delete question: %w", err)
	}
	s.history.Delete(id)
	return nil
}
