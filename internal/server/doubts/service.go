// Package doubts stores the questions asked against the development backend
// and answers them.
package doubts

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/doubtsolver/internal/common"
	"github.com/dmitrijs2005/doubtsolver/internal/filex"
	"github.com/dmitrijs2005/doubtsolver/internal/logging"
	"github.com/dmitrijs2005/doubtsolver/internal/server/models"
	"github.com/google/uuid"
)

// ErrInvalidInput wraps every rejection of a new question.
var ErrInvalidInput = errors.New("invalid input")

// DefaultImageQuestion replaces an empty question text on image uploads.
const DefaultImageQuestion = "Please solve the problem in this image"

type Image struct {
	ContentType string
	Data        []byte
}

type Service struct {
	repo     Repository
	answerer Answerer
	logger   logging.Logger
	maxImage int
	now      func() time.Time
}

func NewService(repo Repository, answerer Answerer, logger logging.Logger) *Service {
	return &Service{
		repo:     repo,
		answerer: answerer,
		logger:   logger.With("module", "doubts"),
		maxImage: common.MaxImageSize,
		now:      time.Now,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func canonicalSubject(subject string) (string, error) {
	s, ok := common.CanonicalSubject(subject)
	if !ok {
		return "", invalid("unknown subject %q", subject)
	}
	return s, nil
}

// CreateText stores a text question and answers it.
func (s *Service) CreateText(ctx context.Context, userID, question, subject string) (*models.Doubt, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, invalid("question is required")
	}
	subj, err := canonicalSubject(subject)
	if err != nil {
		return nil, err
	}

	return s.create(ctx, &models.Doubt{
		UserID:       userID,
		Question:     question,
		Subject:      subj,
		QuestionType: models.QuestionTypeText,
	})
}

// CreateImage stores an image question and answers it. The image must be at
// most common.MaxImageSize bytes and sniff as image/*.
func (s *Service) CreateImage(ctx context.Context, userID, question, subject string, img Image) (*models.Doubt, error) {
	if len(img.Data) == 0 {
		return nil, invalid("image file is required")
	}
	if len(img.Data) > s.maxImage {
		return nil, invalid("image is larger than %d bytes", s.maxImage)
	}
	if img.ContentType != "" && !strings.HasPrefix(img.ContentType, "image/") {
		return nil, invalid("file must be an image, got %s", img.ContentType)
	}
	ct, err := filex.SniffImage(img.Data)
	if err != nil {
		return nil, invalid("file must be an image")
	}

	subj, err := canonicalSubject(subject)
	if err != nil {
		return nil, err
	}
	question = strings.TrimSpace(question)
	if question == "" {
		question = DefaultImageQuestion
	}

	return s.create(ctx, &models.Doubt{
		UserID:       userID,
		Question:     question,
		Subject:      subj,
		QuestionType: models.QuestionTypeImage,
		ImageData:    "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(img.Data),
		OCRData:      &models.OCRData{PreprocessingUsed: "none"},
	})
}

// create persists d as processing, asks the answerer and stores the outcome.
// A failed answer leaves the record with status failed and is not an error.
func (s *Service) create(ctx context.Context, d *models.Doubt) (*models.Doubt, error) {
	now := s.now().UTC()
	d.ID = uuid.NewString()
	d.Status = models.StatusProcessing
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("error creating doubt: %w", err)
	}

	answer, err := s.answerer.Answer(ctx, d.Question, d.Subject, d.QuestionType == models.QuestionTypeImage)
	if err != nil {
		s.logger.Error(ctx, "answer failed", "doubt_id", d.ID, "error", err)
		d.Status = models.StatusFailed
	} else {
		d.Answer = answer
		d.Status = models.StatusAnswered
	}
	d.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("error updating doubt: %w", err)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, userID string, skip, limit int) ([]models.Doubt, error) {
	if skip < 0 || limit < 0 {
		return nil, invalid("skip and limit must not be negative")
	}
	return s.repo.ListByUser(ctx, userID, skip, limit)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*models.Doubt, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
