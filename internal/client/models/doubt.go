package models

import (
	"fmt"
	"strings"
	"time"
)

type QuestionType string

const (
	QuestionTypeText  QuestionType = "text"
	QuestionTypeImage QuestionType = "image"
)

// ParseQuestionType accepts "text" or "image"; "" and "all" mean no filter and
// are returned as "".
func ParseQuestionType(s string) (QuestionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "", nil
	case string(QuestionTypeText):
		return QuestionTypeText, nil
	case string(QuestionTypeImage):
		return QuestionTypeImage, nil
	}
	return "", fmt.Errorf("%w: unknown question type %q", ErrValidation, s)
}

type Status string

// StatusAnswered is the only status this client assigns.
const StatusAnswered Status = "answered"

// Answer is the generated solution for a question.
type Answer struct {
	Solution    string    `json:"solution"`
	Steps       []string  `json:"steps"`
	GeneratedAt time.Time `json:"generated_at,omitzero"`
}

// OCRData is attached by the backend to image questions.
type OCRData struct {
	ExtractedText     string `json:"extracted_text"`
	PreprocessingUsed string `json:"preprocessing_used,omitempty"`
}

// Doubt is a submitted question together with its answer.
type Doubt struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id,omitempty"`
	Question  string       `json:"question"`
	Subject   Subject      `json:"subject"`
	Type      QuestionType `json:"question_type"`
	ImageData string       `json:"image_data,omitempty"`
	Answer    *Answer      `json:"answer,omitempty"`
	OCR       *OCRData     `json:"ocr_data,omitempty"`
	Status    Status       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at,omitzero"`
}

// HasImage reports whether the record was asked with an image.
func (d *Doubt) HasImage() bool {
	return d.ImageData != "" || d.Type == QuestionTypeImage
}

// Validate checks a record decoded from the backend.
func (d *Doubt) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: question id is empty", ErrInvalidPayload)
	}
	if strings.TrimSpace(d.Question) == "" && !d.HasImage() {
		return fmt.Errorf("%w: question %s has neither text nor image", ErrInvalidPayload, d.ID)
	}
	if d.Subject == "" {
		return fmt.Errorf("%w: question %s has no subject", ErrInvalidPayload, d.ID)
	}
	if d.Type == "" {
		d.Type = QuestionTypeText
		if d.ImageData != "" {
			d.Type = QuestionTypeImage
		}
	}
	return nil
}

// ValidateQuestion checks user input for a new question before anything is
// sent: a question needs non-blank text or an image, and a known subject.
func ValidateQuestion(text string, hasImage bool, subject string) (Subject, error) {
	if strings.TrimSpace(text) == "" && !hasImage {
		return "", fmt.Errorf("%w: enter a question or upload an image", ErrValidation)
	}
	return ParseSubject(subject)
}
