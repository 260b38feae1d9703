package models

import "time"

const (
	QuestionTypeText  = "text"
	QuestionTypeImage = "image"

	StatusProcessing = "processing"
	StatusAnswered   = "answered"
	StatusFailed     = "failed"
)

type Answer struct {
	Solution    string    `json:"solution"`
	Steps       []string  `json:"steps"`
	GeneratedAt time.Time `json:"generated_at"`
}

type OCRData struct {
	ExtractedText     string `json:"extracted_text"`
	PreprocessingUsed string `json:"preprocessing_used,omitempty"`
}

type Doubt struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Question     string    `json:"question"`
	Subject      string    `json:"subject"`
	QuestionType string    `json:"question_type"`
	ImageData    string    `json:"image_data,omitempty"`
	Answer       *Answer   `json:"answer,omitempty"`
	OCRData      *OCRData  `json:"ocr_data,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
