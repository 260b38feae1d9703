package models

import "time"

const (
	SenderUser  = "user"
	SenderTutor = "tutor"
)

type ChatMessage struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	DoubtID    *string   `json:"doubt_id"`
	Message    string    `json:"message"`
	SenderType string    `json:"sender_type"`
	Timestamp  time.Time `json:"timestamp"`
}
