package api

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
)

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message,omitempty"`
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type,omitempty"`
}

func (r *AuthResponse) Validate() error {
	if !r.Success {
		msg := r.Message
		if msg == "" {
			msg = "authentication was not successful"
		}
		return fmt.Errorf("%w: %s", models.ErrInvalidPayload, msg)
	}
	if strings.TrimSpace(r.AccessToken) == "" {
		return fmt.Errorf("%w: access token is empty", models.ErrInvalidPayload)
	}
	return r.User.Validate()
}

func (r *AuthResponse) rejected() (string, bool) {
	return r.Message, !r.Success
}

// Ack is the plain acknowledgement returned by logout and delete.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (a *Ack) Validate() error { return nil }

// ImageUpload is the file part of an image question.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type textQuestionRequest struct {
	Question string         `json:"question"`
	Subject  models.Subject `json:"subject"`
}

type chatSendRequest struct {
	Message string  `json:"message"`
	DoubtID *string `json:"doubt_id"`
}

type validator interface {
	Validate() error
}

// rejection is implemented by bodies that can report a failure inside a 2xx
// response.
type rejection interface {
	rejected() (msg string, failed bool)
}

type doubtList []models.Doubt

func (l doubtList) Validate() error {
	for i := range l {
		if err := l[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

type chatList []models.ChatMessage

func (l chatList) Validate() error {
	for i := range l {
		if err := l[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
