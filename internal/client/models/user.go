// Package models defines the client-side data model: users, question records
// ("doubts"), subjects and tutor chat messages, together with the validation
// applied at the decode boundary.
package models

import (
	"fmt"
	"strings"
	"time"
)

// User is the authenticated identity returned by the backend.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the fields the client relies on.
func (u *User) Validate() error {
	if u == nil {
		return fmt.Errorf("%w: user is missing", ErrInvalidPayload)
	}
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("%w: user id is empty", ErrInvalidPayload)
	}
	return nil
}
