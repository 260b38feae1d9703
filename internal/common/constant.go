// Package common contains constants shared by the client and the development
// server: header names, durable storage keys and the subject list.
package common

const (
	// AuthorizationHeader carries "Bearer <token>" on authorized requests.
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "

	// APIPrefix is appended to the backend origin for every REST call.
	APIPrefix = "/api"
)

// Durable storage keys for the persisted session.
const (
	UserStorageKey  = "doubtSolverUser"
	TokenStorageKey = "doubtSolverToken"
)

// MaxImageSize is the largest image accepted for an image question.
const MaxImageSize = 5 * 1024 * 1024

// ChatAutoReply is the canned tutor answer for chat messages.
const ChatAutoReply = "Thank you for your message! A tutor will respond shortly."
