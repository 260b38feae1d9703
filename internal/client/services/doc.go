// Package services contains the application services behind the REPL:
// asking questions, keeping the local history in step with the backend and
// the tutor chat. Services read credentials from the session and never touch
// storage directly.
package services
