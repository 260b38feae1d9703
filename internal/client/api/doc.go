// Package api is the REST client for the doubtsolver backend.
//
// # Overview
//
// Client is the transport-agnostic contract: one method per remote capability
// (register, login, current user, logout, text and image questions, question
// history, delete, tutor chat). HTTPClient implements it over net/http against
// "<origin>/api".
//
// # Error Handling
//
// Every non-2xx response and every transport failure is returned as *Error,
// which carries exactly one human-readable message: the server's "detail" (or
// "message") when present, FallbackMessage otherwise. *Error unwraps to one of
// the sentinels ErrUnauthorized, ErrNotFound, ErrUnavailable or
// ErrRequestFailed so callers can branch with errors.Is.
//
// Each call is a single attempt; there is no retry and no client-side timeout
// beyond what the caller's context imposes.
package api
