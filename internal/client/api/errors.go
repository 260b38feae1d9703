package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// FallbackMessage is used when the server gives no message of its own.
const FallbackMessage = "request failed"

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrUnavailable   = errors.New("server unavailable")
	ErrRequestFailed = errors.New("request failed")
)

// Error is the single normalized failure returned by HTTPClient.
type Error struct {
	// StatusCode is 0 for transport failures.
	StatusCode int
	Message    string

	kind  error
	cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// NewError builds the error a response with the given status and message
// would produce.
func NewError(statusCode int, message string) *Error {
	if message == "" {
		message = FallbackMessage
	}
	return &Error{StatusCode: statusCode, Message: message, kind: kindForStatus(statusCode)}
}

// Message extracts the human-readable message from err: the server message for
// *Error, err.Error() otherwise.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func kindForStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return ErrRequestFailed
	}
}

func newStatusError(code int, body []byte) *Error {
	msg := serverMessage(body)
	if msg == "" {
		msg = FallbackMessage
	}
	return &Error{StatusCode: code, Message: msg, kind: kindForStatus(code)}
}

func newTransportError(cause error) *Error {
	return &Error{Message: FallbackMessage, kind: ErrUnavailable, cause: cause}
}

// newRejectedError reports a 2xx body that says success:false, keeping the
// server's message when it gave one.
func newRejectedError(code int, msg string) *Error {
	if strings.TrimSpace(msg) == "" {
		msg = FallbackMessage
	}
	return &Error{StatusCode: code, Message: msg, kind: ErrRequestFailed}
}

func newDecodeError(code int, cause error) *Error {
	return &Error{StatusCode: code, Message: FallbackMessage, kind: ErrRequestFailed, cause: cause}
}

// serverMessage understands {"detail": "..."}, FastAPI validation errors
// {"detail": [{"msg": "..."}]}, {"message": "..."} and {"error": "..."}.
func serverMessage(body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil && strings.TrimSpace(s) != "" {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	if strings.TrimSpace(payload.Message) != "" {
		return payload.Message
	}
	return strings.TrimSpace(payload.Error)
}
