package models

import (
	"errors"
	"fmt"
)

var (
	ErrSessionMissing   = errors.New("no active session")
	ErrNetwork          = errors.New("network error")
	ErrDecode           = errors.New("malformed server response")
	ErrInvalidParams    = errors.New("invalid params")
	ErrSessionStore     = errors.New("session storage failed")
	ErrInternal         = errors.New("internal server error")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidOTP       = errors.New("invalid one-time code")
	ErrDocumentNotFound = errors.New("document not found")
)

// APIError is a rejection reported by the backend: a non-2xx status, or a
// 2xx envelope with success set to false. Message holds the server-supplied
// text when the response carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.StatusCode != 0 {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}

	return "request rejected by server"
}
