package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized matches any 401 response via errors.Is.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable matches 5xx responses via errors.Is.
	ErrUnavailable = errors.New("server unavailable")
)

// Error is a non-2xx response from the GuessCode API.
type Error struct {
	Status   int
	Message  string
	Endpoint string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %d %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.Status)
}

// Unwrap lets callers classify the failure with errors.Is instead of
// inspecting the numeric status.
func (e *Error) Unwrap() error {
	switch {
	case e.Status == 401:
		return ErrUnauthorized
	case e.Status >= 500:
		return ErrUnavailable
	default:
		return nil
	}
}
