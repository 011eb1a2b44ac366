package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// --- Error Definitions ---
var (
	// ErrNoSession means an authenticated fetcher was called without a
	// token; no network request was made.
	ErrNoSession = errors.New("no active session")

	// ErrUnauthorized covers rejected or expired tokens (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden covers role mismatches (403).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the requested entity is absent server-side (404).
	ErrNotFound = errors.New("not found")
)

// Error is a failure reported by the backend. Message is the
// user-displayable text from the server's error body, with a generic
// fallback when the body carries none.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// Is maps status codes onto the sentinel errors so callers can use
// errors.Is without inspecting status codes themselves.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// errorFromResponse builds an *Error from a non-2xx response. The backend
// reports failures as {"msg": "..."}.
func errorFromResponse(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode, Message: "request failed"}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		var serverBody struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(body, &serverBody) == nil && serverBody.Msg != "" {
			apiErr.Message = serverBody.Msg
		}
	}
	return apiErr
}
