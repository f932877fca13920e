package agentdesk

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors matched by APIError. Use errors.Is() to check.
var (
	ErrValidation   = errors.New("agentdesk: validation failed")
	ErrNotFound     = errors.New("agentdesk: not found")
	ErrUnauthorized = errors.New("agentdesk: unauthorized")
	ErrServer       = errors.New("agentdesk: server error")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`

	// Set for validation failures.
	Field   string `json:"field,omitempty"`
	Value   any    `json:"value,omitempty"`
	Allowed string `json:"allowed,omitempty"`
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (status %d): %s=%v, allowed %s", e.Code, e.Status, e.Field, e.Value, e.Allowed)
	}
	return fmt.Sprintf("%s (status %d): %s", e.Code, e.Status, e.Message)
}

// Unwrap maps the response to one of the package sentinels.
func (e *APIError) Unwrap() error {
	switch {
	case e.Code == "validation_failed":
		return ErrValidation
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status >= http.StatusInternalServerError:
		return ErrServer
	default:
		return nil
	}
}
