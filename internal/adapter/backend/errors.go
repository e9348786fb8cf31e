package backend

import (
	"fmt"
	"net/http"

	"github.com/niksmo/qkart/internal/core/domain"
)

var (
	ErrUnreachable  = domain.ErrUnreachable
	ErrBadRequest   = domain.ErrBadRequest
	ErrNotFound     = domain.ErrNotFound
	ErrUnauthorized = domain.ErrUnauthorized
	ErrUnexpected   = domain.ErrUnexpected
)

// An APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

func (e *APIError) UserMessage() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.Status == http.StatusBadRequest
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized ||
			e.Status == http.StatusForbidden
	}
	return false
}
