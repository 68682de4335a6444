package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness rule or a concurrent change
	// prevents the operation. Callers may retry after reloading state.
	ErrConflict = errors.New("conflict")
	// ErrForbidden is returned when the actor lacks the role or ownership
	// the operation requires.
	ErrForbidden = errors.New("forbidden")
	// ErrInvitationFull is returned by Join when no seats are left.
	ErrInvitationFull = errors.New("invitation is full")
	// ErrAlreadyJoined is returned by Join for the owner or an existing player.
	ErrAlreadyJoined = errors.New("already joined")
	// ErrInvalidCredentials is returned by Authenticate.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries one message per offending input field.
type ValidationError struct {
	Fields map[string]string
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
