package services

import (
	"errors"
	"fmt"
	"strings"

	"jualsampah/internal/models"
)

var (
	// ErrStatusUnchanged is returned when an order already has the requested status.
	ErrStatusUnchanged = errors.New("order already has the requested status")
	// ErrInvalidStatus is returned for status values that cannot be requested.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidSort is returned for unsupported list orderings.
	ErrInvalidSort = errors.New("invalid sort field")
	// ErrInvalidCredentials is returned for any failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldError describes one failed field check.
type FieldError struct {
	Type    string `json:"type"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists every failed field check of a request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// StatusConflictError carries the user-facing message for a repeated status change.
type StatusConflictError struct {
	Status  models.OrderStatus
	Message string
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Status)
}

// Unwrap lets callers match with errors.Is(err, ErrStatusUnchanged).
func (e *StatusConflictError) Unwrap() error {
	return ErrStatusUnchanged
}
