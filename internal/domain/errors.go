package domain

import (
	"errors"
	"fmt"
)

// Common error types
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// ErrKeywordNotFound is returned when a keyword reply does not exist
func ErrKeywordNotFound(id string) error {
	return &ErrNotFound{Entity: "keyword reply", ID: id}
}

// ErrSessionNotFound is returned when an editor session does not exist or expired
func ErrSessionNotFound(id string) error {
	return &ErrNotFound{Entity: "editor session", ID: id}
}

// ErrKeywordConflict is returned when a trigger keyword already belongs to
// another reply
type ErrKeywordConflict struct {
	Keyword string
	OwnerID string
}

func (e *ErrKeywordConflict) Error() string {
	return fmt.Sprintf("keyword %q is already used by reply %s", e.Keyword, e.OwnerID)
}

// ErrImageReadInProgress is returned when an element already has a pending image read
var ErrImageReadInProgress = errors.New("an image read is already pending for this element")

// ErrRateLimited is returned when a caller exceeded an attempt budget
type ErrRateLimited struct {
	RetryAfter int
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("too many attempts, retry after %d seconds", e.RetryAfter)
}

// IsNotFound reports whether err wraps an ErrNotFound
func IsNotFound(err error) bool {
	var notFound *ErrNotFound
	return errors.As(err, &notFound)
}

// IsValidation reports whether err wraps a ValidationError
func IsValidation(err error) bool {
	var validation ValidationError
	return errors.As(err, &validation)
}
