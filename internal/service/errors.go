package service

import (
	"errors"
	"fmt"
)

// ── Workflow rejection reasons ──

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrWindowClosed        = errors.New("attendance window is closed")
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateSubmission = errors.New("attendance already submitted today")
	ErrStorageUnavailable  = errors.New("storage temporarily unavailable")
)

// ValidationError carries field-level details and matches ErrInvalidInput.
type ValidationError struct {
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details == "" {
		return ErrInvalidInput.Error()
	}
	return ErrInvalidInput.Error() + ": " + e.Details
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// storageError marks err as a transient persistence failure while keeping the cause.
func storageError(err error) error {
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}
