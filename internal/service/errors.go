package service

import (
	"errors"
	"fmt"
	"time"

	"daily-journal/internal/model"
	"daily-journal/internal/repository"
)

var (
	// ErrValidation marks input rejected before any mutation.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a missing task, template, entry or catalog item.
	ErrNotFound = repository.ErrNotFound
	// ErrConflict marks a write the store turned into a no-op.
	ErrConflict = repository.ErrConflict
)

// ValidationError describes which input field was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := model.ParseDate(value)
	if err != nil {
		return time.Time{}, invalid(field, "%v", err)
	}
	return t, nil
}

func requireUser(userID uint) error {
	if userID == 0 {
		return invalid("user", "user id is required")
	}
	return nil
}

func requireTask(taskID uint) error {
	if taskID == 0 {
		return invalid("taskId", "task id is required")
	}
	return nil
}
