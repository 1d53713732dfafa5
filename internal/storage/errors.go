package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ConflictError reports a unique constraint violation on Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s has been taken", e.Field)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
