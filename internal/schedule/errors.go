package schedule

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries per-field messages for rejected form input. It is
// raised before any backend call and never reaches the storage layer.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid task form: " + strings.Join(parts, "; ")
}

// NotFoundError means the caller referenced a task id absent from the
// in-memory state. The usual recovery is a full reload.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// StorageError wraps any failure reported by the persistence backend.
// Single-record operations revert their optimistic change before returning
// it; multi-record reorders resync instead.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
