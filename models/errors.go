package models

import "fmt"

// ValidationError rejects a write before anything is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReferenceError means a required related row does not exist at write time.
type ReferenceError struct {
	Entity string
	Key    any
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %v does not exist", e.Entity, e.Key)
}

// StorageError wraps a persistence failure. Never retried, always surfaced.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }
