package common

import "fmt"

// InvalidEventError means an inbound event was missing a role slot its type
// requires. The envelope is rejected at construction, never delivered
// half-populated.
type InvalidEventError struct {
	Type    NotificationType
	Missing string
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("invalid event %s: missing required %s", e.Type, e.Missing)
}

// StorageError wraps a persistence failure so callers can tell it apart from
// validation problems. The counter delta for a mutation is only applied once
// the store confirmed it, so a StorageError never leaves the two diverged.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
