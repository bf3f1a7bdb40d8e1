package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrIDRequired indicates an operation was called without an identifier.
	ErrIDRequired = errors.New("catalog: entity id is required")
)

// NotFoundError indicates a catalog entity could not be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog: %s %q not found", e.Resource, e.Key)
}
