package contacts

import (
	"errors"
	"fmt"
)

var (
	// ErrIDRequired indicates an operation was called without an identifier.
	ErrIDRequired = errors.New("contacts: contact id is required")
)

// NotFoundError indicates a contact inquiry could not be located.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("contacts: contact %q not found", e.Key)
}
