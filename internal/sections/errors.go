package sections

import (
	"errors"
	"fmt"
)

var (
	ErrSectionRequired    = errors.New("sections: section is required")
	ErrSectionIDRequired  = errors.New("sections: section id is required")
	ErrPageSlugRequired   = errors.New("sections: page slug is required")
	ErrPageSlugInvalid    = errors.New("sections: page slug contains invalid characters")
	ErrPageSlugExists     = errors.New("sections: page slug already exists")
	ErrUnknownSectionType = errors.New("sections: unknown section type")
	ErrContentMismatch    = errors.New("sections: content shape does not match section type")
	ErrPositionInvalid    = errors.New("sections: position must be zero or positive")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
