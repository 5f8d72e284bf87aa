package postgres

import (
	"fmt"

	"github.com/google/uuid"
)

// IsUUID checks a primary key taken from a request path. The nil UUID is
// rejected since no row is ever stored under it.
func IsUUID(u string) error {
	if u == "" {
		return fmt.Errorf("%w: empty", ErrInvalidUUID)
	}
	id, err := uuid.Parse(u)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUUID, err)
	}
	if id == uuid.Nil {
		return fmt.Errorf("%w: nil UUID", ErrInvalidUUID)
	}
	return nil
}

func IsValidUUID(u string) bool {
	return IsUUID(u) == nil
}

// NewUUID returns a time-ordered v7 id so new rows append to the primary key index.
func NewUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}
