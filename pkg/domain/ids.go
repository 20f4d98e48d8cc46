package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidID is wrapped by every ID parse failure.
var ErrInvalidID = errors.New("invalid id")

// IterationID identifies one patient iteration in logs.
type IterationID uuid.UUID

// NewIterationID returns a fresh random ID.
func NewIterationID() IterationID {
	return IterationID(uuid.New())
}

// ParseIterationID parses s. Empty, malformed and nil UUIDs are rejected.
func ParseIterationID(s string) (IterationID, error) {
	if s == "" {
		return IterationID{}, fmt.Errorf("%w: iteration id required", ErrInvalidID)
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return IterationID{}, fmt.Errorf("%w: iteration id %q: %v", ErrInvalidID, s, err)
	}
	if parsed == uuid.Nil {
		return IterationID{}, fmt.Errorf("%w: iteration id cannot be nil", ErrInvalidID)
	}
	return IterationID(parsed), nil
}

func (id IterationID) String() string {
	return uuid.UUID(id).String()
}

func (id IterationID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}
