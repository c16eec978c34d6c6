package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies aggregates and entities. The zero value is invalid.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the standard, braced or urn forms.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes builds a UUID from 16 raw bytes, as stored by the DTOs.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// UUIDFromGoogle wraps a github.com/google/uuid value read from persistence.
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	return UUIDFromBytes(id[:])
}

// OptionalUUIDFromGoogle maps a nullable column to an optional identifier.
func OptionalUUIDFromGoogle(id *uuid.UUID) (*UUID, error) {
	if id == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	v, err := UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// Ptr returns the underlying value as a nullable column value.
func (u *UUID) Ptr() *uuid.UUID {
	if u == nil {
		return nil
	}
	raw := u.id
	return &raw
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
