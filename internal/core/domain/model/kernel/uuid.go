package kernel

import (
	"fmt"

	"lastmile/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
// Identifiers must be created via NewUUID, UUIDFromString, or UUIDFromBytes.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object for deliveries, couriers, and zones.
// It wraps github.com/google/uuid so the domain model does not depend on the
// library directly. UUID is immutable; the zero value is invalid and fails
// validation.
//
// Example:
//
//	deliveryID := kernel.NewUUID()
//	courierID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) identifier.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses an identifier from its string form, typically a path
// parameter or a column read back from the database. Standard UUID notations
// are accepted, including braced and urn-prefixed ones.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates an identifier from a 16-byte slice. The nil UUID
// (all zero bytes) is rejected, since it is indistinguishable from an
// unconstructed value.
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

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// This method implements the fmt.Stringer interface.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID, for adapters that persist
// identifiers in binary form.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two identifiers are the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate checks that the identifier was properly constructed.
// Returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
