package kernel

import (
	"fmt"

	"bookstore/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through
// one of the constructor functions. This error is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object that represents a universally unique identifier.
// It wraps the github.com/google/uuid implementation to provide domain-specific
// behavior and ensure immutability. UUID identifies entities and aggregates
// throughout the bookstore domain: orders, customers, and books.
//
// The zero value of UUID is invalid and must be constructed using one of the
// provided factory functions: NewUUID, UUIDFromString, or UUIDFromBytes.
// UUID is immutable and safe for concurrent use.
//
// Example usage:
//
//	orderID := kernel.NewUUID()
//
//	customerID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // handle error
//	}
type UUID struct {
	value uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
// This is the primary way to create identifiers for new entities.
func NewUUID() UUID {
	return UUID{value: uuid.New()}
}

// UUIDFromString parses a UUID from its string representation.
// It accepts standard UUID formats including the braced and urn:uuid forms.
// Returns an error if the string is not a valid UUID. This function is
// typically used when reconstructing entities from persistence or when
// parsing identifiers arriving over HTTP.
//
// Example:
//
//	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return fmt.Errorf("invalid order ID: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}

	return UUID{value: parsed}, nil
}

// UUIDFromBytes creates a UUID from a 16-byte slice.
// Returns an error if the byte slice is not valid for UUID construction
// or represents the nil UUID. Useful when identifiers are stored as
// binary data in a database.
func UUIDFromBytes(b []byte) (UUID, error) {
	parsed, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}

	restored := UUID{value: parsed}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}

	return restored, nil
}

// Validate checks if the UUID is properly constructed.
// Returns ErrUUIDIsNotConstructed if the UUID is the zero value.
func (u UUID) Validate() error {
	if u.value == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// IsEqual compares two UUIDs for equality.
func (u UUID) IsEqual(other UUID) bool {
	return u.value == other.value
}

// String returns the standard "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" representation.
// For a zero value UUID this returns "00000000-0000-0000-0000-000000000000".
func (u UUID) String() string {
	return u.value.String()
}

// Bytes returns the underlying uuid.UUID value for integration with external
// libraries such as database drivers. Direct access should be minimized to
// maintain encapsulation.
func (u UUID) Bytes() uuid.UUID {
	return u.value
}
