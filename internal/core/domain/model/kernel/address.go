package kernel

import (
	"errors"
	"fmt"

	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress to guarantee
// all fields are present.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is an immutable value object representing a shipping destination.
// An Address is compared and replaced by value, never mutated in place:
// changing where an order ships means assigning a new Address, and shipments
// snapshot the Address they were created with.
//
// The zero value of Address is invalid and will fail validation.
//
// Example:
//
//	addr, err := kernel.NewAddress("221B Baker Street", "London", "Greater London", "NW1 6XE")
//	if err != nil {
//	    // handle validation error
//	}
type Address struct { //nolint:recvcheck //using for validation
	street     string
	city       string
	region     string
	postalCode string
	guard      guard.ConstructorGuard
}

// NewAddress creates a new Address with the specified fields.
// Every field is required; missing fields are reported together.
//
// Parameters:
//   - street: street line including house number
//   - city: city or town
//   - region: state, province, or region
//   - postalCode: postal or ZIP code
//
// Returns:
//   - Address: a valid address instance
//   - error: aggregated validation errors for missing fields
func NewAddress(street, city, region, postalCode string) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setStreet(street),
		addr.setCity(city),
		addr.setRegion(region),
		addr.setPostalCode(postalCode),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate checks if the Address was properly constructed using NewAddress.
// The zero value of Address fails this validation.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// Region returns the state, province, or region of the address.
func (a Address) Region() string {
	return a.region
}

// PostalCode returns the postal or ZIP code of the address.
func (a Address) PostalCode() string {
	return a.postalCode
}

// IsEqual compares two addresses by value.
// Both addresses must be properly constructed for the comparison to succeed.
func (a Address) IsEqual(other Address) (bool, error) {
	if err := errors.Join(a.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return a == other, nil
}

// String returns a single-line representation of the address.
// This method implements the fmt.Stringer interface.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s", a.street, a.city, a.region, a.postalCode)
}

// setStreet sets the street with validation.
// Note: We intentionally use pointer receivers for these private setters to
// enable self-encapsulated validation during object construction, while the
// public methods keep value receivers.
func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}

	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}

	a.city = city
	return nil
}

func (a *Address) setRegion(region string) error {
	if region == "" {
		return errs.NewValueIsRequiredError("region")
	}

	a.region = region
	return nil
}

func (a *Address) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postal code")
	}

	a.postalCode = postalCode
	return nil
}
