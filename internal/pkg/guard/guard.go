// Package guard provides the constructor guard pattern used across the domain model.
// Embedding a ConstructorGuard in a value object or entity makes zero-value instances
// detectable, so every domain object can prove it was built through its constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures domain objects are only created through their
// designated constructor functions. A zero-value guard fails validation,
// which lets Validate methods reject structs that bypassed construction.
//
// Example usage:
//
//	type Discount struct {
//	    code   string
//	    amount kernel.Money
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewDiscount(code string, amount kernel.Money) (Discount, error) {
//	    // validate inputs...
//	    return Discount{code: code, amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (d Discount) Validate() error {
//	    return d.guard.Validate(ErrDiscountIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks its embedding object as
// properly constructed. Call it in every domain constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the embedding object was built through its
// constructor. Otherwise it returns validationError, falling back to
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
