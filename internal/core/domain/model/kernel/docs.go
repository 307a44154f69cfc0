// Package kernel provides core domain primitives for the bookstore system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Money: a value object for monetary amounts in minor units
//   - Address: a value object for shipping destinations, replaced by value and never mutated
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are immutable and safe for
// concurrent use.
package kernel
