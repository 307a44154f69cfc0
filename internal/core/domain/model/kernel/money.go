package kernel

import "fmt"

// Money is an immutable value object representing a monetary amount in minor
// units (cents). The store trades in a single currency, so Money carries no
// currency tag. Amounts are signed: order totals are never negative, but a
// balance due may be (overpayment).
//
// Money is defined entirely by its value and is interchangeable with any
// equal-valued instance. Arithmetic returns new values and never mutates.
//
// Example:
//
//	price := kernel.NewMoney(2999)          // 29.99
//	total := price.Mul(2)                   // 59.98
//	due := total.Sub(kernel.NewMoney(6000)) // -0.02, overpaid
type Money struct {
	cents int64
}

// NewMoney creates a Money value from an amount in minor units.
// Any sign is accepted; callers that require positive amounts
// (payments, discounts, line prices) validate at their own boundary.
func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns the difference of two amounts. The result may be negative.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// Mul returns the amount multiplied by a quantity.
func (m Money) Mul(qty int) Money {
	return Money{cents: m.cents * int64(qty)}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns a decimal representation such as "29.99" or "-0.02".
// This method implements the fmt.Stringer interface.
func (m Money) String() string {
	sign := ""
	cents := m.cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
