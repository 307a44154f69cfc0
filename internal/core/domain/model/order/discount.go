package order

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var (
	// ErrDiscountAmountIsInvalid is returned when a discount of zero or less is applied.
	ErrDiscountAmountIsInvalid = errs.NewValueIsInvalidError("discount amount must be greater than 0")

	// ErrDiscountCodeIsRequired is returned when a discount carries no code.
	ErrDiscountCodeIsRequired = errs.NewValueIsRequiredError("discount code")

	// ErrDiscountIsNotConstructed is returned when using an improperly initialized Discount.
	ErrDiscountIsNotConstructed = errors.New("Discount must be created via NewDiscount constructor")
)

// Discount is an immutable value record of a price reduction applied to an
// order. A discount reduces the order total but never pushes it below zero;
// the floor is enforced by the aggregate when it recomputes the total.
type Discount struct { //nolint:recvcheck //using for validation
	code   string
	amount kernel.Money
	guard  guard.ConstructorGuard
}

// NewDiscount creates a discount for the given code and positive amount.
// Returns ErrDiscountCodeIsRequired for an empty code and
// ErrDiscountAmountIsInvalid when amount <= 0.
func NewDiscount(code string, amount kernel.Money) (Discount, error) {
	discount := Discount{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		discount.setCode(code),
		discount.setAmount(amount),
	); err != nil {
		return Discount{}, err
	}

	return discount, nil
}

// Validate ensures the discount was created through NewDiscount.
func (d Discount) Validate() error {
	return d.guard.Validate(ErrDiscountIsNotConstructed)
}

// Code returns the promotional code of the discount.
func (d Discount) Code() string {
	return d.code
}

// Amount returns the reduction amount. Always positive.
func (d Discount) Amount() kernel.Money {
	return d.amount
}

func (d *Discount) setCode(code string) error {
	if code == "" {
		return ErrDiscountCodeIsRequired
	}

	d.code = code
	return nil
}

func (d *Discount) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return ErrDiscountAmountIsInvalid
	}

	d.amount = amount
	return nil
}
