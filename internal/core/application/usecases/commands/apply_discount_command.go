package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var (
	ErrApplyDiscountCommandIsNotConstructed = errors.New(
		"ApplyDiscountCommand must be created via NewApplyDiscountCommand constructor",
	)
	ErrDiscountCodeIsRequired       = errors.New("discount code is required")
	ErrDiscountAmountCentsIsInvalid = errors.New("discount amount must be greater than 0")
)

// ApplyDiscountCommand represents a request to apply a discount to an order.
// The order total is floored at zero when accumulated discounts exceed the
// sum of line prices.
type ApplyDiscountCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	code        string
	amountCents int64

	guard guard.ConstructorGuard
}

// NewApplyDiscountCommand creates a command to apply a discount.
// Validates the order identifier, that the code is non-empty, and that the
// amount is positive.
func NewApplyDiscountCommand(orderID kernel.UUID, code string, amountCents int64) (ApplyDiscountCommand, error) {
	cmd := ApplyDiscountCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCode(code),
		cmd.setAmountCents(amountCents),
	); err != nil {
		return ApplyDiscountCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyDiscountCommand) Validate() error {
	return c.guard.Validate(ErrApplyDiscountCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to discount.
func (c ApplyDiscountCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Code returns the discount code being applied.
func (c ApplyDiscountCommand) Code() string {
	return c.code
}

// AmountCents returns the discount amount in cents.
func (c ApplyDiscountCommand) AmountCents() int64 {
	return c.amountCents
}

func (c *ApplyDiscountCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyDiscountCommand) setCode(code string) error {
	if code == "" {
		return ErrDiscountCodeIsRequired
	}

	c.code = code
	return nil
}

func (c *ApplyDiscountCommand) setAmountCents(amountCents int64) error {
	if amountCents <= 0 {
		return ErrDiscountAmountCentsIsInvalid
	}

	c.amountCents = amountCents
	return nil
}
