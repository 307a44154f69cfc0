package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/guard"
)

var (
	ErrAddPaymentCommandIsNotConstructed = errors.New(
		"AddPaymentCommand must be created via NewAddPaymentCommand constructor",
	)
	ErrPaymentAmountCentsIsInvalid = errors.New("payment amount must be greater than 0")
)

// AddPaymentCommand represents a request to record a payment against an order.
// Overpayment is permitted; the aggregate never rejects a payment for
// exceeding the balance due.
type AddPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	kind        order.PaymentKind
	amountCents int64

	guard guard.ConstructorGuard
}

// NewAddPaymentCommand creates a command to record a payment.
// Validates the order identifier, the payment kind, and that the amount is positive.
func NewAddPaymentCommand(
	orderID kernel.UUID,
	kind order.PaymentKind,
	amountCents int64,
) (AddPaymentCommand, error) {
	cmd := AddPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setKind(kind),
		cmd.setAmountCents(amountCents),
	); err != nil {
		return AddPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddPaymentCommand) Validate() error {
	return c.guard.Validate(ErrAddPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being paid.
func (c AddPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Kind returns the payment instrument tag.
func (c AddPaymentCommand) Kind() order.PaymentKind {
	return c.kind
}

// AmountCents returns the paid amount in cents.
func (c AddPaymentCommand) AmountCents() int64 {
	return c.amountCents
}

func (c *AddPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddPaymentCommand) setKind(kind order.PaymentKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *AddPaymentCommand) setAmountCents(amountCents int64) error {
	if amountCents <= 0 {
		return ErrPaymentAmountCentsIsInvalid
	}

	c.amountCents = amountCents
	return nil
}
