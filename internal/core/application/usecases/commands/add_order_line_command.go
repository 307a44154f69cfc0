package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var (
	ErrAddOrderLineCommandIsNotConstructed = errors.New(
		"AddOrderLineCommand must be created via NewAddOrderLineCommand constructor",
	)
	ErrLineQuantityIsInvalid  = errors.New("quantity must be greater than 0")
	ErrLineUnitPriceIsInvalid = errors.New("unit price must be greater than 0")
)

// AddOrderLineCommand represents a request to add a line item to an order.
// The unit price is carried on the command: the catalog that quotes prices is
// an external collaborator, and the line snapshots the price at add time.
type AddOrderLineCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	bookID         kernel.UUID
	unitPriceCents int64
	quantity       int

	guard guard.ConstructorGuard
}

// NewAddOrderLineCommand creates a command to add a line for a book.
// Validates that both identifiers are valid, the unit price is positive,
// and the quantity is greater than zero.
func NewAddOrderLineCommand(
	orderID kernel.UUID,
	bookID kernel.UUID,
	unitPriceCents int64,
	quantity int,
) (AddOrderLineCommand, error) {
	cmd := AddOrderLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBookID(bookID),
		cmd.setUnitPriceCents(unitPriceCents),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddOrderLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderLineCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderLineCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to modify.
func (c AddOrderLineCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BookID returns the identity reference of the book being ordered.
func (c AddOrderLineCommand) BookID() kernel.UUID {
	return c.bookID
}

// UnitPriceCents returns the quoted price per copy in cents.
func (c AddOrderLineCommand) UnitPriceCents() int64 {
	return c.unitPriceCents
}

// Quantity returns the number of copies ordered.
func (c AddOrderLineCommand) Quantity() int {
	return c.quantity
}

func (c *AddOrderLineCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddOrderLineCommand) setBookID(bookID kernel.UUID) error {
	if err := bookID.Validate(); err != nil {
		return err
	}

	c.bookID = bookID
	return nil
}

func (c *AddOrderLineCommand) setUnitPriceCents(unitPriceCents int64) error {
	if unitPriceCents <= 0 {
		return ErrLineUnitPriceIsInvalid
	}

	c.unitPriceCents = unitPriceCents
	return nil
}

func (c *AddOrderLineCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrLineQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
