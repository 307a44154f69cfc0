package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrRemoveOrderLineCommandIsNotConstructed = errors.New(
	"RemoveOrderLineCommand must be created via NewRemoveOrderLineCommand constructor",
)

// RemoveOrderLineCommand represents a request to remove all lines for a book
// from an order. Removing a book that is not in the order is a no-op.
type RemoveOrderLineCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	bookID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveOrderLineCommand creates a command to remove a book's lines from an order.
func NewRemoveOrderLineCommand(orderID kernel.UUID, bookID kernel.UUID) (RemoveOrderLineCommand, error) {
	cmd := RemoveOrderLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBookID(bookID),
	); err != nil {
		return RemoveOrderLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveOrderLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderLineCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to modify.
func (c RemoveOrderLineCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BookID returns the identity reference of the book whose lines are removed.
func (c RemoveOrderLineCommand) BookID() kernel.UUID {
	return c.bookID
}

func (c *RemoveOrderLineCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RemoveOrderLineCommand) setBookID(bookID kernel.UUID) error {
	if err := bookID.Validate(); err != nil {
		return err
	}

	c.bookID = bookID
	return nil
}
