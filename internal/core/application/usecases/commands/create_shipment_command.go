package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrShipmentBooksAreRequired = errors.New("at least one book is required to create a shipment")
)

// CreateShipmentCommand represents a request to ship the lines matching the
// given books. All requested books must currently be in the order; otherwise
// the aggregate rejects the shipment as a whole.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	bookIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to ship the given books.
// Validates the order identifier and that at least one valid book reference
// is provided.
func NewCreateShipmentCommand(orderID kernel.UUID, bookIDs []kernel.UUID) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBookIDs(bookIDs),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to ship from.
func (c CreateShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BookIDs returns the books whose lines should ship.
// The returned slice is a copy to prevent external modification.
func (c CreateShipmentCommand) BookIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.bookIDs))
	copy(out, c.bookIDs)
	return out
}

func (c *CreateShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateShipmentCommand) setBookIDs(bookIDs []kernel.UUID) error {
	if len(bookIDs) == 0 {
		return ErrShipmentBooksAreRequired
	}
	for _, bookID := range bookIDs {
		if err := bookID.Validate(); err != nil {
			return err
		}
	}

	c.bookIDs = make([]kernel.UUID, len(bookIDs))
	copy(c.bookIDs, bookIDs)
	return nil
}
