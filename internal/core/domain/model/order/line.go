package order

import (
	"errors"
	"fmt"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var (
	// ErrQuantityIsInvalid is returned when a line is requested with a quantity of zero or less.
	ErrQuantityIsInvalid = errs.NewValueIsInvalidError("quantity must be greater than 0")

	// ErrUnitPriceIsInvalid is returned when a line is requested with a negative unit price.
	ErrUnitPriceIsInvalid = errs.NewValueIsInvalidError("unit price must not be negative")

	// ErrOrderLineIsNotConstructed is returned when using an improperly initialized OrderLine.
	ErrOrderLineIsNotConstructed = errors.New("OrderLine must be created via NewOrderLine constructor")
)

// OrderLine is a value object representing one position of an order:
// a book reference, the unit price snapshotted from the catalog at the time
// the line was added, and a positive quantity. Its identity within an order
// is its position plus book reference; it carries no identifier of its own.
//
// OrderLine is immutable. Changing a quantity means removing the line and
// adding a new one through the aggregate root.
type OrderLine struct { //nolint:recvcheck //using for validation
	bookID    kernel.UUID
	unitPrice kernel.Money
	quantity  int
	guard     guard.ConstructorGuard
}

// NewOrderLine creates a line for the given book at the given unit price.
//
// Parameters:
//   - bookID: identity reference to the catalog book (must be a valid UUID)
//   - unitPrice: price per copy snapshotted from the catalog (must not be negative)
//   - quantity: number of copies (must be greater than 0)
//
// Returns ErrQuantityIsInvalid for quantity <= 0 and ErrUnitPriceIsInvalid
// for negative prices; multiple violations are reported together.
func NewOrderLine(bookID kernel.UUID, unitPrice kernel.Money, quantity int) (OrderLine, error) {
	line := OrderLine{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setBookID(bookID),
		line.setUnitPrice(unitPrice),
		line.setQuantity(quantity),
	); err != nil {
		return OrderLine{}, err
	}

	return line, nil
}

// Validate ensures the line was created through NewOrderLine.
func (l OrderLine) Validate() error {
	return l.guard.Validate(ErrOrderLineIsNotConstructed)
}

// BookID returns the identity reference of the ordered book.
func (l OrderLine) BookID() kernel.UUID {
	return l.bookID
}

// UnitPrice returns the per-copy price snapshotted when the line was added.
func (l OrderLine) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Quantity returns the number of copies ordered.
func (l OrderLine) Quantity() int {
	return l.quantity
}

// Price returns the derived line price: unit price times quantity.
func (l OrderLine) Price() kernel.Money {
	return l.unitPrice.Mul(l.quantity)
}

// String returns a short representation such as "2 x 29.99 (book 550e84...)".
func (l OrderLine) String() string {
	return fmt.Sprintf("%d x %s (book %s)", l.quantity, l.unitPrice, l.bookID)
}

func (l *OrderLine) setBookID(bookID kernel.UUID) error {
	if err := bookID.Validate(); err != nil {
		return err
	}

	l.bookID = bookID
	return nil
}

func (l *OrderLine) setUnitPrice(unitPrice kernel.Money) error {
	if unitPrice.IsNegative() {
		return ErrUnitPriceIsInvalid
	}

	l.unitPrice = unitPrice
	return nil
}

func (l *OrderLine) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	l.quantity = quantity
	return nil
}
