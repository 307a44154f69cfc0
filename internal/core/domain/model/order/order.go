package order

import (
	"errors"
	"fmt"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrItemNotInOrder is returned when a shipment references a book that has
	// no line currently in the order.
	ErrItemNotInOrder = errors.New("line item is not in the order")

	// ErrStatusHistoryIsRequired is returned when restoring an order with an empty status history.
	ErrStatusHistoryIsRequired = errs.NewValueIsRequiredError("status history")
)

// Order represents a customer's book order. It is the aggregate root that owns
// the order's line items, recorded payments, applied discounts, shipments, and
// status history, and it is the sole mutation surface for all of them: no
// external code modifies an OrderLine, Payment, Discount, or Shipment directly.
//
// Order maintains these invariants after every mutating operation:
//   - the total price equals the sum of line prices minus the sum of
//     discounts, floored at zero
//   - every line quantity is positive
//   - every payment amount is positive
//   - a line never sits in more than one active shipment; shipping a line
//     removes it from the order
//   - the status history is append-only with non-decreasing timestamps
//
// The balance due is the total price minus the sum of payments and may be
// negative (overpayment is permitted and not clamped).
//
// Orders reference their customer and books by identity only; the aggregate
// never holds an owning pointer into the Customer or Catalog aggregates.
//
// Mutating operations are not safe for unsynchronized concurrent invocation
// on the same instance. Callers must serialize access per aggregate instance.
type Order struct {
	// id is the unique identifier of the order
	id kernel.UUID

	// customerID references the owning customer by identity only
	customerID kernel.UUID

	// shippingAddress is where future shipments will go; replaced by value
	shippingAddress kernel.Address

	// lines are the current, unshipped positions in insertion order
	lines []OrderLine

	// payments are the recorded payments in the order they were received
	payments []Payment

	// discounts are the applied discounts in the order they were applied
	discounts []Discount

	// shipments are the shipments created from this order, ids one-based and sequential
	shipments []*Shipment

	// status is the current state in the order lifecycle
	status Status

	// history is the append-only record of entered statuses
	history []StatusChange

	// totalPrice is derived from lines and discounts, never set directly
	totalPrice kernel.Money

	// guard ensures the order was created via a factory function
	guard guard.ConstructorGuard
}

// NewOrder creates a new, empty Order for a customer. The order starts in
// StatusNew with a single corresponding history entry and a zero total.
//
// Parameters:
//   - id: unique identifier for the order (must be a valid UUID)
//   - customerID: identity reference to the customer (must be a valid UUID)
//   - shippingAddress: destination for future shipments (must be constructed)
//
// Returns the created order, or an aggregated validation error if any
// parameter is invalid.
//
// Example:
//
//	addr, _ := kernel.NewAddress("1 Main St", "Springfield", "IL", "62701")
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, addr)
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(id kernel.UUID, customerID kernel.UUID, shippingAddress kernel.Address) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setShippingAddress(shippingAddress),
	); err != nil {
		return nil, err
	}

	o.status = StatusNew
	o.history = []StatusChange{{status: StatusNew, at: time.Now().UTC()}}
	o.recalculateTotal()

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, which creates empty orders, this factory restores an order
// to its previously persisted state: lines, payments, discounts, shipments,
// and the full status history. The total price is recomputed, never trusted
// from storage.
//
// The history must be non-empty and its last entry must match the given
// status; shipment ids must be sequential from 1 so id allocation resumes
// correctly.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	shippingAddress kernel.Address,
	lines []OrderLine,
	payments []Payment,
	discounts []Discount,
	shipments []*Shipment,
	status Status,
	history []StatusChange,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setShippingAddress(shippingAddress),
		o.setLines(lines),
		o.setPayments(payments),
		o.setDiscounts(discounts),
		o.setShipments(shipments),
		o.setStatusWithHistory(status, history),
	); err != nil {
		return nil, err
	}

	o.recalculateTotal()

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. Call it when reconstructing orders from persistence to
// prevent bypassing validation by direct struct instantiation.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
// Orders are entities: equal identity means equal order, regardless of state.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identity reference of the order's customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// ShippingAddress returns the destination for future shipments.
func (o *Order) ShippingAddress() kernel.Address {
	return o.shippingAddress
}

// Lines returns the current, unshipped line items in insertion order.
// The returned slice is a copy to prevent external modification.
func (o *Order) Lines() []OrderLine {
	out := make([]OrderLine, len(o.lines))
	copy(out, o.lines)
	return out
}

// Payments returns the recorded payments in the order they were received.
// The returned slice is a copy to prevent external modification.
func (o *Order) Payments() []Payment {
	out := make([]Payment, len(o.payments))
	copy(out, o.payments)
	return out
}

// Discounts returns the applied discounts in the order they were applied.
// The returned slice is a copy to prevent external modification.
func (o *Order) Discounts() []Discount {
	out := make([]Discount, len(o.discounts))
	copy(out, o.discounts)
	return out
}

// Shipments returns the shipments created from this order.
// The returned slice is a copy to prevent external modification.
func (o *Order) Shipments() []*Shipment {
	out := make([]*Shipment, len(o.shipments))
	copy(out, o.shipments)
	return out
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// History returns the append-only status history, oldest first.
// The returned slice is a copy to prevent external modification.
func (o *Order) History() []StatusChange {
	out := make([]StatusChange, len(o.history))
	copy(out, o.history)
	return out
}

// CreatedAt returns when the order entered its initial status.
func (o *Order) CreatedAt() time.Time {
	return o.history[0].at
}

// TotalPrice returns the derived order total: the sum of line prices minus
// the sum of discounts, floored at zero. Recomputed after every mutation.
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// BalanceDue returns the total price minus the sum of recorded payments.
// The result may be negative when the order is overpaid.
func (o *Order) BalanceDue() kernel.Money {
	due := o.totalPrice
	for _, p := range o.payments {
		due = due.Sub(p.amount)
	}
	return due
}

// AddLine appends a new line for the given book and recomputes the total.
//
// Fails with ErrQuantityIsInvalid when quantity <= 0 and leaves the order
// unchanged. The unit price is snapshotted from the caller (the catalog is an
// external collaborator); later catalog price changes do not affect the line.
func (o *Order) AddLine(bookID kernel.UUID, unitPrice kernel.Money, quantity int) error {
	line, err := NewOrderLine(bookID, unitPrice, quantity)
	if err != nil {
		return err
	}

	o.lines = append(o.lines, line)
	o.recalculateTotal()
	return nil
}

// RemoveLine removes all lines matching the given book reference and
// recomputes the total. Removing a book with no matching line is a no-op,
// not an error.
func (o *Order) RemoveLine(bookID kernel.UUID) error {
	if err := bookID.Validate(); err != nil {
		return err
	}

	kept := o.lines[:0]
	for _, line := range o.lines {
		if !line.bookID.IsEqual(bookID) {
			kept = append(kept, line)
		}
	}
	o.lines = kept
	o.recalculateTotal()
	return nil
}

// AddPayment appends a payment record. The payment itself guarantees a
// positive amount; the order does not validate against the balance due, so
// overpayment is permitted.
func (o *Order) AddPayment(payment Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	o.payments = append(o.payments, payment)
	return nil
}

// ApplyDiscount appends a discount and recomputes the total. The total is
// always recomputed as the sum of line prices minus the sum of all applied
// discounts, floored at zero. The floor is part of the recompute rule, so
// adding lines after a clamping discount brings their full price back into
// the calculation.
func (o *Order) ApplyDiscount(discount Discount) error {
	if err := discount.Validate(); err != nil {
		return err
	}

	o.discounts = append(o.discounts, discount)
	o.recalculateTotal()
	return nil
}

// ChangeStatus transitions the order to next and appends exactly one history
// entry. Transitions are restricted to the closed table documented on Status;
// in particular, cancellation is rejected once the order has shipped.
func (o *Order) ChangeStatus(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendHistory(newStatus)
	return nil
}

// CreateShipment moves the lines matching the requested books into a new
// shipment and recomputes the total. The shipment receives the next
// sequential one-based id and a snapshot of the current shipping address.
//
// Fails with ErrItemNotInOrder, leaving the order unchanged, if any
// requested book has no line currently in the order. A book reference may
// match several lines; all of them ship together.
func (o *Order) CreateShipment(bookIDs []kernel.UUID) (*Shipment, error) {
	if len(bookIDs) == 0 {
		return nil, ErrShipmentHasNoLines
	}

	requested := make(map[kernel.UUID]bool, len(bookIDs))
	for _, bookID := range bookIDs {
		if err := bookID.Validate(); err != nil {
			return nil, err
		}
		if !o.hasLine(bookID) {
			return nil, fmt.Errorf("%w: book %s", ErrItemNotInOrder, bookID)
		}
		requested[bookID] = true
	}

	var shipped, kept []OrderLine
	for _, line := range o.lines {
		if requested[line.bookID] {
			shipped = append(shipped, line)
		} else {
			kept = append(kept, line)
		}
	}

	shipment, err := newShipment(len(o.shipments)+1, shipped, o.shippingAddress)
	if err != nil {
		return nil, err
	}

	o.lines = kept
	o.shipments = append(o.shipments, shipment)
	o.recalculateTotal()
	return shipment, nil
}

// ChangeShippingAddress replaces the shipping address by value. Shipments
// already created keep the address they were snapshotted with.
func (o *Order) ChangeShippingAddress(address kernel.Address) error {
	return o.setShippingAddress(address)
}

// hasLine reports whether any current line references the given book.
func (o *Order) hasLine(bookID kernel.UUID) bool {
	for _, line := range o.lines {
		if line.bookID.IsEqual(bookID) {
			return true
		}
	}
	return false
}

// recalculateTotal rederives the total price from the current lines and
// discounts: max(0, sum of line prices - sum of discounts).
func (o *Order) recalculateTotal() {
	var total kernel.Money
	for _, line := range o.lines {
		total = total.Add(line.Price())
	}
	for _, discount := range o.discounts {
		total = total.Sub(discount.amount)
	}
	if total.IsNegative() {
		total = kernel.NewMoney(0)
	}
	o.totalPrice = total
}

// appendHistory records the entered status. The timestamp never moves
// backwards even if the wall clock does.
func (o *Order) appendHistory(status Status) {
	now := time.Now().UTC()
	if n := len(o.history); n > 0 && now.Before(o.history[n-1].at) {
		now = o.history[n-1].at
	}
	o.history = append(o.history, StatusChange{status: status, at: now})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setShippingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setLines(lines []OrderLine) error {
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.lines = make([]OrderLine, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setPayments(payments []Payment) error {
	for _, payment := range payments {
		if err := payment.Validate(); err != nil {
			return err
		}
	}
	o.payments = make([]Payment, len(payments))
	copy(o.payments, payments)
	return nil
}

func (o *Order) setDiscounts(discounts []Discount) error {
	for _, discount := range discounts {
		if err := discount.Validate(); err != nil {
			return err
		}
	}
	o.discounts = make([]Discount, len(discounts))
	copy(o.discounts, discounts)
	return nil
}

func (o *Order) setShipments(shipments []*Shipment) error {
	for i, shipment := range shipments {
		if err := shipment.Validate(); err != nil {
			return err
		}
		if shipment.id != i+1 {
			return errs.NewValueIsInvalidErrorWithCause("shipments are invalid",
				fmt.Errorf("shipment ids must be sequential from 1, got %d at position %d", shipment.id, i))
		}
	}
	o.shipments = make([]*Shipment, len(shipments))
	copy(o.shipments, shipments)
	return nil
}

func (o *Order) setStatusWithHistory(status Status, history []StatusChange) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if len(history) == 0 {
		return ErrStatusHistoryIsRequired
	}

	for i, change := range history {
		if err := change.status.Validate(); err != nil {
			return err
		}
		if i > 0 && change.at.Before(history[i-1].at) {
			return errs.NewValueIsInvalidErrorWithCause("status history is invalid",
				fmt.Errorf("history timestamps must be non-decreasing at position %d", i))
		}
	}

	if last := history[len(history)-1].status; last != status {
		return errs.NewValueIsInvalidErrorWithCause("status history is invalid",
			fmt.Errorf("last history entry is %s but status is %s", last, status))
	}

	o.status = status
	o.history = make([]StatusChange, len(history))
	copy(o.history, history)
	return nil
}
