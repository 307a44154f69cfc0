package order

import (
	"errors"
	"fmt"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var (
	// ErrShipmentIsNotConstructed is returned when using an improperly initialized Shipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via Order.CreateShipment")

	// ErrShipmentHasNoLines is returned when a shipment is requested without line items.
	ErrShipmentHasNoLines = errs.NewValueIsRequiredError("shipment line items")
)

// ShipmentStatus represents the lifecycle state of a single shipment.
//
// State transitions:
//
//	Pending ────> Dispatched ────> Delivered
type ShipmentStatus int

const (
	// ShipmentStatusUnknown represents an invalid or undefined shipment status.
	ShipmentStatusUnknown ShipmentStatus = iota

	// ShipmentStatusPending is the initial status of a freshly created shipment.
	ShipmentStatusPending

	// ShipmentStatusDispatched indicates the shipment left the warehouse.
	ShipmentStatusDispatched

	// ShipmentStatusDelivered indicates the shipment reached its address. Final state.
	ShipmentStatusDelivered
)

func getShipmentStatusStrings() map[ShipmentStatus]string {
	return map[ShipmentStatus]string{
		ShipmentStatusUnknown:    "Unknown",
		ShipmentStatusPending:    "Pending",
		ShipmentStatusDispatched: "Dispatched",
		ShipmentStatusDelivered:  "Delivered",
	}
}

// Validate checks if the ShipmentStatus is a member of the closed enumeration.
func (s ShipmentStatus) Validate() error {
	if _, ok := getShipmentStatusStrings()[s]; !ok || s == ShipmentStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("shipment status is invalid",
			fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

// String returns the human-readable name of the shipment status.
func (s ShipmentStatus) String() string {
	if str, ok := getShipmentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Shipment is an entity owned by an Order: a subset of the order's lines
// dispatched to an address snapshot. Its identity is a one-based sequential
// number scoped to its order; shipments of different orders may share numbers.
//
// Shipments are created exclusively through Order.CreateShipment, which moves
// the shipped lines out of the order so a line can never sit in two active
// shipments at once.
type Shipment struct {
	// id is the one-based shipment number within its order
	id int
	// lines are the items carried by this shipment, in order insertion order
	lines []OrderLine
	// address is the shipping address snapshotted at creation time
	address kernel.Address
	// status is the current state in the shipment lifecycle
	status ShipmentStatus
	// guard ensures the shipment was properly constructed
	guard guard.ConstructorGuard
}

// newShipment creates a pending shipment. Only the Order aggregate calls this;
// id allocation and line removal are its responsibility.
func newShipment(id int, lines []OrderLine, address kernel.Address) (*Shipment, error) {
	return restoreShipment(id, lines, address, ShipmentStatusPending)
}

// RestoreShipment reconstructs a Shipment from persistent storage, preserving
// its status. The restored shipment behaves identically to one created through
// Order.CreateShipment.
func RestoreShipment(id int, lines []OrderLine, address kernel.Address, status ShipmentStatus) (*Shipment, error) {
	return restoreShipment(id, lines, address, status)
}

func restoreShipment(id int, lines []OrderLine, address kernel.Address, status ShipmentStatus) (*Shipment, error) {
	shipment := &Shipment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setLines(lines),
		shipment.setAddress(address),
		shipment.setStatus(status),
	); err != nil {
		return nil, err
	}

	return shipment, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID returns the one-based shipment number within its order.
func (s *Shipment) ID() int {
	return s.id
}

// Lines returns the items carried by this shipment.
// The returned slice is a copy to prevent external modification.
func (s *Shipment) Lines() []OrderLine {
	out := make([]OrderLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Address returns the shipping address snapshotted when the shipment was created.
// Later changes to the order's shipping address do not affect it.
func (s *Shipment) Address() kernel.Address {
	return s.address
}

// Status returns the current status of the shipment.
func (s *Shipment) Status() ShipmentStatus {
	return s.status
}

// Dispatch marks the shipment as having left the warehouse.
// Only pending shipments can be dispatched.
func (s *Shipment) Dispatch() error {
	if s.status != ShipmentStatusPending {
		return errs.NewValueIsInvalidErrorWithCause("shipment status is invalid",
			fmt.Errorf("%s is not a valid status to dispatch", s.status))
	}

	s.status = ShipmentStatusDispatched
	return nil
}

// Deliver marks the shipment as delivered. Only dispatched shipments can be delivered.
func (s *Shipment) Deliver() error {
	if s.status != ShipmentStatusDispatched {
		return errs.NewValueIsInvalidErrorWithCause("shipment status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.status))
	}

	s.status = ShipmentStatusDelivered
	return nil
}

func (s *Shipment) setID(id int) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("shipment id is invalid",
			fmt.Errorf("%d is not greater than 0", id))
	}
	s.id = id
	return nil
}

func (s *Shipment) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrShipmentHasNoLines
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	s.lines = make([]OrderLine, len(lines))
	copy(s.lines, lines)
	return nil
}

func (s *Shipment) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	s.address = address
	return nil
}

func (s *Shipment) setStatus(status ShipmentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}
