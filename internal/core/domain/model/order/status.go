package order

import (
	"fmt"
	"time"

	"bookstore/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with an explicit transition table so every
// order follows the business workflow and no state is reachable by accident.
//
// State transitions:
//
//	New ────> Processing ────> Shipped ────> Delivered
//	 │            │
//	 └────────────┴──> Cancelled
//
// Cancellation is only reachable before shipment. Delivered and Cancelled
// are final states with no further transitions.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusNew is the initial status assigned when an order is created.
	StatusNew

	// StatusProcessing indicates the order has been accepted and is being prepared.
	StatusProcessing

	// StatusShipped indicates at least the final shipment for the order has left.
	StatusShipped

	// StatusDelivered indicates the order reached the customer. Final state.
	StatusDelivered

	// StatusCancelled indicates the order was abandoned before shipment. Final state.
	StatusCancelled
)

// getStatusStrings returns string representations for all Status values,
// including the invalid one, to support display.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusNew:        "New",
		StatusProcessing: "Processing",
		StatusShipped:    "Shipped",
		StatusDelivered:  "Delivered",
		StatusCancelled:  "Cancelled",
	}
}

// getAllowedTransitions returns the closed transition table.
// A status absent from the map is final.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusNew:        {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered},
	}
}

// Validate checks if the Status value is a member of the closed enumeration.
// StatusUnknown and out-of-range values are invalid. Used to reject status
// values arriving from external sources such as the database or HTTP layer.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Safe to call on any Status value; invalid values render as "Unknown".
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether no further transitions are allowed from this status.
func (s Status) IsFinal() bool {
	transitions, ok := getAllowedTransitions()[s]
	return !ok || len(transitions) == 0
}

// TransitionTo validates the transition from the current status to next
// and returns next on success.
//
// Returns:
//   - (next, nil) when the transition is allowed by the table
//   - (0, error) when next is invalid or the transition is not allowed
//
// Example:
//
//	newStatus, err := currentStatus.TransitionTo(StatusProcessing)
//	if err != nil {
//	    // transition rejected
//	}
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	for _, allowed := range getAllowedTransitions()[s] {
		if next == allowed {
			return next, nil
		}
	}

	return 0, errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
		fmt.Errorf("cannot transition from %s to %s", s, next))
}

// StatusChange records one entry of an order's status history:
// the status that was entered and when. History entries are immutable and
// appended in chronological order.
type StatusChange struct {
	status Status
	at     time.Time
}

// NewStatusChange creates a history record for a status entered at the given time.
func NewStatusChange(status Status, at time.Time) (StatusChange, error) {
	if err := status.Validate(); err != nil {
		return StatusChange{}, err
	}
	if at.IsZero() {
		return StatusChange{}, errs.NewValueIsRequiredError("status change time")
	}

	return StatusChange{status: status, at: at}, nil
}

// Status returns the status that was entered.
func (c StatusChange) Status() Status {
	return c.status
}

// At returns when the status was entered.
func (c StatusChange) At() time.Time {
	return c.at
}
