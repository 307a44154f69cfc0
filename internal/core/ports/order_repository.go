// Package ports defines repository interfaces for the bookstore domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations persist the complete aggregate state: lines, payments,
// discounts, shipments, and the status history.
type OrderRepository interface {
	// Save persists an order aggregate, inserting it on first save and
	// replacing the stored state on subsequent saves. Saving the same
	// aggregate state twice leaves storage unchanged.
	Save(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an errs.ObjectNotFoundError when no order has the given id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindByCustomer retrieves all orders placed by the given customer,
	// oldest first. Returns an empty slice when the customer has no orders.
	FindByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// FindStale retrieves orders still in StatusNew, created before the
	// cutoff, with no recorded payments. Used by the stale order
	// cancellation job.
	FindStale(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// Delete removes an order aggregate from storage.
	// Deleting an order that does not exist is a no-op, not an error.
	Delete(ctx context.Context, id kernel.UUID) error
}
