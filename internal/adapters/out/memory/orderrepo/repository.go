// Package orderrepo provides an in-memory implementation of the order repository.
// Intended for local development and tests where a PostgreSQL instance is not
// available. The repository stores deep snapshots, so aggregates mutated after
// Save do not leak into storage and retrieved aggregates do not alias stored state.
package orderrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"
)

// InMemoryOrderRepository implements OrderRepository backed by a map.
// Safe for concurrent use.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order
}

// NewInMemoryOrderRepository creates an empty in-memory order repository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[kernel.UUID]*order.Order),
	}
}

// Save stores a deep snapshot of the aggregate, replacing any previous
// snapshot for the same id. Saving the same state twice leaves storage unchanged.
func (r *InMemoryOrderRepository) Save(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snapshot, err := clone(aggregate)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[aggregate.ID()] = snapshot
	return nil
}

// Get retrieves a deep snapshot of the order with the given id.
func (r *InMemoryOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	stored, ok := r.orders[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return clone(stored)
}

// FindByCustomer retrieves snapshots of all orders placed by the given
// customer, oldest first.
func (r *InMemoryOrderRepository) FindByCustomer(_ context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*order.Order, 0)
	for _, stored := range r.orders {
		if !stored.CustomerID().IsEqual(customerID) {
			continue
		}
		snapshot, err := clone(stored)
		if err != nil {
			return nil, err
		}
		matched = append(matched, snapshot)
	}

	sortByCreatedAt(matched)
	return matched, nil
}

// FindStale retrieves unpaid orders still in StatusNew created before the cutoff.
func (r *InMemoryOrderRepository) FindStale(_ context.Context, cutoff time.Time) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stale := make([]*order.Order, 0)
	for _, stored := range r.orders {
		if stored.Status() != order.StatusNew {
			continue
		}
		if !stored.CreatedAt().Before(cutoff) {
			continue
		}
		if len(stored.Payments()) > 0 {
			continue
		}
		snapshot, err := clone(stored)
		if err != nil {
			return nil, err
		}
		stale = append(stale, snapshot)
	}

	sortByCreatedAt(stale)
	return stale, nil
}

// Delete removes the stored order. Deleting a nonexistent order is a no-op.
func (r *InMemoryOrderRepository) Delete(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

// clone produces an independent copy of the aggregate by restoring it from
// its own state. Shipments are entities behind pointers and are rebuilt so
// the copy shares nothing with the original.
func clone(aggregate *order.Order) (*order.Order, error) {
	shipments := make([]*order.Shipment, 0, len(aggregate.Shipments()))
	for _, shipment := range aggregate.Shipments() {
		copied, err := order.RestoreShipment(
			shipment.ID(), shipment.Lines(), shipment.Address(), shipment.Status())
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, copied)
	}

	return order.RestoreOrder(
		aggregate.ID(),
		aggregate.CustomerID(),
		aggregate.ShippingAddress(),
		aggregate.Lines(),
		aggregate.Payments(),
		aggregate.Discounts(),
		shipments,
		aggregate.Status(),
		aggregate.History(),
	)
}

func sortByCreatedAt(orders []*order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().Before(orders[j].CreatedAt())
	})
}
