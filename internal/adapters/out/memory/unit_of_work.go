// Package memory provides an in-memory implementation of the Unit of Work
// pattern for local development and tests. There is no real transaction
// support: Begin, Commit, and Rollback only validate call ordering, and every
// repository operation takes effect immediately.
package memory

import (
	"context"
	"errors"

	"bookstore/internal/adapters/out/memory/orderrepo"
	"bookstore/internal/core/ports"
)

// ErrNoActiveTransaction is returned when Commit or Rollback is called
// without a preceding Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// InMemoryUnitOfWorkFactory creates unit of work instances that share a single
// in-memory order repository.
type InMemoryUnitOfWorkFactory struct {
	orders *orderrepo.InMemoryOrderRepository
}

// NewInMemoryUnitOfWorkFactory creates a factory backed by the given repository.
func NewInMemoryUnitOfWorkFactory(orders *orderrepo.InMemoryOrderRepository) *InMemoryUnitOfWorkFactory {
	return &InMemoryUnitOfWorkFactory{orders: orders}
}

// Create produces a new UnitOfWork instance bound to the shared repository.
func (f *InMemoryUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &InMemoryUnitOfWork{orders: f.orders}
}

// InMemoryUnitOfWork mimics the transaction lifecycle over the in-memory
// store. Changes are applied immediately and Rollback does not undo them;
// callers that need rollback semantics must use the PostgreSQL adapter.
type InMemoryUnitOfWork struct {
	orders *orderrepo.InMemoryOrderRepository
	active bool
}

// Begin marks the unit of work as active. Repeated calls are safe.
func (uow *InMemoryUnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit ends the active unit of work.
func (uow *InMemoryUnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.active = false
	return nil
}

// Rollback ends the active unit of work. Already-applied changes remain.
func (uow *InMemoryUnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.active = false
	return nil
}

// OrderRepository returns the shared in-memory order repository.
func (uow *InMemoryUnitOfWork) OrderRepository() ports.OrderRepository {
	return uow.orders
}
