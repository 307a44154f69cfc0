package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var (
	ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
		"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
	)
)

// GetCustomerOrdersQuery retrieves summaries of all orders placed by one
// customer, oldest first.
//
// Example:
//
//	query, err := NewGetCustomerOrdersQuery(customerID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetCustomerOrdersQueryHandler(db)
//
//	summaries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get customer orders: %w", err)
//	}
//
//	for _, summary := range summaries {
//	    fmt.Printf("%s %s: %d cents due\n", summary.ID, summary.Status, summary.BalanceDueCents)
//	}
type GetCustomerOrdersQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a query for a customer's order history.
// Returns an error when the customer ID was not properly constructed.
func NewGetCustomerOrdersQuery(customerID kernel.UUID) (GetCustomerOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return GetCustomerOrdersQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCustomerOrdersQueryIsNotConstructed if validation fails.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the identifier of the customer whose orders to retrieve.
func (q GetCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetCustomerOrdersQueryResponse is one order summary in a customer's history.
// Totals are derived at read time the same way the aggregate computes them.
type GetCustomerOrdersQueryResponse struct {
	ID              kernel.UUID
	Status          string
	LineCount       int
	TotalCents      int64
	BalanceDueCents int64
	CreatedAt       time.Time
}
