package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves the full read model of a single order by its ID.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderQueryHandler(db)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %s: %s, %d line(s), due %d cents\n",
//	    view.ID, view.Status, len(view.Lines), view.BalanceDueCents)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order's read model.
// Returns an error when the order ID was not properly constructed.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full order read model: header fields plus the
// owned collections, with statuses and payment kinds rendered as strings and
// the derived totals computed at read time.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	Status          string
	Address         AddressModel
	Lines           []OrderLineModel
	Payments        []PaymentModel
	Discounts       []DiscountModel
	Shipments       []ShipmentModel
	TotalCents      int64
	BalanceDueCents int64
	CreatedAt       time.Time
}

// AddressModel is the shipping address portion of an order read model.
type AddressModel struct {
	Street     string
	City       string
	Region     string
	PostalCode string
}

// OrderLineModel is one line item of an order read model.
type OrderLineModel struct {
	BookID         kernel.UUID
	UnitPriceCents int64
	Quantity       int
}

// PaymentModel is one payment record of an order read model.
type PaymentModel struct {
	Kind        string
	AmountCents int64
}

// DiscountModel is one applied discount of an order read model.
type DiscountModel struct {
	Code        string
	AmountCents int64
}

// ShipmentModel is one shipment of an order read model, including the address
// snapshotted when the shipment was created.
type ShipmentModel struct {
	ID      int
	Lines   []OrderLineModel
	Address AddressModel
	Status  string
}
