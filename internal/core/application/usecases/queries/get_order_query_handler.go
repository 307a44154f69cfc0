package queries

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order view straight from the database.
// The JSONB collection columns are decoded into read models without going
// through the domain aggregate.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Order %s is %s\n", view.ID, view.Status)
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the order read model.
// Returns an ObjectNotFoundError when no order has the requested ID.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			address_street,
			address_city,
			address_region,
			address_postal_code,
			lines,
			payments,
			discounts,
			shipments,
			status,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var (
		id          uuid.UUID
		customerID  uuid.UUID
		address     AddressModel
		rawLines    []byte
		rawPayments []byte
		rawDiscount []byte
		rawShipment []byte
		status      int
		createdAt   time.Time
	)

	err = rows.Scan(
		&id,
		&customerID,
		&address.Street,
		&address.City,
		&address.Region,
		&address.PostalCode,
		&rawLines,
		&rawPayments,
		&rawDiscount,
		&rawShipment,
		&status,
		&createdAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, err := buildOrderResponse(
		id, customerID, address,
		rawLines, rawPayments, rawDiscount, rawShipment,
		status, createdAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func buildOrderResponse(
	id uuid.UUID,
	customerID uuid.UUID,
	address AddressModel,
	rawLines, rawPayments, rawDiscounts, rawShipments []byte,
	status int,
	createdAt time.Time,
) (GetOrderQueryResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	customer, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	lines, err := decodeLines(rawLines)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	payments, err := decodePayments(rawPayments)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	discounts, err := decodeDiscounts(rawDiscounts)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	shipments, err := decodeShipments(rawShipments)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	totalCents, balanceDueCents := deriveTotals(lines, payments, discounts)

	return GetOrderQueryResponse{
		ID:              orderID,
		CustomerID:      customer,
		Status:          order.Status(status).String(),
		Address:         address,
		Lines:           lines,
		Payments:        payments,
		Discounts:       discounts,
		Shipments:       shipments,
		TotalCents:      totalCents,
		BalanceDueCents: balanceDueCents,
		CreatedAt:       createdAt,
	}, nil
}
