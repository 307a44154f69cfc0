package queries

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler lists a customer's orders from the database.
// Returns lightweight summaries rather than full aggregates; totals are
// derived from the stored line, payment and discount documents.
//
// Example:
//
//	handler := NewGetCustomerOrdersQueryHandler(db)
//	query, _ := NewGetCustomerOrdersQuery(customerID)
//
//	summaries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get customer orders: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Customer has %d order(s)\n", len(summaries))
type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerOrdersQueryHandler creates a handler for customer order queries.
// Requires a GORM database connection for query execution.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle executes the query to list all orders of one customer.
// Results are sorted by creation time, oldest first. A customer with no
// orders yields an empty slice, not an error.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]GetCustomerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	summaries := make([]GetCustomerOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			lines,
			payments,
			discounts,
			status,
			created_at
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at
	`, query.CustomerID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			rawLines    []byte
			rawPayments []byte
			rawDiscount []byte
			status      int
			createdAt   time.Time
		)

		err = rows.Scan(
			&id,
			&rawLines,
			&rawPayments,
			&rawDiscount,
			&status,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		lines, linesErr := decodeLines(rawLines)
		if linesErr != nil {
			return nil, linesErr
		}

		payments, paymentsErr := decodePayments(rawPayments)
		if paymentsErr != nil {
			return nil, paymentsErr
		}

		discounts, discountsErr := decodeDiscounts(rawDiscount)
		if discountsErr != nil {
			return nil, discountsErr
		}

		totalCents, balanceDueCents := deriveTotals(lines, payments, discounts)

		summaries = append(summaries, GetCustomerOrdersQueryResponse{
			ID:              orderID,
			Status:          order.Status(status).String(),
			LineCount:       len(lines),
			TotalCents:      totalCents,
			BalanceDueCents: balanceDueCents,
			CreatedAt:       createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
