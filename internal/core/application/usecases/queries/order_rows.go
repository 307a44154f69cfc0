package queries

import (
	"encoding/json"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Row types mirror the JSONB documents written by the order repository. The
// read side decodes them directly from the raw columns instead of rebuilding
// domain aggregates.

type orderLineRow struct {
	BookID         uuid.UUID `json:"book_id"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
}

type paymentRow struct {
	Kind        int   `json:"kind"`
	AmountCents int64 `json:"amount_cents"`
}

type discountRow struct {
	Code        string `json:"code"`
	AmountCents int64  `json:"amount_cents"`
}

type addressRow struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
}

type shipmentRow struct {
	ID      int            `json:"id"`
	Lines   []orderLineRow `json:"lines"`
	Address addressRow     `json:"address"`
	Status  int            `json:"status"`
}

func decodeLines(raw []byte) ([]OrderLineModel, error) {
	var rows []orderLineRow
	if len(raw) == 0 {
		return []OrderLineModel{}, nil
	}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	lines := make([]OrderLineModel, 0, len(rows))
	for _, row := range rows {
		bookID, err := kernel.UUIDFromBytes(row.BookID[:])
		if err != nil {
			return nil, err
		}
		lines = append(lines, OrderLineModel{
			BookID:         bookID,
			UnitPriceCents: row.UnitPriceCents,
			Quantity:       row.Quantity,
		})
	}
	return lines, nil
}

func decodePayments(raw []byte) ([]PaymentModel, error) {
	var rows []paymentRow
	if len(raw) == 0 {
		return []PaymentModel{}, nil
	}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	payments := make([]PaymentModel, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, PaymentModel{
			Kind:        order.PaymentKind(row.Kind).String(),
			AmountCents: row.AmountCents,
		})
	}
	return payments, nil
}

func decodeDiscounts(raw []byte) ([]DiscountModel, error) {
	var rows []discountRow
	if len(raw) == 0 {
		return []DiscountModel{}, nil
	}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	discounts := make([]DiscountModel, 0, len(rows))
	for _, row := range rows {
		discounts = append(discounts, DiscountModel{
			Code:        row.Code,
			AmountCents: row.AmountCents,
		})
	}
	return discounts, nil
}

func decodeShipments(raw []byte) ([]ShipmentModel, error) {
	var rows []shipmentRow
	if len(raw) == 0 {
		return []ShipmentModel{}, nil
	}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	shipments := make([]ShipmentModel, 0, len(rows))
	for _, row := range rows {
		lines := make([]OrderLineModel, 0, len(row.Lines))
		for _, lineRow := range row.Lines {
			bookID, err := kernel.UUIDFromBytes(lineRow.BookID[:])
			if err != nil {
				return nil, err
			}
			lines = append(lines, OrderLineModel{
				BookID:         bookID,
				UnitPriceCents: lineRow.UnitPriceCents,
				Quantity:       lineRow.Quantity,
			})
		}
		shipments = append(shipments, ShipmentModel{
			ID:    row.ID,
			Lines: lines,
			Address: AddressModel{
				Street:     row.Address.Street,
				City:       row.Address.City,
				Region:     row.Address.Region,
				PostalCode: row.Address.PostalCode,
			},
			Status: order.ShipmentStatus(row.Status).String(),
		})
	}
	return shipments, nil
}

// deriveTotals recomputes the order totals the same way the aggregate does:
// the total is the line sum less discounts, floored at zero, and the balance
// due is the total less payments received.
func deriveTotals(
	lines []OrderLineModel,
	payments []PaymentModel,
	discounts []DiscountModel,
) (totalCents int64, balanceDueCents int64) {
	for _, line := range lines {
		totalCents += line.UnitPriceCents * int64(line.Quantity)
	}
	for _, discount := range discounts {
		totalCents -= discount.AmountCents
	}
	if totalCents < 0 {
		totalCents = 0
	}

	balanceDueCents = totalCents
	for _, payment := range payments {
		balanceDueCents -= payment.AmountCents
	}
	return totalCents, balanceDueCents
}
