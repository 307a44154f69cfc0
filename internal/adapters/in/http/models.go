package http

import (
	"fmt"
	"time"

	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/order"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressPayload carries a shipping address in requests and responses.
type AddressPayload struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID string         `json:"customer_id"`
	Address    AddressPayload `json:"address"`
}

// CreateOrderResponse returns the identifier assigned to a new order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// AddLineRequest is the body of POST /api/v1/orders/:id/lines.
type AddLineRequest struct {
	BookID         string `json:"book_id"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// AddPaymentRequest is the body of POST /api/v1/orders/:id/payments.
type AddPaymentRequest struct {
	Kind        string `json:"kind"`
	AmountCents int64  `json:"amount_cents"`
}

// ApplyDiscountRequest is the body of POST /api/v1/orders/:id/discounts.
type ApplyDiscountRequest struct {
	Code        string `json:"code"`
	AmountCents int64  `json:"amount_cents"`
}

// ChangeStatusRequest is the body of POST /api/v1/orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// CreateShipmentRequest is the body of POST /api/v1/orders/:id/shipments.
type CreateShipmentRequest struct {
	BookIDs []string `json:"book_ids"`
}

// OrderLinePayload is one line item in an order response.
type OrderLinePayload struct {
	BookID         string `json:"book_id"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// PaymentPayload is one payment record in an order response.
type PaymentPayload struct {
	Kind        string `json:"kind"`
	AmountCents int64  `json:"amount_cents"`
}

// DiscountPayload is one applied discount in an order response.
type DiscountPayload struct {
	Code        string `json:"code"`
	AmountCents int64  `json:"amount_cents"`
}

// ShipmentPayload is one shipment in an order response.
type ShipmentPayload struct {
	ID      int                `json:"id"`
	Lines   []OrderLinePayload `json:"lines"`
	Address AddressPayload     `json:"address"`
	Status  string             `json:"status"`
}

// OrderResponse is the full order view returned by GET /api/v1/orders/:id.
type OrderResponse struct {
	ID              string             `json:"id"`
	CustomerID      string             `json:"customer_id"`
	Status          string             `json:"status"`
	Address         AddressPayload     `json:"address"`
	Lines           []OrderLinePayload `json:"lines"`
	Payments        []PaymentPayload   `json:"payments"`
	Discounts       []DiscountPayload  `json:"discounts"`
	Shipments       []ShipmentPayload  `json:"shipments"`
	TotalCents      int64              `json:"total_cents"`
	BalanceDueCents int64              `json:"balance_due_cents"`
	CreatedAt       time.Time          `json:"created_at"`
}

// OrderSummaryResponse is one entry returned by GET /api/v1/customers/:id/orders.
type OrderSummaryResponse struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	LineCount       int       `json:"line_count"`
	TotalCents      int64     `json:"total_cents"`
	BalanceDueCents int64     `json:"balance_due_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

func orderResponseFromView(view queries.GetOrderQueryResponse) OrderResponse {
	shipments := make([]ShipmentPayload, len(view.Shipments))
	for i, shipment := range view.Shipments {
		shipments[i] = ShipmentPayload{
			ID:      shipment.ID,
			Lines:   linePayloads(shipment.Lines),
			Address: addressPayload(shipment.Address),
			Status:  shipment.Status,
		}
	}

	payments := make([]PaymentPayload, len(view.Payments))
	for i, payment := range view.Payments {
		payments[i] = PaymentPayload{Kind: payment.Kind, AmountCents: payment.AmountCents}
	}

	discounts := make([]DiscountPayload, len(view.Discounts))
	for i, discount := range view.Discounts {
		discounts[i] = DiscountPayload{Code: discount.Code, AmountCents: discount.AmountCents}
	}

	return OrderResponse{
		ID:              view.ID.String(),
		CustomerID:      view.CustomerID.String(),
		Status:          view.Status,
		Address:         addressPayload(view.Address),
		Lines:           linePayloads(view.Lines),
		Payments:        payments,
		Discounts:       discounts,
		Shipments:       shipments,
		TotalCents:      view.TotalCents,
		BalanceDueCents: view.BalanceDueCents,
		CreatedAt:       view.CreatedAt,
	}
}

func linePayloads(lines []queries.OrderLineModel) []OrderLinePayload {
	payloads := make([]OrderLinePayload, len(lines))
	for i, line := range lines {
		payloads[i] = OrderLinePayload{
			BookID:         line.BookID.String(),
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
		}
	}
	return payloads
}

func addressPayload(address queries.AddressModel) AddressPayload {
	return AddressPayload{
		Street:     address.Street,
		City:       address.City,
		Region:     address.Region,
		PostalCode: address.PostalCode,
	}
}

// paymentKindFromString parses the wire representation of a payment kind.
// Accepts the same names PaymentKind.String produces.
func paymentKindFromString(s string) (order.PaymentKind, error) {
	kinds := map[string]order.PaymentKind{
		"Card":            order.PaymentKindCard,
		"Cash":            order.PaymentKindCash,
		"GiftCertificate": order.PaymentKindGiftCertificate,
	}
	kind, ok := kinds[s]
	if !ok {
		return order.PaymentKindUnknown, fmt.Errorf("unknown payment kind: %q", s)
	}
	return kind, nil
}

// statusFromString parses the wire representation of an order status.
// Accepts the same names Status.String produces.
func statusFromString(s string) (order.Status, error) {
	statuses := map[string]order.Status{
		"New":        order.StatusNew,
		"Processing": order.StatusProcessing,
		"Shipped":    order.StatusShipped,
		"Delivered":  order.StatusDelivered,
		"Cancelled":  order.StatusCancelled,
	}
	status, ok := statuses[s]
	if !ok {
		return order.StatusUnknown, fmt.Errorf("unknown order status: %q", s)
	}
	return status, nil
}
