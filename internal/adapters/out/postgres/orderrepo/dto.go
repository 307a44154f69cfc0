// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The aggregate's owned collections (lines, payments, discounts, shipments,
// status history) are stored as JSONB documents in the orders row: the
// aggregate is always loaded and saved as a whole, so there is nothing to
// gain from separate child tables, and the single-row layout keeps Save atomic
// without touching multiple tables.
//
// The derived total price is intentionally not persisted; it is recomputed by
// RestoreOrder on load.
type OrderDTO struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Address    AddressDTO        `gorm:"embedded;embeddedPrefix:address_"`
	Lines      []OrderLineDTO    `gorm:"type:jsonb;serializer:json"`
	Payments   []PaymentDTO      `gorm:"type:jsonb;serializer:json"`
	Discounts  []DiscountDTO     `gorm:"type:jsonb;serializer:json"`
	Shipments  []ShipmentDTO     `gorm:"type:jsonb;serializer:json"`
	Status     int               `gorm:"type:int;not null;index"`
	History    []StatusChangeDTO `gorm:"type:jsonb;serializer:json"`
	CreatedAt  time.Time         `gorm:"not null;index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded shipping address columns within the order table.
type AddressDTO struct {
	Street     string `gorm:"type:varchar(255);not null" json:"street"`
	City       string `gorm:"type:varchar(255);not null" json:"city"`
	Region     string `gorm:"type:varchar(255);not null" json:"region"`
	PostalCode string `gorm:"type:varchar(32);not null" json:"postal_code"`
}

// OrderLineDTO represents one line item within the JSONB lines document.
type OrderLineDTO struct {
	BookID         uuid.UUID `json:"book_id"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
}

// PaymentDTO represents one payment record within the JSONB payments document.
type PaymentDTO struct {
	Kind        int   `json:"kind"`
	AmountCents int64 `json:"amount_cents"`
}

// DiscountDTO represents one applied discount within the JSONB discounts document.
type DiscountDTO struct {
	Code        string `json:"code"`
	AmountCents int64  `json:"amount_cents"`
}

// ShipmentDTO represents one shipment within the JSONB shipments document,
// including the address snapshotted at shipment creation.
type ShipmentDTO struct {
	ID      int            `json:"id"`
	Lines   []OrderLineDTO `json:"lines"`
	Address AddressDTO     `json:"address"`
	Status  int            `json:"status"`
}

// StatusChangeDTO represents one status history entry within the JSONB history document.
type StatusChangeDTO struct {
	Status int       `json:"status"`
	At     time.Time `json:"at"`
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all owned collections including shipments with their address snapshots.
func fromDomain(aggregate *order.Order) OrderDTO {
	shipments := make([]ShipmentDTO, 0, len(aggregate.Shipments()))
	for _, shipment := range aggregate.Shipments() {
		shipments = append(shipments, ShipmentDTO{
			ID:      shipment.ID(),
			Lines:   linesFromDomain(shipment.Lines()),
			Address: addressFromDomain(shipment.Address()),
			Status:  int(shipment.Status()),
		})
	}

	payments := make([]PaymentDTO, 0, len(aggregate.Payments()))
	for _, payment := range aggregate.Payments() {
		payments = append(payments, PaymentDTO{
			Kind:        int(payment.Kind()),
			AmountCents: payment.Amount().Cents(),
		})
	}

	discounts := make([]DiscountDTO, 0, len(aggregate.Discounts()))
	for _, discount := range aggregate.Discounts() {
		discounts = append(discounts, DiscountDTO{
			Code:        discount.Code(),
			AmountCents: discount.Amount().Cents(),
		})
	}

	history := make([]StatusChangeDTO, 0, len(aggregate.History()))
	for _, change := range aggregate.History() {
		history = append(history, StatusChangeDTO{
			Status: int(change.Status()),
			At:     change.At(),
		})
	}

	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		Address:    addressFromDomain(aggregate.ShippingAddress()),
		Lines:      linesFromDomain(aggregate.Lines()),
		Payments:   payments,
		Discounts:  discounts,
		Shipments:  shipments,
		Status:     int(aggregate.Status()),
		History:    history,
		CreatedAt:  aggregate.CreatedAt(),
	}
}

func linesFromDomain(lines []order.OrderLine) []OrderLineDTO {
	out := make([]OrderLineDTO, 0, len(lines))
	for _, line := range lines {
		out = append(out, OrderLineDTO{
			BookID:         line.BookID().Bytes(),
			UnitPriceCents: line.UnitPrice().Cents(),
			Quantity:       line.Quantity(),
		})
	}
	return out
}

func addressFromDomain(address kernel.Address) AddressDTO {
	return AddressDTO{
		Street:     address.Street(),
		City:       address.City(),
		Region:     address.Region(),
		PostalCode: address.PostalCode(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including shipments and the status
// history using RestoreOrder, which revalidates everything and recomputes
// the total price.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	address, err := addressToDomain(dto.Address)
	if err != nil {
		return nil, err
	}

	lines, err := linesToDomain(dto.Lines)
	if err != nil {
		return nil, err
	}

	payments := make([]order.Payment, 0, len(dto.Payments))
	for _, p := range dto.Payments {
		payment, paymentErr := order.NewPayment(order.PaymentKind(p.Kind), kernel.NewMoney(p.AmountCents))
		if paymentErr != nil {
			return nil, paymentErr
		}
		payments = append(payments, payment)
	}

	discounts := make([]order.Discount, 0, len(dto.Discounts))
	for _, d := range dto.Discounts {
		discount, discountErr := order.NewDiscount(d.Code, kernel.NewMoney(d.AmountCents))
		if discountErr != nil {
			return nil, discountErr
		}
		discounts = append(discounts, discount)
	}

	shipments := make([]*order.Shipment, 0, len(dto.Shipments))
	for _, s := range dto.Shipments {
		shipment, shipmentErr := shipmentToDomain(s)
		if shipmentErr != nil {
			return nil, shipmentErr
		}
		shipments = append(shipments, shipment)
	}

	history := make([]order.StatusChange, 0, len(dto.History))
	for _, h := range dto.History {
		change, changeErr := order.NewStatusChange(order.Status(h.Status), h.At)
		if changeErr != nil {
			return nil, changeErr
		}
		history = append(history, change)
	}

	return order.RestoreOrder(
		id, customerID, address,
		lines, payments, discounts, shipments,
		order.Status(dto.Status), history,
	)
}

func linesToDomain(dtos []OrderLineDTO) ([]order.OrderLine, error) {
	lines := make([]order.OrderLine, 0, len(dtos))
	for _, dto := range dtos {
		bookID, err := kernel.UUIDFromBytes(dto.BookID[:])
		if err != nil {
			return nil, err
		}
		line, err := order.NewOrderLine(bookID, kernel.NewMoney(dto.UnitPriceCents), dto.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	return kernel.NewAddress(dto.Street, dto.City, dto.Region, dto.PostalCode)
}

// shipmentToDomain converts a shipment DTO to its domain entity.
// Uses RestoreShipment to reconstruct the entity with its persisted status.
func shipmentToDomain(dto ShipmentDTO) (*order.Shipment, error) {
	lines, err := linesToDomain(dto.Lines)
	if err != nil {
		return nil, err
	}

	address, err := addressToDomain(dto.Address)
	if err != nil {
		return nil, err
	}

	return order.RestoreShipment(dto.ID, lines, address, order.ShipmentStatus(dto.Status))
}
