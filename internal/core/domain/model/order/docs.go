// Package order provides the Order aggregate for the bookstore system.
// It implements the single consistency boundary around a customer's order:
// line items, payments, discounts, shipments, and the status history are all
// owned by the Order root and mutated exclusively through it.
//
// The package includes:
//   - Order: the aggregate root enforcing all order invariants
//   - OrderLine, Payment, Discount: immutable value objects owned by the order
//   - Shipment: an entity scoped to its order, created by splitting off lines
//   - Status and ShipmentStatus: state machines with closed transition tables
//
// Key business rules:
//   - the order total is always derived: max(0, sum of lines - sum of discounts)
//   - payments and discounts are append-only and always positive
//   - shipping a line removes it from the order; a line is never in two shipments
//   - status follows New -> Processing -> Shipped -> Delivered, with
//     cancellation possible only before shipment
//   - the status history is append-only with non-decreasing timestamps
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
