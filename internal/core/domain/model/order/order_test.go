package order_test

import (
	"testing"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress("1 Main St", "Springfield", "IL", "62701")
	require.NoError(t, err)
	return addr
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testAddress(t))
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	validCustomer := kernel.NewUUID()

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		o, err := order.NewOrder(validID, validCustomer, testAddress(t))

		require.NoError(t, err)
		assert.NotNil(t, o)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.True(t, o.CustomerID().IsEqual(validCustomer))
		assert.Equal(t, order.StatusNew, o.Status())
		assert.Empty(t, o.Lines())
		assert.Empty(t, o.Payments())
		assert.Empty(t, o.Discounts())
		assert.Empty(t, o.Shipments())
		assert.True(t, o.TotalPrice().IsZero())
		assert.True(t, o.BalanceDue().IsZero())
	})

	t.Run("should record initial status in history", func(t *testing.T) {
		o, err := order.NewOrder(validID, validCustomer, testAddress(t))

		require.NoError(t, err)
		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.StatusNew, history[0].Status())
		assert.WithinDuration(t, time.Now().UTC(), history[0].At(), time.Second)
		assert.Equal(t, history[0].At(), o.CreatedAt())
	})

	t.Run("should fail with invalid order ID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, validCustomer, testAddress(t))

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with invalid customer reference", func(t *testing.T) {
		var invalidCustomer kernel.UUID

		o, err := order.NewOrder(validID, invalidCustomer, testAddress(t))

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "customer")
	})

	t.Run("should fail with unconstructed address", func(t *testing.T) {
		var invalidAddress kernel.Address

		o, err := order.NewOrder(validID, validCustomer, invalidAddress)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "NewAddress")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order is valid", func(t *testing.T) {
		require.NoError(t, newTestOrder(t).Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order fails validation", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_IsEqual(t *testing.T) {
	t.Run("orders with same id are equal regardless of state", func(t *testing.T) {
		id := kernel.NewUUID()
		o1, _ := order.NewOrder(id, kernel.NewUUID(), testAddress(t))
		o2, _ := order.NewOrder(id, kernel.NewUUID(), testAddress(t))

		assert.True(t, o1.IsEqual(o2))
	})

	t.Run("orders with different ids are not equal", func(t *testing.T) {
		assert.False(t, newTestOrder(t).IsEqual(newTestOrder(t)))
	})

	t.Run("comparison with nil is false", func(t *testing.T) {
		assert.False(t, newTestOrder(t).IsEqual(nil))
	})
}

func TestOrder_AddLine(t *testing.T) {
	t.Run("should append line and recompute total", func(t *testing.T) {
		o := newTestOrder(t)
		bookID := kernel.NewUUID()

		require.NoError(t, o.AddLine(bookID, kernel.NewMoney(3000), 2))

		lines := o.Lines()
		require.Len(t, lines, 1)
		assert.True(t, lines[0].BookID().IsEqual(bookID))
		assert.Equal(t, int64(6000), o.TotalPrice().Cents())
	})

	t.Run("should keep insertion order", func(t *testing.T) {
		o := newTestOrder(t)
		first, second := kernel.NewUUID(), kernel.NewUUID()

		require.NoError(t, o.AddLine(first, kernel.NewMoney(1000), 1))
		require.NoError(t, o.AddLine(second, kernel.NewMoney(2000), 1))

		lines := o.Lines()
		require.Len(t, lines, 2)
		assert.True(t, lines[0].BookID().IsEqual(first))
		assert.True(t, lines[1].BookID().IsEqual(second))
	})

	t.Run("should fail with zero quantity and leave order unchanged", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.AddLine(kernel.NewUUID(), kernel.NewMoney(3000), 0)

		require.ErrorIs(t, err, order.ErrQuantityIsInvalid)
		assert.Empty(t, o.Lines())
		assert.True(t, o.TotalPrice().IsZero())
	})

	t.Run("should fail with negative quantity and leave order unchanged", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.AddLine(kernel.NewUUID(), kernel.NewMoney(3000), -1)

		require.ErrorIs(t, err, order.ErrQuantityIsInvalid)
		assert.Empty(t, o.Lines())
	})

	t.Run("same book may appear on several lines", func(t *testing.T) {
		o := newTestOrder(t)
		bookID := kernel.NewUUID()

		require.NoError(t, o.AddLine(bookID, kernel.NewMoney(1000), 1))
		require.NoError(t, o.AddLine(bookID, kernel.NewMoney(1000), 2))

		assert.Len(t, o.Lines(), 2)
		assert.Equal(t, int64(3000), o.TotalPrice().Cents())
	})
}

func TestOrder_RemoveLine(t *testing.T) {
	t.Run("should remove all lines for the book and recompute total", func(t *testing.T) {
		o := newTestOrder(t)
		removed, kept := kernel.NewUUID(), kernel.NewUUID()
		require.NoError(t, o.AddLine(removed, kernel.NewMoney(1000), 1))
		require.NoError(t, o.AddLine(kept, kernel.NewMoney(2000), 1))
		require.NoError(t, o.AddLine(removed, kernel.NewMoney(1000), 3))

		require.NoError(t, o.RemoveLine(removed))

		lines := o.Lines()
		require.Len(t, lines, 1)
		assert.True(t, lines[0].BookID().IsEqual(kept))
		assert.Equal(t, int64(2000), o.TotalPrice().Cents())
	})

	t.Run("removing an absent book is a no-op, not an error", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AddLine(kernel.NewUUID(), kernel.NewMoney(1000), 1))

		require.NoError(t, o.RemoveLine(kernel.NewUUID()))

		assert.Len(t, o.Lines(), 1)
		assert.Equal(t, int64(1000), o.TotalPrice().Cents())
	})

	t.Run("should fail with invalid book reference", func(t *testing.T) {
		o := newTestOrder(t)
		var invalidID kernel.UUID

		require.Error(t, o.RemoveLine(invalidID))
	})
}

func TestOrder_AddPayment(t *testing.T) {
	t.Run("should record payment and reflect it in balance due", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AddLine(kernel.NewUUID(), kernel.NewMoney(3000), 2))

		payment, err := order.NewPayment(order.PaymentKindCard, kernel.NewMoney(1000))
		require.NoError(t, err)
		require.NoError(t, o.AddPayment(payment))

		assert.Len(t, o.Payments(), 1)
		assert.Equal(t, int64(5000), o.BalanceDue().Cents())
	})

	t.Run("overpayment is permitted and balance goes negative", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AddLine(kernel.NewUUID(), kernel.NewMoney(1000), 1))

		payment, _ := order.NewPayment(order.PaymentKindGiftCertificate, kernel.NewMoney(2500))
		require.NoError(t, o.AddPayment(payment))

		assert.Equal(t, int64(-1500), o.BalanceDue().Cents())
	})

	t.Run("should reject unconstructed payment", func(t *testing.T) {
		o := newTestOrder(t)
		var p order.Payment

		require.ErrorIs(t, o.AddPayment(p), order.ErrPaymentIsNotConstructed)
		assert.Empty(t, o.Payments())
	})

	t.Run("payments do not affect total price", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AddLine(kernel.NewUUID(), kernel.NewMoney(1000), 1))

		payment, _ := order.NewPayment(order.PaymentKindCash, kernel.NewMoney(500))
		require.NoError(t, o.AddPayment(payment))

		assert.Equal(t, int64(1000), o.TotalPrice().Cents())
	})
}

func TestOrder_ApplyDiscount(t *testing.T) {
	t.Run("should reduce total by discount amount", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AddLine(kernel.NewUUID(), kernel.NewMoney(3000), 2))

		discount, err := order.NewDiscount("WELCOME20", kernel.NewMoney(2000))
		require.NoError(t, err)
		require.NoError(t, o.ApplyDiscount(discount))

		assert.Equal(t, int64(4000), o.TotalPrice().Cents())
	})

	t.Run("total is floored at zero, never negative", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AddLine(kernel.NewUUID(), kernel.NewMoney(1000), 1))

		discount, _ := order.NewDiscount("BIG", kernel.NewMoney(5000))
		require.NoError(t, o.ApplyDiscount(discount))

		assert.True(t, o.TotalPrice().IsZero())
	})

	t.Run("lines added after a clamping discount count in full against all discounts", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AddLine(kernel.NewUUID(), kernel.NewMoney(1000), 1))

		discount, _ := order.NewDiscount("BIG", kernel.NewMoney(5000))
		require.NoError(t, o.ApplyDiscount(discount))
		require.NoError(t, o.AddLine(kernel.NewUUID(), kernel.NewMoney(7000), 1))

		// max(0, 8000 - 5000): the floor is part of the recompute rule, not a sticky clamp
		assert.Equal(t, int64(3000), o.TotalPrice().Cents())
	})

	t.Run("multiple discounts accumulate", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AddLine(kernel.NewUUID(), kernel.NewMoney(10000), 1))

		d1, _ := order.NewDiscount("A", kernel.NewMoney(3000))
		d2, _ := order.NewDiscount("B", kernel.NewMoney(2000))
		require.NoError(t, o.ApplyDiscount(d1))
		require.NoError(t, o.ApplyDiscount(d2))

		assert.Equal(t, int64(5000), o.TotalPrice().Cents())
		assert.Len(t, o.Discounts(), 2)
	})

	t.Run("should reject unconstructed discount", func(t *testing.T) {
		o := newTestOrder(t)
		var d order.Discount

		require.ErrorIs(t, o.ApplyDiscount(d), order.ErrDiscountIsNotConstructed)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should follow the full lifecycle and append one history entry per change", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ChangeStatus(order.StatusProcessing))
		require.NoError(t, o.ChangeStatus(order.StatusShipped))
		require.NoError(t, o.ChangeStatus(order.StatusDelivered))

		assert.Equal(t, order.StatusDelivered, o.Status())
		history := o.History()
		require.Len(t, history, 4)
		assert.Equal(t, order.StatusNew, history[0].Status())
		assert.Equal(t, order.StatusProcessing, history[1].Status())
		assert.Equal(t, order.StatusShipped, history[2].Status())
		assert.Equal(t, order.StatusDelivered, history[3].Status())
	})

	t.Run("history timestamps are non-decreasing", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.StatusProcessing))
		require.NoError(t, o.ChangeStatus(order.StatusCancelled))

		history := o.History()
		for i := 1; i < len(history); i++ {
			assert.False(t, history[i].At().Before(history[i-1].At()))
		}
	})

	t.Run("rejected transition leaves status and history unchanged", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.StatusDelivered)

		require.Error(t, err)
		assert.Equal(t, order.StatusNew, o.Status())
		assert.Len(t, o.History(), 1)
	})

	t.Run("cancellation is allowed before shipment", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.StatusProcessing))

		require.NoError(t, o.ChangeStatus(order.StatusCancelled))
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("cancellation is rejected after shipment", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.StatusProcessing))
		require.NoError(t, o.ChangeStatus(order.StatusShipped))

		require.Error(t, o.ChangeStatus(order.StatusCancelled))
		assert.Equal(t, order.StatusShipped, o.Status())
	})
}

func TestOrder_CreateShipment(t *testing.T) {
	t.Run("should move requested lines into the shipment and recompute total", func(t *testing.T) {
		o := newTestOrder(t)
		shippedBook, keptBook := kernel.NewUUID(), kernel.NewUUID()
		require.NoError(t, o.AddLine(shippedBook, kernel.NewMoney(3000), 2))
		require.NoError(t, o.AddLine(keptBook, kernel.NewMoney(1500), 1))

		shipment, err := o.CreateShipment([]kernel.UUID{shippedBook})

		require.NoError(t, err)
		require.NotNil(t, shipment)
		assert.Equal(t, 1, shipment.ID())
		assert.Equal(t, order.ShipmentStatusPending, shipment.Status())

		shipped := shipment.Lines()
		require.Len(t, shipped, 1)
		assert.True(t, shipped[0].BookID().IsEqual(shippedBook))

		remaining := o.Lines()
		require.Len(t, remaining, 1)
		assert.True(t, remaining[0].BookID().IsEqual(keptBook))
		assert.Equal(t, int64(1500), o.TotalPrice().Cents())
	})

	t.Run("should snapshot the shipping address", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AddLine(kernel.NewUUID(), kernel.NewMoney(1000), 1))
		bookID := o.Lines()[0].BookID()

		shipment, err := o.CreateShipment([]kernel.UUID{bookID})
		require.NoError(t, err)

		newAddr, _ := kernel.NewAddress("9 Elm St", "Shelbyville", "IL", "62565")
		require.NoError(t, o.ChangeShippingAddress(newAddr))

		equal, err := shipment.Address().IsEqual(testAddress(t))
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("shipment ids are one-based and sequential", func(t *testing.T) {
		o := newTestOrder(t)
		b1, b2 := kernel.NewUUID(), kernel.NewUUID()
		require.NoError(t, o.AddLine(b1, kernel.NewMoney(1000), 1))
		require.NoError(t, o.AddLine(b2, kernel.NewMoney(2000), 1))

		s1, err := o.CreateShipment([]kernel.UUID{b1})
		require.NoError(t, err)
		s2, err := o.CreateShipment([]kernel.UUID{b2})
		require.NoError(t, err)

		assert.Equal(t, 1, s1.ID())
		assert.Equal(t, 2, s2.ID())
		assert.Len(t, o.Shipments(), 2)
	})

	t.Run("should fail with ErrItemNotInOrder and leave order unchanged", func(t *testing.T) {
		o := newTestOrder(t)
		present := kernel.NewUUID()
		require.NoError(t, o.AddLine(present, kernel.NewMoney(1000), 1))

		_, err := o.CreateShipment([]kernel.UUID{present, kernel.NewUUID()})

		require.ErrorIs(t, err, order.ErrItemNotInOrder)
		assert.Len(t, o.Lines(), 1)
		assert.Empty(t, o.Shipments())
		assert.Equal(t, int64(1000), o.TotalPrice().Cents())
	})

	t.Run("already shipped line cannot ship again", func(t *testing.T) {
		o := newTestOrder(t)
		bookID := kernel.NewUUID()
		require.NoError(t, o.AddLine(bookID, kernel.NewMoney(1000), 1))

		_, err := o.CreateShipment([]kernel.UUID{bookID})
		require.NoError(t, err)

		_, err = o.CreateShipment([]kernel.UUID{bookID})
		require.ErrorIs(t, err, order.ErrItemNotInOrder)
	})

	t.Run("should fail with no requested lines", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.CreateShipment(nil)

		require.Error(t, err)
	})
}

func TestOrder_Scenario(t *testing.T) {
	// End-to-end walk: add a line, discount, pay in full, ship everything.
	t.Run("order is paid and shipped", func(t *testing.T) {
		o := newTestOrder(t)
		bookID := kernel.NewUUID()

		require.NoError(t, o.AddLine(bookID, kernel.NewMoney(3000), 2))
		assert.Equal(t, int64(6000), o.TotalPrice().Cents())

		discount, _ := order.NewDiscount("LOYAL", kernel.NewMoney(2000))
		require.NoError(t, o.ApplyDiscount(discount))
		assert.Equal(t, int64(4000), o.TotalPrice().Cents())

		payment, _ := order.NewPayment(order.PaymentKindCard, kernel.NewMoney(4000))
		require.NoError(t, o.AddPayment(payment))
		assert.True(t, o.BalanceDue().IsZero())

		shipment, err := o.CreateShipment([]kernel.UUID{bookID})
		require.NoError(t, err)
		require.NotNil(t, shipment)

		// no lines remain, so the recomputed total drops to zero
		assert.Empty(t, o.Lines())
		assert.True(t, o.TotalPrice().IsZero())
	})
}

func TestOrder_AccessorsReturnCopies(t *testing.T) {
	t.Run("mutating a returned slice does not affect the aggregate", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AddLine(kernel.NewUUID(), kernel.NewMoney(1000), 1))

		lines := o.Lines()
		lines[0] = order.OrderLine{}

		require.NoError(t, o.Lines()[0].Validate())
	})
}

func TestRestoreOrder(t *testing.T) {
	buildParts := func(t *testing.T) (*order.Order, kernel.UUID) {
		t.Helper()
		o := newTestOrder(t)
		bookID := kernel.NewUUID()
		require.NoError(t, o.AddLine(bookID, kernel.NewMoney(3000), 2))
		require.NoError(t, o.AddLine(kernel.NewUUID(), kernel.NewMoney(1500), 1))
		payment, _ := order.NewPayment(order.PaymentKindCard, kernel.NewMoney(2000))
		require.NoError(t, o.AddPayment(payment))
		discount, _ := order.NewDiscount("LOYAL", kernel.NewMoney(500))
		require.NoError(t, o.ApplyDiscount(discount))
		require.NoError(t, o.ChangeStatus(order.StatusProcessing))
		_, err := o.CreateShipment([]kernel.UUID{bookID})
		require.NoError(t, err)
		return o, bookID
	}

	t.Run("should restore an order to its persisted state", func(t *testing.T) {
		original, _ := buildParts(t)

		restored, err := order.RestoreOrder(
			original.ID(),
			original.CustomerID(),
			original.ShippingAddress(),
			original.Lines(),
			original.Payments(),
			original.Discounts(),
			original.Shipments(),
			original.Status(),
			original.History(),
		)

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, original.Status(), restored.Status())
		assert.Len(t, restored.Lines(), len(original.Lines()))
		assert.Len(t, restored.Shipments(), len(original.Shipments()))
		assert.Equal(t, original.TotalPrice().Cents(), restored.TotalPrice().Cents())
		assert.Equal(t, original.BalanceDue().Cents(), restored.BalanceDue().Cents())
	})

	t.Run("restored order allocates the next shipment id correctly", func(t *testing.T) {
		original, _ := buildParts(t)
		restored, err := order.RestoreOrder(
			original.ID(), original.CustomerID(), original.ShippingAddress(),
			original.Lines(), original.Payments(), original.Discounts(),
			original.Shipments(), original.Status(), original.History(),
		)
		require.NoError(t, err)

		remaining := restored.Lines()
		require.NotEmpty(t, remaining)
		shipment, err := restored.CreateShipment([]kernel.UUID{remaining[0].BookID()})
		require.NoError(t, err)
		assert.Equal(t, 2, shipment.ID())
	})

	t.Run("should reject empty history", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := order.RestoreOrder(
			o.ID(), o.CustomerID(), o.ShippingAddress(),
			nil, nil, nil, nil, order.StatusNew, nil,
		)

		require.ErrorIs(t, err, order.ErrStatusHistoryIsRequired)
	})

	t.Run("should reject history that disagrees with status", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := order.RestoreOrder(
			o.ID(), o.CustomerID(), o.ShippingAddress(),
			nil, nil, nil, nil, order.StatusProcessing, o.History(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status history is invalid")
	})

	t.Run("should reject non-sequential shipment ids", func(t *testing.T) {
		o := newTestOrder(t)
		line, err := order.NewOrderLine(kernel.NewUUID(), kernel.NewMoney(1000), 1)
		require.NoError(t, err)
		shipment, err := order.RestoreShipment(3, []order.OrderLine{line}, o.ShippingAddress(), order.ShipmentStatusPending)
		require.NoError(t, err)

		_, err = order.RestoreOrder(
			o.ID(), o.CustomerID(), o.ShippingAddress(),
			nil, nil, nil, []*order.Shipment{shipment}, order.StatusNew, o.History(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sequential")
	})
}

func TestShipment_Lifecycle(t *testing.T) {
	newShipment := func(t *testing.T) *order.Shipment {
		t.Helper()
		o := newTestOrder(t)
		bookID := kernel.NewUUID()
		require.NoError(t, o.AddLine(bookID, kernel.NewMoney(1000), 1))
		s, err := o.CreateShipment([]kernel.UUID{bookID})
		require.NoError(t, err)
		return s
	}

	t.Run("pending shipment can be dispatched then delivered", func(t *testing.T) {
		s := newShipment(t)

		require.NoError(t, s.Dispatch())
		assert.Equal(t, order.ShipmentStatusDispatched, s.Status())

		require.NoError(t, s.Deliver())
		assert.Equal(t, order.ShipmentStatusDelivered, s.Status())
	})

	t.Run("cannot deliver before dispatch", func(t *testing.T) {
		s := newShipment(t)

		require.Error(t, s.Deliver())
		assert.Equal(t, order.ShipmentStatusPending, s.Status())
	})

	t.Run("cannot dispatch twice", func(t *testing.T) {
		s := newShipment(t)
		require.NoError(t, s.Dispatch())

		require.Error(t, s.Dispatch())
	})
}
