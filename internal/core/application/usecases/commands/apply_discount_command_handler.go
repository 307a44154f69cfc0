package commands

import (
	"context"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
)

// ApplyDiscountCommandHandler loads an order, applies a discount, and saves the order back.
type ApplyDiscountCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApplyDiscountCommandHandler creates a handler for applying discounts.
func NewApplyDiscountCommandHandler(uowFactory OrderUoWFactory) ApplyDiscountCommandHandler {
	return ApplyDiscountCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the discount command within a transaction.
// The aggregate recomputes its total with the new discount applied.
func (h *ApplyDiscountCommandHandler) Handle(ctx context.Context, cmd ApplyDiscountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	discount, err := order.NewDiscount(cmd.Code(), kernel.NewMoney(cmd.AmountCents()))
	if err != nil {
		return err
	}

	if err = aggregate.ApplyDiscount(discount); err != nil {
		return err
	}

	if err = orderRepo.Save(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
