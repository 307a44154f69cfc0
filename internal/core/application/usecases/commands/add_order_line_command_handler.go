package commands

import (
	"context"

	"bookstore/internal/core/domain/model/kernel"
)

// AddOrderLineCommandHandler loads an order, adds a line to it, and saves it back.
type AddOrderLineCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddOrderLineCommandHandler creates a handler for adding order lines.
func NewAddOrderLineCommandHandler(uowFactory OrderUoWFactory) AddOrderLineCommandHandler {
	return AddOrderLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add line command within a transaction.
// The aggregate enforces the quantity and total price rules; a rejected
// line leaves the stored order untouched.
func (h *AddOrderLineCommandHandler) Handle(ctx context.Context, cmd AddOrderLineCommand) error {
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

	if err = aggregate.AddLine(cmd.BookID(), kernel.NewMoney(cmd.UnitPriceCents()), cmd.Quantity()); err != nil {
		return err
	}

	if err = orderRepo.Save(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
