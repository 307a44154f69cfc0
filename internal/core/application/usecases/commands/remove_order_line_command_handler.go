package commands

import (
	"context"
)

// RemoveOrderLineCommandHandler loads an order, removes the matching lines,
// and saves the order back.
type RemoveOrderLineCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRemoveOrderLineCommandHandler creates a handler for removing order lines.
func NewRemoveOrderLineCommandHandler(uowFactory OrderUoWFactory) RemoveOrderLineCommandHandler {
	return RemoveOrderLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the remove line command within a transaction.
// Removing a book with no matching lines is not an error.
func (h *RemoveOrderLineCommandHandler) Handle(ctx context.Context, cmd RemoveOrderLineCommand) error {
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

	if err = aggregate.RemoveLine(cmd.BookID()); err != nil {
		return err
	}

	if err = orderRepo.Save(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
