package commands

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/order"
)

// CancelStaleOrdersCommandHandler finds abandoned orders and cancels them.
// An order is considered abandoned when it is still in "New" status, has no
// recorded payments, and was created longer ago than the command's max age.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelStaleOrdersCommandHandler creates a handler for stale order cleanup.
func NewCancelStaleOrdersCommandHandler(uowFactory OrderUoWFactory) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels every stale order within a single transaction and returns
// how many orders were cancelled.
func (h *CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	cutoff := time.Now().UTC().Add(-cmd.MaxAge())
	stale, err := orderRepo.FindStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	for _, aggregate := range stale {
		if err = aggregate.ChangeStatus(order.StatusCancelled); err != nil {
			return 0, err
		}
		if err = orderRepo.Save(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(stale), nil
}
