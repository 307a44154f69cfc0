package commands

import (
	"context"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
)

// AddPaymentCommandHandler loads an order, records a payment, and saves the order back.
type AddPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddPaymentCommandHandler creates a handler for recording payments.
func NewAddPaymentCommandHandler(uowFactory OrderUoWFactory) AddPaymentCommandHandler {
	return AddPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment command within a transaction.
func (h *AddPaymentCommandHandler) Handle(ctx context.Context, cmd AddPaymentCommand) error {
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

	payment, err := order.NewPayment(cmd.Kind(), kernel.NewMoney(cmd.AmountCents()))
	if err != nil {
		return err
	}

	if err = aggregate.AddPayment(payment); err != nil {
		return err
	}

	if err = orderRepo.Save(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
