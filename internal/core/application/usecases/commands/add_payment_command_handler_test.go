package commands_test

import (
	"testing"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t)
	require.NoError(t, stored.AddLine(kernel.NewUUID(), kernel.NewMoney(5000), 1))

	cmd, err := commands.NewAddPaymentCommand(stored.ID(), order.PaymentKindCard, 3000)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		repo.On("Save", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddPaymentCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Len(t, stored.Payments(), 1)
	require.Equal(t, int64(2000), stored.BalanceDue().Cents())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAddPaymentCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewAddPaymentCommand(orderID, order.PaymentKindCash, 1500)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddPaymentCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAddPaymentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)

	h := commands.NewAddPaymentCommandHandler(factory)
	err := h.Handle(ctx, commands.AddPaymentCommand{})

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
