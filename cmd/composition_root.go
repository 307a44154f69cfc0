package cmd

import (
	"bookstore/internal/adapters/out/memory"
	memoryorderrepo "bookstore/internal/adapters/out/memory/orderrepo"
	"bookstore/internal/adapters/out/postgres"
	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
}

// NewCompositionRoot wires the application for the configured storage
// backend. gormDB may be nil when the memory backend is selected; the raw
// SQL query handlers are then unavailable (see SupportsQueries).
func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	root := CompositionRoot{gormDB: gormDB}

	if config.StorageBackend == StorageBackendMemory {
		root.uowFactory = memory.NewInMemoryUnitOfWorkFactory(memoryorderrepo.NewInMemoryOrderRepository())
	} else {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	}

	return root
}

// SupportsQueries reports whether the read side is available. The query
// handlers run raw SQL and need a database connection; the memory backend
// serves commands only.
func (c *CompositionRoot) SupportsQueries() bool {
	return c.gormDB != nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddOrderLineCommandHandler() commands.AddOrderLineCommandHandler {
	return commands.NewAddOrderLineCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRemoveOrderLineCommandHandler() commands.RemoveOrderLineCommandHandler {
	return commands.NewRemoveOrderLineCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddPaymentCommandHandler() commands.AddPaymentCommandHandler {
	return commands.NewAddPaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApplyDiscountCommandHandler() commands.ApplyDiscountCommandHandler {
	return commands.NewApplyDiscountCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	return commands.NewCancelStaleOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
