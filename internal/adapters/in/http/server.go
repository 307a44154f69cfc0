// Package http exposes the bookstore use cases over an Echo REST API.
// Handlers translate JSON payloads into commands and queries; all business
// rules stay behind the application layer.
package http

import (
	"errors"
	"net/http"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	addOrderLineHandler      commands.AddOrderLineCommandHandler
	removeOrderLineHandler   commands.RemoveOrderLineCommandHandler
	addPaymentHandler        commands.AddPaymentCommandHandler
	applyDiscountHandler     commands.ApplyDiscountCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	createShipmentHandler    commands.CreateShipmentCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	addOrderLineHandler commands.AddOrderLineCommandHandler,
	removeOrderLineHandler commands.RemoveOrderLineCommandHandler,
	addPaymentHandler commands.AddPaymentCommandHandler,
	applyDiscountHandler commands.ApplyDiscountCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		addOrderLineHandler:      addOrderLineHandler,
		removeOrderLineHandler:   removeOrderLineHandler,
		addPaymentHandler:        addPaymentHandler,
		applyDiscountHandler:     applyDiscountHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		createShipmentHandler:    createShipmentHandler,
		getOrderHandler:          getOrderHandler,
		getCustomerOrdersHandler: getCustomerOrdersHandler,
	}
}

// RegisterRoutes mounts the command endpoints under /api/v1. These work
// against any storage backend.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.POST("/orders/:id/lines", s.AddOrderLine)
	v1.DELETE("/orders/:id/lines/:bookId", s.RemoveOrderLine)
	v1.POST("/orders/:id/payments", s.AddPayment)
	v1.POST("/orders/:id/discounts", s.ApplyDiscount)
	v1.POST("/orders/:id/status", s.ChangeOrderStatus)
	v1.POST("/orders/:id/shipments", s.CreateShipment)
}

// RegisterQueryRoutes mounts the read endpoints under /api/v1. The query
// handlers run raw SQL, so these routes are only served when a database
// connection is configured.
func (s *Server) RegisterQueryRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.GET("/orders/:id", s.GetOrder)
	v1.GET("/customers/:id/orders", s.GetCustomerOrders)
}

// CreateOrder handles POST /api/v1/orders - places a new empty order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID,
		req.Address.Street, req.Address.City, req.Address.Region, req.Address.PostalCode,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// AddOrderLine handles POST /api/v1/orders/:id/lines - adds a line item.
func (s *Server) AddOrderLine(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req AddLineRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	bookID, err := kernel.UUIDFromString(req.BookID)
	if err != nil {
		return badRequest(ctx, "Invalid book id: "+err.Error())
	}

	cmd, err := commands.NewAddOrderLineCommand(orderID, bookID, req.UnitPriceCents, req.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid line data: "+err.Error())
	}

	if handleErr := s.addOrderLineHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveOrderLine handles DELETE /api/v1/orders/:id/lines/:bookId - removes
// all lines for one book.
func (s *Server) RemoveOrderLine(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	bookID, err := kernel.UUIDFromString(ctx.Param("bookId"))
	if err != nil {
		return badRequest(ctx, "Invalid book id: "+err.Error())
	}

	cmd, err := commands.NewRemoveOrderLineCommand(orderID, bookID)
	if err != nil {
		return badRequest(ctx, "Invalid line data: "+err.Error())
	}

	if handleErr := s.removeOrderLineHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddPayment handles POST /api/v1/orders/:id/payments - records a payment.
func (s *Server) AddPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req AddPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := paymentKindFromString(req.Kind)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAddPaymentCommand(orderID, kind, req.AmountCents)
	if err != nil {
		return badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	if handleErr := s.addPaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApplyDiscount handles POST /api/v1/orders/:id/discounts - applies a discount code.
func (s *Server) ApplyDiscount(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req ApplyDiscountRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewApplyDiscountCommand(orderID, req.Code, req.AmountCents)
	if err != nil {
		return badRequest(ctx, "Invalid discount data: "+err.Error())
	}

	if handleErr := s.applyDiscountHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - advances the order lifecycle.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := statusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if handleErr := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateShipment handles POST /api/v1/orders/:id/shipments - ships a subset of lines.
func (s *Server) CreateShipment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req CreateShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	bookIDs := make([]kernel.UUID, 0, len(req.BookIDs))
	for _, raw := range req.BookIDs {
		bookID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "Invalid book id: "+idErr.Error())
		}
		bookIDs = append(bookIDs, bookID)
	}

	cmd, err := commands.NewCreateShipmentCommand(orderID, bookIDs)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	if handleErr := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves the full order view.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "Order not found")
		}
		return internalError(ctx, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, orderResponseFromView(view))
}

// GetCustomerOrders handles GET /api/v1/customers/:id/orders - lists a
// customer's orders, oldest first.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	summaries, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve customer orders")
	}

	response := make([]OrderSummaryResponse, len(summaries))
	for i, summary := range summaries {
		response[i] = OrderSummaryResponse{
			ID:              summary.ID.String(),
			Status:          summary.Status,
			LineCount:       summary.LineCount,
			TotalCents:      summary.TotalCents,
			BalanceDueCents: summary.BalanceDueCents,
			CreatedAt:       summary.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// commandError maps application errors to HTTP responses: missing aggregates
// become 404, everything else is treated as a rejected business operation.
func commandError(ctx echo.Context, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return notFound(ctx, err.Error())
	}
	return ctx.JSON(http.StatusConflict, ErrorResponse{
		Code:    http.StatusConflict,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, ErrorResponse{
		Code:    http.StatusNotFound,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
