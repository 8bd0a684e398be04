// Package http is the inbound HTTP adapter: thin echo handlers that parse
// requests, dispatch commands and queries, and map domain errors to status
// codes. No business rules live here.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime/types"

	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/core/application/usecases/queries"
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/services"
	"deliverus/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	updateOrderHandler  commands.UpdateOrderCommandHandler
	deleteOrderHandler  commands.DeleteOrderCommandHandler
	confirmOrderHandler commands.ConfirmOrderCommandHandler
	sendOrderHandler    commands.SendOrderCommandHandler
	deliverOrderHandler commands.DeliverOrderCommandHandler

	getOrderHandler            queries.GetOrderQueryHandler
	getRestaurantOrdersHandler queries.GetRestaurantOrdersQueryHandler
	getCustomerOrdersHandler   queries.GetCustomerOrdersQueryHandler
	getOrderAnalyticsHandler   queries.GetOrderAnalyticsQueryHandler
}

// NewServer creates an HTTP server wired with the application's command and
// query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	sendOrderHandler commands.SendOrderCommandHandler,
	deliverOrderHandler commands.DeliverOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getRestaurantOrdersHandler queries.GetRestaurantOrdersQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	getOrderAnalyticsHandler queries.GetOrderAnalyticsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		updateOrderHandler:         updateOrderHandler,
		deleteOrderHandler:         deleteOrderHandler,
		confirmOrderHandler:        confirmOrderHandler,
		sendOrderHandler:           sendOrderHandler,
		deliverOrderHandler:        deliverOrderHandler,
		getOrderHandler:            getOrderHandler,
		getRestaurantOrdersHandler: getRestaurantOrdersHandler,
		getCustomerOrdersHandler:   getCustomerOrdersHandler,
		getOrderAnalyticsHandler:   getOrderAnalyticsHandler,
	}
}

// RegisterRoutes attaches all order routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/orders", s.CreateOrder)
	e.GET("/orders/:orderId", s.GetOrder)
	e.PUT("/orders/:orderId", s.UpdateOrder)
	e.DELETE("/orders/:orderId", s.DeleteOrder)
	e.POST("/orders/:orderId/confirm", s.ConfirmOrder)
	e.POST("/orders/:orderId/send", s.SendOrder)
	e.POST("/orders/:orderId/deliver", s.DeliverOrder)

	e.GET("/restaurants/:restaurantId/orders", s.GetRestaurantOrders)
	e.GET("/restaurants/:restaurantId/analytics", s.GetRestaurantAnalytics)
	e.GET("/customers/:customerId/orders", s.GetCustomerOrders)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateOrder handles POST /orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(body.CustomerID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	restaurantID, err := kernel.UUIDFromString(body.RestaurantID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	lines, err := lineRequestsFromBody(body.Products)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(customerID, restaurantID, body.Address, lines)
	if err != nil {
		return errorResponse(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(created))
}

// GetOrder handles GET /orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromResponse(*resp))
}

// UpdateOrder handles PUT /orders/:orderId - edits a pending order, fully
// replacing its line set.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body UpdateOrder
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lines, err := lineRequestsFromBody(body.Products)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, body.Address, lines)
	if err != nil {
		return errorResponse(ctx, err)
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

// DeleteOrder handles DELETE /orders/:orderId - destroys a pending order.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmOrder handles POST /orders/:orderId/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	confirmed, err := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(confirmed))
}

// SendOrder handles POST /orders/:orderId/send.
func (s *Server) SendOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewSendOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	sent, err := s.sendOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(sent))
}

// DeliverOrder handles POST /orders/:orderId/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	delivered, err := s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(delivered))
}

// GetRestaurantOrders handles GET /restaurants/:restaurantId/orders with
// optional status, from and to query parameters.
func (s *Server) GetRestaurantOrders(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("restaurantId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var status *order.Status
	if v := ctx.QueryParam("status"); v != "" {
		parsed, parseErr := order.ParseStatus(v)
		if parseErr != nil {
			return errorResponse(ctx, parseErr)
		}
		status = &parsed
	}

	from, err := dateParam(ctx, "from")
	if err != nil {
		return errorResponse(ctx, err)
	}
	to, err := dateParam(ctx, "to")
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetRestaurantOrdersQuery(restaurantID, status, from, to)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orders, err := s.getRestaurantOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromResponses(orders))
}

// GetRestaurantAnalytics handles GET /restaurants/:restaurantId/analytics.
func (s *Server) GetRestaurantAnalytics(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("restaurantId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderAnalyticsQuery(restaurantID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	analytics, err := s.getOrderAnalyticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Analytics{
		RestaurantID:            analytics.RestaurantID.String(),
		NumYesterdayOrders:      analytics.NumYesterdayOrders,
		NumPendingOrders:        analytics.NumPendingOrders,
		NumDeliveredTodayOrders: analytics.NumDeliveredTodayOrders,
		InvoicedToday:           analytics.InvoicedToday.String(),
	})
}

// GetCustomerOrders handles GET /customers/:customerId/orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromResponses(orders))
}

func lineRequestsFromBody(products []NewOrderProduct) ([]services.LineRequest, error) {
	lines := make([]services.LineRequest, 0, len(products))
	for _, p := range products {
		productID, err := kernel.UUIDFromString(p.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, services.LineRequest{ProductID: productID, Quantity: p.Quantity})
	}
	return lines, nil
}

// dateParam parses an optional YYYY-MM-DD query parameter.
func dateParam(ctx echo.Context, name string) (*time.Time, error) {
	v := ctx.QueryParam(name)
	if v == "" {
		return nil, nil
	}

	parsed, err := time.ParseInLocation(types.DateFormat, v, time.Local)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &parsed, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps domain errors to HTTP status codes: missing objects to
// 404, validation failures to 422, state and version conflicts to 409,
// anything unexpected to 500.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrStateConflict), errors.Is(err, errs.ErrVersionConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusUnprocessableEntity
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
