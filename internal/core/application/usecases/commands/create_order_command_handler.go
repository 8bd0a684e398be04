package commands

import (
	"context"
	"time"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// It prices the requested lines against the catalog, snapshots unit prices
// and persists the order header together with its lines in one transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// created is the persisted pending order with computed totals
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	pricer     services.OrderPricer
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory for transactional persistence and catalog access.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     services.NewOrderPricer(),
	}
}

// Handle processes the order placement command.
// All catalog validation and pricing run before the order write; any
// failure inside the transaction rolls back both the header and the lines.
// Returns the persisted order on success.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rest, err := uow.RestaurantRepository().Get(ctx, cmd.RestaurantID())
	if err != nil {
		return nil, err
	}

	products, err := uow.ProductRepository().GetByIDs(ctx, productIDsOf(cmd.Lines()))
	if err != nil {
		return nil, err
	}

	quote, err := h.pricer.Quote(rest, products, cmd.Lines())
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.CustomerID(),
		cmd.RestaurantID(),
		cmd.Address(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = newOrder.ApplyQuote(quote.Lines, quote.ShippingCosts, quote.Total); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// Reload outside the finished transaction so the caller sees exactly
	// the committed state.
	return uow.OrderRepository().Get(ctx, newOrder.ID())
}

func productIDsOf(lines []services.LineRequest) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}
