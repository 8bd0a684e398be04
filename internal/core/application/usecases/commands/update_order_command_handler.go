package commands

import (
	"context"

	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/services"
)

// UpdateOrderCommandHandler handles the business logic for editing a pending
// order. The stored line set is fully replaced by the requested set with
// freshly snapshotted prices; totals are recomputed with the same pricing
// rules as creation.
//
// The whole edit is one transaction guarded by the order's optimistic
// version, so two concurrent updates cannot both pass the pending check and
// silently overwrite each other: the slower one fails with a version
// conflict.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	pricer     services.OrderPricer
}

// NewUpdateOrderCommandHandler creates a handler for order edits.
func NewUpdateOrderCommandHandler(uowFactory UoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     services.NewOrderPricer(),
	}
}

// Handle processes the order edit command.
// Fails with a not-found error if the order does not exist, a state conflict
// if it is no longer pending, and a validation error if any requested product
// is unknown, unavailable or foreign to the order's restaurant.
// Returns the persisted order on success.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	existing, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	// Products are checked against the stored order's restaurant.
	rest, err := uow.RestaurantRepository().Get(ctx, existing.RestaurantID())
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

	if err = existing.ChangeAddress(cmd.Address()); err != nil {
		return nil, err
	}

	if err = existing.ApplyQuote(quote.Lines, quote.ShippingCosts, quote.Total); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return uow.OrderRepository().Get(ctx, existing.ID())
}
