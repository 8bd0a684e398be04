package commands

import (
	"context"
	"log/slog"
	"time"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
)

// DeliverOrderCommandHandler stamps deliveredAt on a sent order and then
// refreshes the owning restaurant's rolling average service time.
//
// The two writes form an explicit two-phase contract: the order transition
// commits on its own, and the average recompute runs afterwards as a
// best-effort side effect. A failed recompute is logged and reported to the
// caller as success, never rolling back the already-committed transition;
// the periodic service-time reconciliation job heals missed recomputes.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewDeliverOrderCommandHandler creates a handler for order delivery.
func NewDeliverOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "deliver_order_command_handler"),
	}
}

// Handle processes the delivery command and returns the updated order.
func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*order.Order, error) {
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

	if err = existing.Deliver(time.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The transition is committed; the average recompute must not undo it.
	h.refreshAverageServiceTime(ctx, existing.RestaurantID())

	return uow.OrderRepository().Get(ctx, existing.ID())
}

// refreshAverageServiceTime recomputes the restaurant's average minutes from
// order creation to delivery across its delivered orders and persists it.
// Runs outside any transaction on the committed state.
func (h *DeliverOrderCommandHandler) refreshAverageServiceTime(ctx context.Context, restaurantID kernel.UUID) {
	uow := h.uowFactory.Create()

	minutes, err := uow.OrderRepository().GetDeliveredServiceMinutes(ctx, restaurantID)
	if err != nil {
		h.logger.WarnContext(ctx, "Average service time recompute failed",
			"restaurantId", restaurantID.String(), "error", err)
		return
	}
	if len(minutes) == 0 {
		return
	}

	var sum float64
	for _, m := range minutes {
		sum += m
	}
	average := sum / float64(len(minutes))

	if err = uow.RestaurantRepository().UpdateAverageServiceMinutes(ctx, restaurantID, average); err != nil {
		h.logger.WarnContext(ctx, "Average service time update failed",
			"restaurantId", restaurantID.String(), "error", err)
	}
}
