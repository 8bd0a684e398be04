package commands

import (
	"context"
)

// DeleteOrderCommandHandler handles the business logic for order destruction.
// Only pending orders can be destroyed; the order's lines are removed in the
// same transaction.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order destruction.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order destruction command.
// Fails with a not-found error if the order does not exist and a state
// conflict if it is no longer pending.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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
	existing, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = existing.EnsureDeletable(); err != nil {
		return err
	}

	if err = orderRepo.Delete(ctx, existing); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
