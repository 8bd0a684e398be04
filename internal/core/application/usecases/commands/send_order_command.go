package commands

import (
	"errors"
	"fmt"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/guard"
)

var (
	ErrSendOrderCommandIsNotConstructed = errors.New(
		"SendOrderCommand must be created via NewSendOrderCommand constructor",
	)
)

// SendOrderCommand represents the restaurant dispatching an in-process
// order, moving it to "sent".
type SendOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSendOrderCommand creates a command to dispatch an in-process order.
func NewSendOrderCommand(orderID kernel.UUID) (SendOrderCommand, error) {
	cmd := SendOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return SendOrderCommand{}, fmt.Errorf("orderId: %w", err)
	}
	cmd.orderID = orderID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SendOrderCommand) Validate() error {
	return c.guard.Validate(ErrSendOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to dispatch.
func (c SendOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
