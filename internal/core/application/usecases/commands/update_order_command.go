package commands

import (
	"errors"
	"fmt"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/services"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
)

// UpdateOrderCommand represents a request to edit a pending order: a new
// delivery address and the full replacement line set. The command carries no
// restaurant ID on purpose: an order's restaurant is immutable, and the
// requested products are validated against the restaurant of the stored
// order, never against request data.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	address string
	lines   []services.LineRequest

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to edit a pending order.
// Validates the order ID, the address bounds and the requested lines
// (non-empty, positive quantities).
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	address string,
	lines []services.LineRequest,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAddress(address),
		cmd.setLines(lines),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to edit.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Address returns the new delivery address.
func (c UpdateOrderCommand) Address() string {
	return c.address
}

// Lines returns the full replacement (product, quantity) set.
func (c UpdateOrderCommand) Lines() []services.LineRequest {
	return c.lines
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return fmt.Errorf("orderId: %w", err)
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if len(address) > order.MaxAddressLength {
		return errs.NewValueIsOutOfRangeError("address length", len(address), 1, order.MaxAddressLength)
	}
	c.address = address
	return nil
}

func (c *UpdateOrderCommand) setLines(lines []services.LineRequest) error {
	if err := validateLineRequests(lines); err != nil {
		return err
	}
	c.lines = lines
	return nil
}
