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
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to place a new order: the customer,
// the target restaurant, the delivery address and the requested product lines.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, restaurantID, "1 Main St", lines)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.UUID
	restaurantID kernel.UUID
	address      string
	lines        []services.LineRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, the address bounds and the requested lines
// (non-empty, positive quantities). Catalog checks (existence, availability,
// ownership) happen in the handler, where the catalog is reachable.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	address string,
	lines []services.LineRequest,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setAddress(address),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the identifier of the placing customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the identifier of the target restaurant.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Address returns the delivery address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// Lines returns the requested (product, quantity) pairs.
func (c CreateOrderCommand) Lines() []services.LineRequest {
	return c.lines
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return fmt.Errorf("customerId: %w", err)
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return fmt.Errorf("restaurantId: %w", err)
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if len(address) > order.MaxAddressLength {
		return errs.NewValueIsOutOfRangeError("address length", len(address), 1, order.MaxAddressLength)
	}
	c.address = address
	return nil
}

func (c *CreateOrderCommand) setLines(lines []services.LineRequest) error {
	if err := validateLineRequests(lines); err != nil {
		return err
	}
	c.lines = lines
	return nil
}

// validateLineRequests checks the structural constraints shared by create
// and update: a non-empty set of constructed product IDs with positive
// quantities.
func validateLineRequests(lines []services.LineRequest) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("products")
	}

	var errList []error
	for i, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("products[%d]: %w", i, err))
		}
		if line.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"quantity",
				fmt.Errorf("products[%d]: %d is not greater than 0", i, line.Quantity),
			))
		}
	}
	return errors.Join(errList...)
}
