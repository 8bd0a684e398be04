// Package restaurant provides the restaurant entity as seen by the order
// core: a shipping-cost default for pricing and a rolling average service
// time updated when orders are delivered. All other restaurant data lives
// outside this core.
package restaurant

import (
	"errors"

	"deliverus/internal/core/domain/model/kernel"
)

// ErrRestaurantIsNotConstructed is returned when a Restaurant instance was
// not created through the RestoreRestaurant factory method.
var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via RestoreRestaurant constructor")

// Restaurant holds the order-core view of a restaurant.
// averageServiceMinutes is nil until the first delivery completes.
type Restaurant struct {
	id                    kernel.UUID
	shippingCosts         kernel.Money
	averageServiceMinutes *float64

	isConstructed bool
}

// RestoreRestaurant reconstructs a restaurant from the catalog store.
func RestoreRestaurant(
	id kernel.UUID,
	shippingCosts kernel.Money,
	averageServiceMinutes *float64,
) (*Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Restaurant{
		id:                    id,
		shippingCosts:         shippingCosts,
		averageServiceMinutes: averageServiceMinutes,
		isConstructed:         true,
	}, nil
}

// Validate ensures the Restaurant was created via RestoreRestaurant.
func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

// ID returns the restaurant identifier.
func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

// ShippingCosts returns the restaurant's default shipping costs, applied
// to orders below the free-shipping threshold.
func (r *Restaurant) ShippingCosts() kernel.Money {
	return r.shippingCosts
}

// AverageServiceMinutes returns the rolling average minutes from order
// creation to delivery, or nil if nothing has been delivered yet.
func (r *Restaurant) AverageServiceMinutes() *float64 {
	return r.averageServiceMinutes
}
