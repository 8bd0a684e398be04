// Package product provides the read-only product catalog entity consumed by
// order validation and pricing. Products are owned and mutated elsewhere;
// this core only looks them up.
package product

import (
	"errors"

	"deliverus/internal/core/domain/model/kernel"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through the RestoreProduct factory method.
var ErrProductIsNotConstructed = errors.New("Product must be created via RestoreProduct constructor")

// Product is a catalog entry: a priced item belonging to one restaurant.
// The price read here is snapshotted onto order lines at save time.
type Product struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	price        kernel.Money
	availability bool

	isConstructed bool
}

// RestoreProduct reconstructs a product from the catalog store.
func RestoreProduct(
	id kernel.UUID,
	restaurantID kernel.UUID,
	price kernel.Money,
	availability bool,
) (*Product, error) {
	if err := errors.Join(id.Validate(), restaurantID.Validate()); err != nil {
		return nil, err
	}

	return &Product{
		id:            id,
		restaurantID:  restaurantID,
		price:         price,
		availability:  availability,
		isConstructed: true,
	}, nil
}

// Validate ensures the Product was created via RestoreProduct.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// RestaurantID returns the identifier of the owning restaurant.
func (p *Product) RestaurantID() kernel.UUID {
	return p.restaurantID
}

// Price returns the current catalog price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// IsAvailable reports whether the product can currently be ordered.
func (p *Product) IsAvailable() bool {
	return p.availability
}

// BelongsTo reports whether the product is owned by the given restaurant.
func (p *Product) BelongsTo(restaurantID kernel.UUID) bool {
	return p.restaurantID.IsEqual(restaurantID)
}
