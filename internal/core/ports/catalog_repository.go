package ports

import (
	"context"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/product"
	"deliverus/internal/core/domain/model/restaurant"
)

// ProductRepository is the read-only catalog lookup consumed by order
// validation and pricing. Products are maintained outside this core.
type ProductRepository interface {
	// Get retrieves a product by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetByIDs retrieves all listed products in one round trip, keyed by ID.
	// Missing products are simply absent from the result map; callers decide
	// whether absence is an error.
	GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error)
}

// RestaurantRepository exposes the restaurant data the order core needs:
// the shipping-cost default for pricing, plus the single cross-aggregate
// write in scope, the rolling average service time updated after deliveries.
type RestaurantRepository interface {
	// Get retrieves a restaurant by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)

	// UpdateAverageServiceMinutes persists a recomputed rolling average of
	// minutes from order creation to delivery for the restaurant.
	UpdateAverageServiceMinutes(ctx context.Context, id kernel.UUID, minutes float64) error
}
