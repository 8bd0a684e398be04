package ports

import (
	"context"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Write operations persist the header and the full line set together;
// Update and Delete are guarded by the aggregate's optimistic version and
// fail with a version-conflict error when the stored row has moved on.
type OrderRepository interface {
	// Add persists a new order aggregate (header plus lines) to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The stored line set is fully replaced by the aggregate's line set.
	// Fails if the stored version differs from the aggregate's version.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate (header plus lines) by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes the order header and its lines.
	// Fails if the stored version differs from the aggregate's version.
	Delete(ctx context.Context, aggregate *order.Order) error

	// GetDeliveredServiceMinutes returns the per-order service durations in
	// minutes (creation to delivery) of all delivered orders of a restaurant.
	// Used to recompute the restaurant's rolling average after a delivery.
	GetDeliveredServiceMinutes(ctx context.Context, restaurantID kernel.UUID) ([]float64, error)
}
