package queries

import (
	"errors"
	"fmt"
	"time"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/guard"
)

var (
	ErrGetRestaurantOrdersQueryIsNotConstructed = errors.New(
		"GetRestaurantOrdersQuery must be created via NewGetRestaurantOrdersQuery constructor",
	)
)

// GetRestaurantOrdersQuery retrieves the orders placed against one restaurant,
// optionally filtered by lifecycle status and by a creation-date window.
//
// The date filters are calendar bounds: from keeps orders created at or after
// the start of that day, to keeps orders created before the start of the next
// day, so a single-day window is expressed as from == to.
type GetRestaurantOrdersQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	status       *order.Status
	from         *time.Time
	to           *time.Time

	guard guard.ConstructorGuard
}

// NewGetRestaurantOrdersQuery creates a query for a restaurant's orders.
// status, from and to are optional; pass nil to skip the filter.
func NewGetRestaurantOrdersQuery(
	restaurantID kernel.UUID,
	status *order.Status,
	from *time.Time,
	to *time.Time,
) (GetRestaurantOrdersQuery, error) {
	q := GetRestaurantOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := restaurantID.Validate(); err != nil {
		return GetRestaurantOrdersQuery{}, fmt.Errorf("restaurantId: %w", err)
	}
	q.restaurantID = restaurantID

	if status != nil {
		if err := status.Validate(); err != nil {
			return GetRestaurantOrdersQuery{}, err
		}
		q.status = status
	}

	q.from = from
	q.to = to

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRestaurantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantOrdersQueryIsNotConstructed)
}

// RestaurantID returns the identifier of the restaurant.
func (q GetRestaurantOrdersQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// Status returns the status filter, or nil if not set.
func (q GetRestaurantOrdersQuery) Status() *order.Status {
	return q.status
}

// From returns the lower creation-date bound, or nil if not set.
func (q GetRestaurantOrdersQuery) From() *time.Time {
	return q.from
}

// To returns the upper creation-date bound, or nil if not set.
func (q GetRestaurantOrdersQuery) To() *time.Time {
	return q.to
}
