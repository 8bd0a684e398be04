package queries

import (
	"errors"
	"fmt"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/guard"
)

var (
	ErrGetOrderAnalyticsQueryIsNotConstructed = errors.New(
		"GetOrderAnalyticsQuery must be created via NewGetOrderAnalyticsQuery constructor",
	)
)

// GetOrderAnalyticsQuery retrieves the order dashboard counters for one
// restaurant.
type GetOrderAnalyticsQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderAnalyticsQuery creates a query for a restaurant's order counters.
func NewGetOrderAnalyticsQuery(restaurantID kernel.UUID) (GetOrderAnalyticsQuery, error) {
	q := GetOrderAnalyticsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := restaurantID.Validate(); err != nil {
		return GetOrderAnalyticsQuery{}, fmt.Errorf("restaurantId: %w", err)
	}
	q.restaurantID = restaurantID

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderAnalyticsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderAnalyticsQueryIsNotConstructed)
}

// RestaurantID returns the identifier of the restaurant.
func (q GetOrderAnalyticsQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// GetOrderAnalyticsQueryResponse holds the dashboard counters of one
// restaurant.
//
// InvoicedToday sums the totals of orders created today regardless of their
// current status, so a cancelled-free flow counts revenue at placement time.
type GetOrderAnalyticsQueryResponse struct {
	RestaurantID            kernel.UUID
	NumYesterdayOrders      int
	NumPendingOrders        int
	NumDeliveredTodayOrders int
	InvoicedToday           kernel.Money
}
