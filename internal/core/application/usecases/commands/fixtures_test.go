package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/product"
	"deliverus/internal/core/domain/model/restaurant"
)

func testMoney(t *testing.T, value string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(value)
	require.NoError(t, err)
	return m
}

func testRestaurant(t *testing.T, id kernel.UUID, shippingCosts string) *restaurant.Restaurant {
	t.Helper()
	r, err := restaurant.RestoreRestaurant(id, testMoney(t, shippingCosts), nil)
	require.NoError(t, err)
	return r
}

func testProduct(t *testing.T, id, restaurantID kernel.UUID, price string) *product.Product {
	t.Helper()
	p, err := product.RestoreProduct(id, restaurantID, testMoney(t, price), true)
	require.NoError(t, err)
	return p
}

func testPendingOrder(t *testing.T, customerID, restaurantID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID, "1 Main St", time.Now())
	require.NoError(t, err)

	line, err := order.NewLine(kernel.NewUUID(), 2, testMoney(t, "5.50"))
	require.NoError(t, err)
	require.NoError(t, o.ApplyQuote([]order.Line{line}, testMoney(t, "0.00"), testMoney(t, "11.00")))
	return o
}

// testOrderInStatus restores an order with the timestamp ladder stamped up to
// the requested status.
func testOrderInStatus(t *testing.T, customerID, restaurantID kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	createdAt := time.Now().Add(-time.Hour)
	var startedAt, sentAt, deliveredAt *time.Time
	if status >= order.InProcess {
		ts := createdAt.Add(10 * time.Minute)
		startedAt = &ts
	}
	if status >= order.Sent {
		ts := createdAt.Add(20 * time.Minute)
		sentAt = &ts
	}
	if status >= order.Delivered {
		ts := createdAt.Add(40 * time.Minute)
		deliveredAt = &ts
	}

	line, err := order.NewLine(kernel.NewUUID(), 2, testMoney(t, "5.50"))
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), customerID, restaurantID,
		"1 Main St",
		testMoney(t, "11.00"), testMoney(t, "0.00"),
		[]order.Line{line},
		createdAt, startedAt, sentAt, deliveredAt,
		1,
	)
	require.NoError(t, err)
	return o
}
