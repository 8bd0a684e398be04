package order_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/errs"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func line(t *testing.T, price string, qty int) order.Line {
	t.Helper()
	l, err := order.NewLine(kernel.NewUUID(), qty, money(t, price))
	require.NoError(t, err)
	return l
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"13 Rue del Percebe", time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	validCustomer := kernel.NewUUID()
	validRestaurant := kernel.NewUUID()
	createdAt := time.Now()

	t.Run("should create pending order with all valid parameters", func(t *testing.T) {
		o, err := order.NewOrder(validID, validCustomer, validRestaurant, "1 Main St", createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.True(t, o.CustomerID().IsEqual(validCustomer))
		assert.True(t, o.RestaurantID().IsEqual(validRestaurant))
		assert.Equal(t, "1 Main St", o.Address())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.StartedAt())
		assert.Nil(t, o.SentAt())
		assert.Nil(t, o.DeliveredAt())
		assert.True(t, o.Price().IsZero())
		assert.True(t, o.ShippingCosts().IsZero())
		assert.Empty(t, o.Lines())
	})

	t.Run("should fail with invalid order ID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, validCustomer, validRestaurant, "1 Main St", createdAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with missing address", func(t *testing.T) {
		o, err := order.NewOrder(validID, validCustomer, validRestaurant, "", createdAt)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with address longer than 255 chars", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, validCustomer, validRestaurant,
			strings.Repeat("x", 256), createdAt,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should accept address of exactly 255 chars", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, validCustomer, validRestaurant,
			strings.Repeat("x", 255), createdAt,
		)

		require.NoError(t, err)
		assert.Len(t, o.Address(), 255)
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, invalidID, validRestaurant, "", createdAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "address")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		require.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("should fail validation for zero-value order", func(t *testing.T) {
		o := &order.Order{}

		require.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_ApplyQuote(t *testing.T) {
	t.Run("should replace full line set and totals", func(t *testing.T) {
		o := newPendingOrder(t)
		first := []order.Line{line(t, "3.00", 2)}
		require.NoError(t, o.ApplyQuote(first, money(t, "2.50"), money(t, "8.50")))

		second := []order.Line{line(t, "5.00", 1), line(t, "4.00", 3)}
		require.NoError(t, o.ApplyQuote(second, money(t, "0.00"), money(t, "17.00")))

		lines := o.Lines()
		require.Len(t, lines, 2)
		assert.True(t, lines[0].ProductID().IsEqual(second[0].ProductID()))
		assert.True(t, lines[1].ProductID().IsEqual(second[1].ProductID()))
		assert.Equal(t, "0.00", o.ShippingCosts().String())
		assert.Equal(t, "17.00", o.Price().String())

		// No line of the replaced set survives.
		for _, l := range lines {
			assert.False(t, l.ProductID().IsEqual(first[0].ProductID()))
		}
	})

	t.Run("should reject empty line set", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.ApplyQuote(nil, kernel.ZeroMoney(), kernel.ZeroMoney())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with state conflict on non-pending order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Confirm(time.Now()))

		err := o.ApplyQuote([]order.Line{line(t, "3.00", 1)}, kernel.ZeroMoney(), money(t, "3.00"))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("returned lines are a defensive copy", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.ApplyQuote([]order.Line{line(t, "3.00", 1)}, kernel.ZeroMoney(), money(t, "3.00")))

		got := o.Lines()
		got[0] = order.Line{}

		assert.NotEqual(t, order.Line{}, o.Lines()[0])
	})
}

func TestOrder_ChangeAddress(t *testing.T) {
	t.Run("should update address while pending", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.ChangeAddress("42 Other St"))
		assert.Equal(t, "42 Other St", o.Address())
	})

	t.Run("should fail once order left pending", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Confirm(time.Now()))

		err := o.ChangeAddress("42 Other St")

		require.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	now := time.Now()

	t.Run("full happy path stamps each timestamp once", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Confirm(now))
		assert.Equal(t, order.InProcess, o.Status())
		require.NotNil(t, o.StartedAt())

		require.NoError(t, o.Send(now.Add(10*time.Minute)))
		assert.Equal(t, order.Sent, o.Status())
		require.NotNil(t, o.SentAt())

		require.NoError(t, o.Deliver(now.Add(30*time.Minute)))
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveredAt())

		duration, ok := o.ServiceDuration()
		require.True(t, ok)
		assert.InDelta(t, (30 * time.Minute).Minutes(), duration.Minutes(), 0.5)
	})

	t.Run("confirm rejects non-pending order instead of re-stamping", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Confirm(now))
		started := *o.StartedAt()

		err := o.Confirm(now.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, started, *o.StartedAt())
	})

	t.Run("send requires in process", func(t *testing.T) {
		o := newPendingOrder(t)

		require.ErrorIs(t, o.Send(now), errs.ErrStateConflict)
	})

	t.Run("deliver requires sent", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Confirm(now))

		require.ErrorIs(t, o.Deliver(now), errs.ErrStateConflict)
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("deliver on delivered order is rejected", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Confirm(now))
		require.NoError(t, o.Send(now))
		require.NoError(t, o.Deliver(now))

		require.ErrorIs(t, o.Deliver(now.Add(time.Hour)), errs.ErrStateConflict)
	})

	t.Run("timestamps must not regress", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Confirm(now))

		err := o.Send(now.Add(-time.Minute))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o.SentAt())
	})

	t.Run("service duration unavailable before delivery", func(t *testing.T) {
		o := newPendingOrder(t)

		_, ok := o.ServiceDuration()
		assert.False(t, ok)
	})
}

func TestOrder_EnsureDeletable(t *testing.T) {
	t.Run("pending order is deletable", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.EnsureDeletable())
	})

	t.Run("confirmed order is not deletable", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Confirm(time.Now()))

		require.ErrorIs(t, o.EnsureDeletable(), errs.ErrStateConflict)
	})
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	createdAt := time.Now().Add(-time.Hour)
	startedAt := createdAt.Add(5 * time.Minute)
	sentAt := createdAt.Add(15 * time.Minute)
	deliveredAt := createdAt.Add(40 * time.Minute)

	t.Run("restores a delivered order", func(t *testing.T) {
		o, err := order.RestoreOrder(
			id, customerID, restaurantID, "1 Main St",
			money(t, "11.00"), money(t, "0.00"),
			[]order.Line{line(t, "3.00", 2), line(t, "5.00", 1)},
			createdAt, &startedAt, &sentAt, &deliveredAt, 3,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, 3, o.Version())
		assert.Equal(t, "11.00", o.Price().String())
	})

	t.Run("rejects deliveredAt without sentAt", func(t *testing.T) {
		_, err := order.RestoreOrder(
			id, customerID, restaurantID, "1 Main St",
			kernel.ZeroMoney(), kernel.ZeroMoney(), nil,
			createdAt, &startedAt, nil, &deliveredAt, 1,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "deliveredAt")
	})

	t.Run("rejects sentAt without startedAt", func(t *testing.T) {
		_, err := order.RestoreOrder(
			id, customerID, restaurantID, "1 Main St",
			kernel.ZeroMoney(), kernel.ZeroMoney(), nil,
			createdAt, nil, &sentAt, nil, 1,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sentAt")
	})

	t.Run("rejects negative version", func(t *testing.T) {
		_, err := order.RestoreOrder(
			id, customerID, restaurantID, "1 Main St",
			kernel.ZeroMoney(), kernel.ZeroMoney(), nil,
			createdAt, nil, nil, nil, -1,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestNewLine(t *testing.T) {
	t.Run("creates line with snapshot price", func(t *testing.T) {
		productID := kernel.NewUUID()
		l, err := order.NewLine(productID, 2, money(t, "3.00"))

		require.NoError(t, err)
		assert.True(t, l.ProductID().IsEqual(productID))
		assert.Equal(t, 2, l.Quantity())
		assert.Equal(t, "3.00", l.UnitPrice().String())
		assert.Equal(t, "6.00", l.Total().String())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), 0, money(t, "3.00"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects unconstructed product ID", func(t *testing.T) {
		var id kernel.UUID
		_, err := order.NewLine(id, 1, money(t, "3.00"))

		require.Error(t, err)
	})
}
