package queries

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"deliverus/internal/core/domain/model/kernel"
)

// GetOrderAnalyticsQueryHandler computes the dashboard counters for one
// restaurant in a single aggregate query.
//
// All day boundaries are taken in the server's local time zone: "today" is
// [today00:00, now] and "yesterday" is [yesterday00:00, today00:00).
type GetOrderAnalyticsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGetOrderAnalyticsQueryHandler creates a handler for restaurant analytics
// queries.
func NewGetOrderAnalyticsQueryHandler(db *gorm.DB) GetOrderAnalyticsQueryHandler {
	return GetOrderAnalyticsQueryHandler{db: db, now: time.Now}
}

// Handle executes the analytics query and returns the counters.
func (h GetOrderAnalyticsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderAnalyticsQuery,
) (*GetOrderAnalyticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	todayStart := startOfDay(h.now())
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE created_at >= ? AND created_at < ?),
			COUNT(*) FILTER (WHERE started_at IS NULL),
			COUNT(*) FILTER (WHERE delivered_at >= ?),
			COALESCE(SUM(price) FILTER (WHERE created_at >= ?), 0)
		FROM orders
		WHERE restaurant_id = ?
	`, yesterdayStart, todayStart, todayStart, todayStart, query.RestaurantID().String()).Row()

	var (
		yesterdayOrders, pendingOrders, deliveredToday int
		invoicedToday                                  decimal.Decimal
	)
	err := row.Scan(&yesterdayOrders, &pendingOrders, &deliveredToday, &invoicedToday)
	if err != nil {
		return nil, err
	}

	invoiced, err := kernel.NewMoney(invoicedToday)
	if err != nil {
		return nil, err
	}

	return &GetOrderAnalyticsQueryResponse{
		RestaurantID:            query.RestaurantID(),
		NumYesterdayOrders:      yesterdayOrders,
		NumPendingOrders:        pendingOrders,
		NumDeliveredTodayOrders: deliveredToday,
		InvoicedToday:           invoiced,
	}, nil
}
