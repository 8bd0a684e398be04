package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"deliverus/internal/core/domain/model/order"
)

// GetRestaurantOrdersQueryHandler retrieves a restaurant's orders from the
// database, newest first.
//
// The status filter is expressed as timestamp predicates rather than a status
// column: status is derived state, so the filter and the derivation can never
// disagree.
type GetRestaurantOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetRestaurantOrdersQueryHandler creates a handler for restaurant order
// queries.
func NewGetRestaurantOrdersQueryHandler(db *gorm.DB) GetRestaurantOrdersQueryHandler {
	return GetRestaurantOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the matching orders with their lines,
// ordered by creation time descending.
func (h GetRestaurantOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetRestaurantOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE restaurant_id = ?`
	args := []any{query.RestaurantID().String()}

	sql += statusPredicate(query.Status())

	if from := query.From(); from != nil {
		sql += " AND created_at >= ?"
		args = append(args, startOfDay(*from))
	}
	if to := query.To(); to != nil {
		// End-of-day exclusive upper bound: the whole "to" day is included.
		sql += " AND created_at < ?"
		args = append(args, startOfDay(*to).AddDate(0, 0, 1))
	}

	sql += " ORDER BY created_at DESC"

	return fetchOrders(ctx, h.db, sql, args...)
}

// statusPredicate translates a lifecycle status into the timestamp predicates
// that define it.
func statusPredicate(status *order.Status) string {
	if status == nil {
		return ""
	}

	switch *status {
	case order.Pending:
		return " AND started_at IS NULL"
	case order.InProcess:
		return " AND started_at IS NOT NULL AND sent_at IS NULL AND delivered_at IS NULL"
	case order.Sent:
		return " AND sent_at IS NOT NULL AND delivered_at IS NULL"
	case order.Delivered:
		return " AND delivered_at IS NOT NULL"
	default:
		return ""
	}
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
