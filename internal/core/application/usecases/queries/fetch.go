package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"deliverus/internal/core/domain/model/kernel"
)

// orderColumns is the header projection shared by every order query.
const orderColumns = `
	id,
	customer_id,
	restaurant_id,
	address,
	price,
	shipping_costs,
	created_at,
	started_at,
	sent_at,
	delivered_at
`

// fetchOrders runs a header query and attaches the lines of every returned
// order with a single follow-up query.
func fetchOrders(ctx context.Context, db *gorm.DB, sql string, args ...any) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)

	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, customerID, restaurantID   uuid.UUID
			address                        string
			price, shippingCosts           decimal.Decimal
			createdAt                      time.Time
			startedAt, sentAt, deliveredAt *time.Time
		)

		err = rows.Scan(
			&id,
			&customerID,
			&restaurantID,
			&address,
			&price,
			&shippingCosts,
			&createdAt,
			&startedAt,
			&sentAt,
			&deliveredAt,
		)
		if err != nil {
			return nil, err
		}

		resp := OrderResponse{
			Address:     address,
			Status:      deriveStatus(startedAt, sentAt, deliveredAt),
			CreatedAt:   createdAt,
			StartedAt:   startedAt,
			SentAt:      sentAt,
			DeliveredAt: deliveredAt,
			Lines:       make([]LineResponse, 0),
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
			return nil, err
		}
		if resp.Price, err = kernel.NewMoney(price); err != nil {
			return nil, err
		}
		if resp.ShippingCosts, err = kernel.NewMoney(shippingCosts); err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = attachLines(ctx, db, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func attachLines(ctx context.Context, db *gorm.DB, orders []OrderResponse) error {
	if len(orders) == 0 {
		return nil
	}

	index := make(map[kernel.UUID]int, len(orders))
	ids := make([]string, 0, len(orders))
	for i, o := range orders {
		index[o.ID] = i
		ids = append(ids, o.ID.String())
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			quantity,
			unit_price
		FROM order_lines
		WHERE order_id IN ?
		ORDER BY order_id, product_id
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID, productID uuid.UUID
			quantity           int
			unitPrice          decimal.Decimal
		)

		if err = rows.Scan(&orderID, &productID, &quantity, &unitPrice); err != nil {
			return err
		}

		oid, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return idErr
		}

		line := LineResponse{Quantity: quantity}
		if line.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return err
		}
		if line.UnitPrice, err = kernel.NewMoney(unitPrice); err != nil {
			return err
		}

		i, ok := index[oid]
		if !ok {
			continue
		}
		orders[i].Lines = append(orders[i].Lines, line)
	}

	return rows.Err()
}
