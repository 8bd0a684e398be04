package queries

import (
	"time"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
)

// OrderResponse is the read-side projection of an order: the header, the
// derived status and the product lines.
type OrderResponse struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	RestaurantID  kernel.UUID
	Address       string
	Price         kernel.Money
	ShippingCosts kernel.Money
	Status        order.Status
	CreatedAt     time.Time
	StartedAt     *time.Time
	SentAt        *time.Time
	DeliveredAt   *time.Time
	Lines         []LineResponse
}

// LineResponse is one product line of an order projection. UnitPrice is the
// price snapshotted when the order was last saved, not the current catalog
// price.
type LineResponse struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
}

// deriveStatus mirrors the domain's timestamp-to-status derivation for rows
// read outside the aggregate.
func deriveStatus(startedAt, sentAt, deliveredAt *time.Time) order.Status {
	switch {
	case deliveredAt != nil:
		return order.Delivered
	case sentAt != nil:
		return order.Sent
	case startedAt != nil:
		return order.InProcess
	default:
		return order.Pending
	}
}
