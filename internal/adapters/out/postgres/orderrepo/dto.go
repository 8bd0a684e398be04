// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate spans two tables: the header row in
// "orders" and one row per product line in "order_lines". Writes always touch
// both, and the header carries the optimistic concurrency version.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for the order header.
// Status is not stored: it is derived from the lifecycle timestamps, so the
// row can never contradict itself.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;index"`
	RestaurantID  uuid.UUID       `gorm:"type:uuid;index"`
	Address       string          `gorm:"type:varchar(255)"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2)"`
	ShippingCosts decimal.Decimal `gorm:"type:numeric(12,2)"`
	CreatedAt     time.Time       `gorm:"index"`
	StartedAt     *time.Time
	SentAt        *time.Time
	DeliveredAt   *time.Time
	Version       int
	Lines         []LineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order headers.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO represents one product line of an order. Rows are replaced
// wholesale on every order save, so the surrogate ID is regenerated each
// time.
type LineDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order lines.
func (LineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(o *order.Order) OrderDTO {
	lines := make([]LineDTO, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		lines = append(lines, LineDTO{
			ID:        uuid.New(),
			OrderID:   o.ID().Bytes(),
			ProductID: line.ProductID().Bytes(),
			Quantity:  line.Quantity(),
			UnitPrice: line.UnitPrice().Amount(),
		})
	}

	return OrderDTO{
		ID:            o.ID().Bytes(),
		CustomerID:    o.CustomerID().Bytes(),
		RestaurantID:  o.RestaurantID().Bytes(),
		Address:       o.Address(),
		Price:         o.Price().Amount(),
		ShippingCosts: o.ShippingCosts().Amount(),
		CreatedAt:     o.CreatedAt(),
		StartedAt:     o.StartedAt(),
		SentAt:        o.SentAt(),
		DeliveredAt:   o.DeliveredAt(),
		Version:       o.Version(),
		Lines:         lines,
	}
}

// toDomain converts database rows back into the order aggregate via
// RestoreOrder, which re-checks the structural invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		productID, lineErr := kernel.UUIDFromBytes(lineDTO.ProductID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		unitPrice, lineErr := kernel.NewMoney(lineDTO.UnitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		line, lineErr := order.NewLine(productID, lineDTO.Quantity, unitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	shippingCosts, err := kernel.NewMoney(dto.ShippingCosts)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		restaurantID,
		dto.Address,
		price,
		shippingCosts,
		lines,
		dto.CreatedAt,
		dto.StartedAt,
		dto.SentAt,
		dto.DeliveredAt,
		dto.Version,
	)
}
