package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Every write is version-guarded: the header row is touched only where the
// stored version matches the version the aggregate was loaded at, and a
// successful write bumps it. A write that matches no row reports either a
// not-found or a version conflict, never silently does nothing.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its lines to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order, fully replacing its line set.
// Fails with a version conflict if the order was modified since it was
// loaded, and with a not-found error if it no longer exists.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"address":        dto.Address,
			"price":          dto.Price,
			"shipping_costs": dto.ShippingCosts,
			"started_at":     dto.StartedAt,
			"sent_at":        dto.SentAt,
			"delivered_at":   dto.DeliveredAt,
			"version":        dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.writeConflict(ctx, aggregate)
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Delete(&LineDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&dto.Lines).Error
}

// Get retrieves an order with its lines by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes an order and its lines.
// Fails with a version conflict if the order was modified since it was
// loaded, and with a not-found error if it no longer exists.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Delete(&LineDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.writeConflict(ctx, aggregate)
	}
	return nil
}

// GetDeliveredServiceMinutes returns the creation-to-delivery duration in
// minutes of every delivered order of one restaurant.
func (r *GormOrderRepository) GetDeliveredServiceMinutes(
	ctx context.Context,
	restaurantID kernel.UUID,
) ([]float64, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	minutes := make([]float64, 0)
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(EPOCH FROM (delivered_at - created_at)) / 60.0
		FROM orders
		WHERE restaurant_id = ? AND delivered_at IS NOT NULL
	`, restaurantID.Bytes()).Scan(&minutes).Error
	if err != nil {
		return nil, err
	}

	return minutes, nil
}

// writeConflict reports why a version-guarded write matched no row: the order
// is gone, or it moved on past the version the caller loaded.
func (r *GormOrderRepository) writeConflict(ctx context.Context, aggregate *order.Order) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewVersionConflictError("order", aggregate.ID().String(), aggregate.Version())
}
