// Package catalogrepo provides read-mostly persistence for the catalog
// entities the order core depends on: products and restaurants. The order
// flow only reads them; the single write is the restaurant's rolling average
// service time, refreshed after deliveries.
package catalogrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/product"
	"deliverus/internal/core/domain/model/restaurant"
)

// ProductDTO represents the database structure for catalog products.
type ProductDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;index"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2)"`
	Availability bool
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

// RestaurantDTO represents the database structure for restaurants as seen by
// the order core.
type RestaurantDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShippingCosts         decimal.Decimal `gorm:"type:numeric(12,2)"`
	AverageServiceMinutes *float64
}

// TableName specifies the database table name for restaurants.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

func productFromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID().Bytes(),
		RestaurantID: p.RestaurantID().Bytes(),
		Price:        p.Price().Amount(),
		Availability: p.IsAvailable(),
	}
}

func productToDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, restaurantID, price, dto.Availability)
}

func restaurantFromDomain(r *restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:                    r.ID().Bytes(),
		ShippingCosts:         r.ShippingCosts().Amount(),
		AverageServiceMinutes: r.AverageServiceMinutes(),
	}
}

func restaurantToDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shippingCosts, err := kernel.NewMoney(dto.ShippingCosts)
	if err != nil {
		return nil, err
	}

	return restaurant.RestoreRestaurant(id, shippingCosts, dto.AverageServiceMinutes)
}
