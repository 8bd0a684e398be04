package http

import (
	"time"

	"deliverus/internal/core/application/usecases/queries"
	domainorder "deliverus/internal/core/domain/model/order"
)

// Error is the JSON error payload returned by every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the request body for order placement.
type NewOrder struct {
	CustomerID   string            `json:"customerId"`
	RestaurantID string            `json:"restaurantId"`
	Address      string            `json:"address"`
	Products     []NewOrderProduct `json:"products"`
}

// NewOrderProduct is one requested product line.
type NewOrderProduct struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateOrder is the request body for editing a pending order.
// The products fully replace the stored line set.
type UpdateOrder struct {
	Address  string            `json:"address"`
	Products []NewOrderProduct `json:"products"`
}

// Order is the JSON representation of an order.
type Order struct {
	ID            string      `json:"id"`
	CustomerID    string      `json:"customerId"`
	RestaurantID  string      `json:"restaurantId"`
	Address       string      `json:"address"`
	Price         string      `json:"price"`
	ShippingCosts string      `json:"shippingCosts"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	StartedAt     *time.Time  `json:"startedAt,omitempty"`
	SentAt        *time.Time  `json:"sentAt,omitempty"`
	DeliveredAt   *time.Time  `json:"deliveredAt,omitempty"`
	Products      []OrderLine `json:"products"`
}

// OrderLine is one product line of an order. UnitPrice is the price
// snapshotted at the last save of the order.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// Analytics is the JSON representation of a restaurant's order counters.
type Analytics struct {
	RestaurantID            string `json:"restaurantId"`
	NumYesterdayOrders      int    `json:"numYesterdayOrders"`
	NumPendingOrders        int    `json:"numPendingOrders"`
	NumDeliveredTodayOrders int    `json:"numDeliveredTodayOrders"`
	InvoicedToday           string `json:"invoicedToday"`
}

func orderFromResponse(resp queries.OrderResponse) Order {
	products := make([]OrderLine, 0, len(resp.Lines))
	for _, line := range resp.Lines {
		products = append(products, OrderLine{
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.String(),
		})
	}

	return Order{
		ID:            resp.ID.String(),
		CustomerID:    resp.CustomerID.String(),
		RestaurantID:  resp.RestaurantID.String(),
		Address:       resp.Address,
		Price:         resp.Price.String(),
		ShippingCosts: resp.ShippingCosts.String(),
		Status:        resp.Status.String(),
		CreatedAt:     resp.CreatedAt,
		StartedAt:     resp.StartedAt,
		SentAt:        resp.SentAt,
		DeliveredAt:   resp.DeliveredAt,
		Products:      products,
	}
}

func ordersFromResponses(resps []queries.OrderResponse) []Order {
	orders := make([]Order, 0, len(resps))
	for _, resp := range resps {
		orders = append(orders, orderFromResponse(resp))
	}
	return orders
}

// orderFromDomain maps a freshly written aggregate to the same JSON shape the
// read side produces, so command and query responses are interchangeable.
func orderFromDomain(o *domainorder.Order) Order {
	products := make([]OrderLine, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		products = append(products, OrderLine{
			ProductID: line.ProductID().String(),
			Quantity:  line.Quantity(),
			UnitPrice: line.UnitPrice().String(),
		})
	}

	return Order{
		ID:            o.ID().String(),
		CustomerID:    o.CustomerID().String(),
		RestaurantID:  o.RestaurantID().String(),
		Address:       o.Address(),
		Price:         o.Price().String(),
		ShippingCosts: o.ShippingCosts().String(),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		StartedAt:     o.StartedAt(),
		SentAt:        o.SentAt(),
		DeliveredAt:   o.DeliveredAt(),
		Products:      products,
	}
}
