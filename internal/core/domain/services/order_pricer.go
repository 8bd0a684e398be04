package services

import (
	"errors"
	"fmt"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/product"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/pkg/errs"
)

// freeShippingThreshold is the subtotal at which shipping becomes free.
// Shipping costs are zero when the line subtotal is greater than or equal
// to this amount; below it the restaurant's default shipping costs apply.
// The same comparison is used for both order creation and order update.
var freeShippingThreshold = mustMoney("10.00")

func mustMoney(s string) kernel.Money {
	m, err := kernel.NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// LineRequest is one requested (product, quantity) pair, before catalog
// validation and price snapshotting.
type LineRequest struct {
	ProductID kernel.UUID
	Quantity  int
}

// Quote is the result of pricing a line request set: the snapshot lines
// ready to be applied to the order, plus the computed amounts.
// Total = Subtotal + ShippingCosts, all at 2-decimal precision.
type Quote struct {
	Lines         []order.Line
	Subtotal      kernel.Money
	ShippingCosts kernel.Money
	Total         kernel.Money
}

// OrderPricer is a domain service that turns a requested (product, quantity)
// set into priced order lines with unit prices snapshotted from the catalog.
//
// Key responsibilities:
//   - Validating every requested product against the catalog: it must exist,
//     be available and belong to the target restaurant
//   - Snapshotting the current catalog price onto each line
//   - Computing subtotal, shipping costs and total
//
// Business rules:
//   - Quantities must be positive
//   - The request set must be non-empty
//   - Shipping is free when the subtotal reaches freeShippingThreshold,
//     otherwise the restaurant's default shipping costs apply
//
// Example usage:
//
//	pricer := services.NewOrderPricer()
//	quote, err := pricer.Quote(rest, catalog, requests)
//	if err != nil {
//	    return err // validation failed before anything was priced
//	}
//	err = o.ApplyQuote(quote.Lines, quote.ShippingCosts, quote.Total)
type OrderPricer struct{}

// NewOrderPricer creates a new OrderPricer instance.
func NewOrderPricer() OrderPricer {
	return OrderPricer{}
}

// Quote validates the requested lines against the catalog and prices them
// for the given restaurant. The products map must contain every requested
// product, keyed by product ID; a missing entry is treated as not found.
//
// All validation runs before any amount is computed, so a returned error
// means no partial quote exists.
func (p OrderPricer) Quote(
	rest *restaurant.Restaurant,
	products map[kernel.UUID]*product.Product,
	requests []LineRequest,
) (Quote, error) {
	if err := rest.Validate(); err != nil {
		return Quote{}, err
	}

	if len(requests) == 0 {
		return Quote{}, errs.NewValueIsRequiredError("products")
	}

	if err := p.validateRequests(rest, products, requests); err != nil {
		return Quote{}, err
	}

	lines := make([]order.Line, 0, len(requests))
	subtotal := kernel.ZeroMoney()
	for _, req := range requests {
		line, err := order.NewLine(req.ProductID, req.Quantity, products[req.ProductID].Price())
		if err != nil {
			return Quote{}, err
		}
		lines = append(lines, line)
		subtotal = subtotal.Add(line.Total())
	}

	shippingCosts := kernel.ZeroMoney()
	if !subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		shippingCosts = rest.ShippingCosts()
	}

	return Quote{
		Lines:         lines,
		Subtotal:      subtotal,
		ShippingCosts: shippingCosts,
		Total:         subtotal.Add(shippingCosts),
	}, nil
}

func (p OrderPricer) validateRequests(
	rest *restaurant.Restaurant,
	products map[kernel.UUID]*product.Product,
	requests []LineRequest,
) error {
	var errList []error
	for i, req := range requests {
		if req.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"quantity",
				fmt.Errorf("products[%d]: %d is not greater than 0", i, req.Quantity),
			))
			continue
		}

		prod, ok := products[req.ProductID]
		if !ok {
			errList = append(errList, errs.NewObjectNotFoundError("product", req.ProductID.String()))
			continue
		}
		if err := prod.Validate(); err != nil {
			errList = append(errList, err)
			continue
		}

		if !prod.IsAvailable() {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"products",
				fmt.Errorf("product %s is not available", req.ProductID),
			))
		}
		if !prod.BelongsTo(rest.ID()) {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"products",
				fmt.Errorf("product %s does not belong to restaurant %s", req.ProductID, rest.ID()),
			))
		}
	}
	return errors.Join(errList...)
}
