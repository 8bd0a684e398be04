package order

import (
	"errors"
	"fmt"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
)

// Line is a value object representing one product line of an order:
// the product, the ordered quantity and the unit price snapshotted from the
// catalog at the moment the line was created. The snapshot is never
// recomputed from the current catalog price, so later price changes do not
// affect already saved orders.
type Line struct {
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money
}

// NewLine creates a validated order line.
// The product ID must be a constructed UUID and quantity must be positive.
func NewLine(productID kernel.UUID, quantity int, unitPrice kernel.Money) (Line, error) {
	if err := productID.Validate(); err != nil {
		return Line{}, err
	}

	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return Line{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID returns the identifier of the ordered product.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the product price snapshotted when the line was created.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Total returns quantity × unit price.
func (l Line) Total() kernel.Money {
	return l.unitPrice.MulInt(l.quantity)
}

// validateLines checks that a target line set is usable as an order's line
// set: it must be non-empty and every line must be a constructed value.
// Duplicate product IDs are allowed; the persisted line rows have no
// uniqueness constraint on (order, product).
func validateLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("products")
	}

	var errList []error
	for i, line := range lines {
		if err := line.productID.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("products[%d]: %w", i, err))
		}
		if line.quantity <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"quantity",
				fmt.Errorf("products[%d]: %d is not greater than 0", i, line.quantity),
			))
		}
	}
	return errors.Join(errList...)
}
