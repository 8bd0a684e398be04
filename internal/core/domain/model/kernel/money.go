package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"deliverus/internal/pkg/errs"
)

// Money is a value object representing a non-negative currency amount.
// Amounts are kept at 2-decimal (cent) precision: every constructor and
// arithmetic operation rounds its result to 2 decimal places, so derived
// totals never accumulate sub-cent residue.
//
// The zero value is a valid amount of 0.00, which makes Money safe to use
// directly as a struct field.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromString("3.00")
//	total := price.MulInt(2).Add(shipping)
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money of 0.00.
func ZeroMoney() Money {
	return Money{}
}

// NewMoney creates a Money from a decimal amount.
// Returns an error if the amount is negative. The amount is rounded
// to 2 decimal places.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount),
		)
	}
	return Money{amount: amount.Round(2)}, nil
}

// NewMoneyFromString parses a decimal string such as "10.50" into a Money.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(2)}
}

// MulInt returns the amount multiplied by an integer quantity.
func (m Money) MulInt(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(2)}
}

// GreaterThanOrEqual reports whether m >= other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// IsZero reports whether the amount is 0.00.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount with exactly two decimal places, e.g. "11.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
