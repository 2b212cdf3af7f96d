package kernel

import (
	"fmt"

	"menuorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits prices are stored with.
const MoneyScale = 2

// Money is an exact decimal amount in the venue's currency.
// The zero value is a valid amount of 0.
//
// Prices and totals never go through float64: 12.99*2 + 5.99 is exactly 31.97.
type Money struct {
	amount decimal.Decimal
}

// NewMoney wraps a decimal amount.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// MoneyFromString parses a decimal string such as "12.99" or "-1.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%q is not a decimal amount", s))
	}
	return Money{amount: amount}, nil
}

// MustMoney is MoneyFromString for literals known to be valid.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul returns m multiplied by a quantity.
func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether m == 0.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares amounts numerically, so 5.9 equals 5.90.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal exposes the amount for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String formats the amount with MoneyScale fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// Format renders the amount for display with the venue's currency symbol.
func (m Money) Format(symbol string) string {
	if m.IsNegative() {
		return "-" + symbol + m.amount.Neg().StringFixed(MoneyScale)
	}
	return symbol + m.String()
}

// MarshalText encodes the amount as a fixed two-digit decimal string.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts any decimal string.
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := MoneyFromString(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
