// Package core holds the domain entities of the cash-flow tracker.
//
// This file contains the Money value type and amount parsing. Amounts are
// exact decimals; never sum float64 values for balances.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount. It marshals as a plain JSON number and
// tolerates quoted numbers on input.
type Money struct {
	decimal.Decimal
}

// ZeroMoney is the additive identity.
var ZeroMoney = Money{}

// NewMoney wraps a decimal as Money.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromInt creates Money from a whole amount.
func MoneyFromInt(n int64) Money {
	return Money{Decimal: decimal.NewFromInt(n)}
}

// ParseAmount converts a user-supplied amount string to Money.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Only
// strictly positive amounts are accepted; signs, empty strings, and
// non-numeric input return ErrInvalidAmount.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ZeroMoney, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return ZeroMoney, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ZeroMoney, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return ZeroMoney, ErrInvalidAmount
	}
	return Money{Decimal: d}, nil
}

func (m Money) Validate() error {
	if !m.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Decimal: m.Decimal.Add(o.Decimal)}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{Decimal: m.Decimal.Sub(o.Decimal)}
}

// LessThan reports whether m < o.
func (m Money) LessThan(o Money) bool {
	return m.Decimal.LessThan(o.Decimal)
}

// Equal reports whether m and o represent the same amount.
func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

// MarshalJSON emits the amount as an unquoted JSON number so the snapshot
// schema stays numeric.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON accepts both 12.34 and "12.34".
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}
