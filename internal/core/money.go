package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in whole cents. All arithmetic happens on cents;
// floats only appear at the display boundary.
type Money struct {
	Cents int64
}

// NewMoney builds a Money from cents.
func NewMoney(cents int64) Money {
	return Money{Cents: cents}
}

// ParseMoney converts a decimal string to Money with half-up rounding on the
// third fractional digit. Both dot (12.34) and comma (12,34) separators are
// accepted, as is an optional "R$" prefix. Negative amounts are rejected:
// the ledger stores magnitudes only.
//
//	ParseMoney("12,345") -> 12.35 (rounds up)
//	ParseMoney("0")      -> 0.00
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: d.Round(2).Shift(2).IntPart()}, nil
}

// Decimal returns the amount as an exact two-digit decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders the canonical on-disk form, e.g. "1234.56".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Reais returns the amount as a float64 for display only.
func (m Money) Reais() float64 {
	return float64(m.Cents) / 100.0
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Sub returns m - other. The result may be negative; callers that need a
// floor clamp with MaxZero.
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// MaxZero clamps negative amounts to zero.
func (m Money) MaxZero() Money {
	if m.Cents < 0 {
		return Money{}
	}
	return m
}
