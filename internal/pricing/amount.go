package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Sentinel is the stored marker meaning "to be determined at fulfilment
// time". Items carrying it on either field are excluded from totals.
const Sentinel = "at actual"

// Amount is a tagged variant: either a concrete non-negative decimal or the
// at-actual placeholder. It replaces string sentinel checks at the API
// boundary; stored values remain strings for display fidelity.
type Amount struct {
	atActual bool
	value    decimal.Decimal
}

// AtActual returns the placeholder amount.
func AtActual() Amount {
	return Amount{atActual: true}
}

// Numeric wraps a concrete decimal value.
func Numeric(value decimal.Decimal) Amount {
	return Amount{value: value}
}

// IsAtActual reports whether the amount is the placeholder.
func (a Amount) IsAtActual() bool {
	return a.atActual
}

// Decimal returns the numeric value; zero for the placeholder.
func (a Amount) Decimal() decimal.Decimal {
	if a.atActual {
		return decimal.Zero
	}
	return a.value
}

// Storage returns the canonical stored string: the lowercase sentinel or the
// decimal literal.
func (a Amount) Storage() string {
	if a.atActual {
		return Sentinel
	}
	return a.value.String()
}

// IsSentinel reports whether a raw stored string is the at-actual marker,
// case-insensitively.
func IsSentinel(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), Sentinel)
}

// NormalizeCost validates a unit-cost input. Empty, zero and non-numeric
// inputs collapse to the placeholder; negative values are rejected rather
// than normalized.
func NormalizeCost(raw string) (Amount, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || IsSentinel(trimmed) {
		return AtActual(), nil
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return AtActual(), nil
	}
	if value.IsNegative() {
		return Amount{}, fmt.Errorf("unit cost must be a positive number or %q", Sentinel)
	}
	if value.IsZero() {
		return AtActual(), nil
	}
	return Numeric(value), nil
}

// NormalizeQuantity validates a quantity input. Empty, zero, negative and
// non-numeric inputs all collapse to the placeholder.
func NormalizeQuantity(raw string) Amount {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || IsSentinel(trimmed) {
		return AtActual()
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return AtActual()
	}
	if value.IsZero() || value.IsNegative() {
		return AtActual()
	}
	return Numeric(value)
}
