package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCostCollapsesToSentinel(t *testing.T) {
	for _, raw := range []string{"", "0", "0.00", "at actual", "At Actual", "AT ACTUAL", "  ", "abc"} {
		amount, err := NormalizeCost(raw)
		require.NoError(t, err, "input %q", raw)
		assert.True(t, amount.IsAtActual(), "input %q should normalize to the sentinel", raw)
		assert.Equal(t, Sentinel, amount.Storage())
	}
}

func TestNormalizeCostRejectsNegative(t *testing.T) {
	_, err := NormalizeCost("-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive")

	_, err = NormalizeCost("-0.01")
	require.Error(t, err)
}

func TestNormalizeCostKeepsNumeric(t *testing.T) {
	amount, err := NormalizeCost("1500.50")
	require.NoError(t, err)
	assert.False(t, amount.IsAtActual())
	assert.True(t, amount.Decimal().Equal(decimal.RequireFromString("1500.50")))
	assert.Equal(t, "1500.5", amount.Storage())
}

func TestNormalizeQuantity(t *testing.T) {
	for _, raw := range []string{"", "0", "0.00", "-5", "at actual", "garbage"} {
		amount := NormalizeQuantity(raw)
		assert.True(t, amount.IsAtActual(), "input %q should normalize to the sentinel", raw)
	}

	amount := NormalizeQuantity("12")
	assert.False(t, amount.IsAtActual())
	assert.True(t, amount.Decimal().Equal(decimal.NewFromInt(12)))
}

func TestIsSentinel(t *testing.T) {
	assert.True(t, IsSentinel("at actual"))
	assert.True(t, IsSentinel("At Actual"))
	assert.True(t, IsSentinel("  AT ACTUAL  "))
	assert.False(t, IsSentinel("100"))
	assert.False(t, IsSentinel("actual"))
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹ 1,234.50", FormatINR(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "₹ 100.00", FormatINR(decimal.NewFromInt(100)))
	assert.Equal(t, "₹ 1,000,000.00", FormatINR(decimal.NewFromInt(1000000)))
	assert.Equal(t, "₹ 0.00", FormatINR(decimal.Zero))
}

func TestDisplayUnitCost(t *testing.T) {
	assert.Equal(t, "At Actual", DisplayUnitCost("at actual"))
	assert.Equal(t, "₹ 2,500.00", DisplayUnitCost("2500"))
	// Malformed stored values fall back to the raw string for display.
	assert.Equal(t, "1,2,3", DisplayUnitCost("1,2,3"))
}
