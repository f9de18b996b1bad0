package pricing

import (
	"strings"

	"quotation-backend/db/models"

	"github.com/shopspring/decimal"
)

// FormatINR renders a decimal as rupees with thousands separators and two
// decimal places, e.g. "₹ 1,234.50".
func FormatINR(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]

	var formatted string
	for i, c := range reverseString(intPart) {
		if i > 0 && i%3 == 0 {
			formatted = "," + formatted
		}
		formatted = string(c) + formatted
	}

	result := "₹ " + formatted + "." + parts[1]
	if negative {
		result = "₹ -" + formatted + "." + parts[1]
	}
	return result
}

func reverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// DisplayUnitCost renders a stored unit cost for documents: "At Actual" for
// the sentinel, currency-formatted when numeric, the raw string otherwise.
func DisplayUnitCost(raw string) string {
	if IsSentinel(raw) {
		return "At Actual"
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	return FormatINR(value)
}

// DisplayQuantity renders a stored quantity: "At Actual" for the sentinel,
// the raw string otherwise.
func DisplayQuantity(raw string) string {
	if IsSentinel(raw) {
		return "At Actual"
	}
	return raw
}

// DisplayTotal renders a line-item total: "N/A" when the item is not
// calculable, currency-formatted otherwise.
func DisplayTotal(item models.QuotationItem) string {
	if !Calculated(item) {
		return "N/A"
	}
	return FormatINR(ItemTotal(item))
}
