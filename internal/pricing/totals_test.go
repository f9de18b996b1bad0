package pricing

import (
	"testing"

	"quotation-backend/db/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(cost, qty string) models.QuotationItem {
	return models.QuotationItem{
		ItemDescription: models.StorageCharges,
		UnitCost:        cost,
		Quantity:        qty,
	}
}

func TestItemTotal(t *testing.T) {
	assert.True(t, ItemTotal(item("100", "5")).Equal(decimal.NewFromInt(500)))
	assert.True(t, ItemTotal(item("99.99", "3")).Equal(decimal.RequireFromString("299.97")))

	// Either field carrying the sentinel excludes the item.
	assert.True(t, ItemTotal(item("at actual", "5")).IsZero())
	assert.True(t, ItemTotal(item("100", "At Actual")).IsZero())

	// Malformed stored values degrade to zero without erroring.
	assert.True(t, ItemTotal(item("garbage", "5")).IsZero())
	assert.True(t, ItemTotal(item("100", "five")).IsZero())
}

func TestCalculated(t *testing.T) {
	assert.True(t, Calculated(item("100", "5")))
	assert.False(t, Calculated(item("at actual", "5")))
	assert.False(t, Calculated(item("100", "at actual")))
	// Malformed-but-not-sentinel values still count as calculable; their
	// total is just zero.
	assert.True(t, Calculated(item("garbage", "5")))
}

func TestLocationTotals(t *testing.T) {
	calc := NewCalculator(decimal.RequireFromString("0.18"))

	location := models.QuotationLocation{
		LocationName: "NCR",
		Items: []models.QuotationItem{
			item("100", "5"),        // 500
			item("50", "2"),         // 100
			item("at actual", "10"), // excluded
		},
	}

	totals := calc.LocationTotals(location)
	assert.Equal(t, "600", totals.Subtotal.String())
	assert.Equal(t, "108", totals.GST.String())
	assert.Equal(t, "708", totals.GrandTotal.String())
}

func TestQuotationTotalsSumLocations(t *testing.T) {
	calc := NewCalculator(decimal.RequireFromString("0.18"))

	quotation := models.Quotation{
		Locations: []models.QuotationLocation{
			{Items: []models.QuotationItem{item("100", "5")}},                                // 500
			{Items: []models.QuotationItem{item("50", "2"), item("at actual", "at actual")}}, // 100
		},
	}

	totals := calc.QuotationTotals(quotation)
	assert.Equal(t, "600", totals.Subtotal.String())
	assert.Equal(t, "108", totals.GST.String())
	assert.Equal(t, "708", totals.GrandTotal.String())
}

func TestTaxExactness(t *testing.T) {
	calc := NewCalculator(decimal.RequireFromString("0.18"))

	location := models.QuotationLocation{
		Items: []models.QuotationItem{item("1000.00", "1")},
	}

	totals := calc.LocationTotals(location)
	assert.Equal(t, "₹ 1,000.00", FormatINR(totals.Subtotal))
	assert.Equal(t, "₹ 180.00", FormatINR(totals.GST))
	assert.Equal(t, "₹ 1,180.00", FormatINR(totals.GrandTotal))
}

func TestEmptyLocation(t *testing.T) {
	calc := NewCalculator(decimal.RequireFromString("0.18"))
	totals := calc.LocationTotals(models.QuotationLocation{})
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GST.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}
