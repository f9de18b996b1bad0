package pricing

import (
	"quotation-backend/db/models"

	"github.com/shopspring/decimal"
)

// Totals bundles the three derived figures for a location or a whole
// quotation.
type Totals struct {
	Subtotal   decimal.Decimal
	GST        decimal.Decimal
	GrandTotal decimal.Decimal
}

// Calculator computes quotation money figures with exact decimal arithmetic.
// The tax rate comes from AppConfig at construction, never from globals.
type Calculator struct {
	rate decimal.Decimal
}

func NewCalculator(rate decimal.Decimal) Calculator {
	return Calculator{rate: rate}
}

// Rate returns the configured tax rate.
func (c Calculator) Rate() decimal.Decimal {
	return c.rate
}

// Calculated reports whether a line item participates in totals: true iff
// neither stored field is the at-actual sentinel.
func Calculated(item models.QuotationItem) bool {
	return !IsSentinel(item.UnitCost) && !IsSentinel(item.Quantity)
}

// ItemTotal returns cost × quantity for a calculable item. A stored string
// that is neither the sentinel nor parseable degrades to zero instead of
// erroring; the raw value stays on the record for display and audit.
func ItemTotal(item models.QuotationItem) decimal.Decimal {
	if !Calculated(item) {
		return decimal.Zero
	}

	cost, err := decimal.NewFromString(item.UnitCost)
	if err != nil {
		return decimal.Zero
	}
	qty, err := decimal.NewFromString(item.Quantity)
	if err != nil {
		return decimal.Zero
	}
	return cost.Mul(qty)
}

// Malformed reports a stored value that is neither the sentinel nor a
// parseable number. Such items contribute zero to totals; callers use this
// to surface the degradation in logs.
func Malformed(item models.QuotationItem) bool {
	if IsSentinel(item.UnitCost) || IsSentinel(item.Quantity) {
		return false
	}
	if _, err := decimal.NewFromString(item.UnitCost); err != nil {
		return true
	}
	_, err := decimal.NewFromString(item.Quantity)
	return err != nil
}

// LocationSubtotal sums the totals of the calculable items.
func (c Calculator) LocationSubtotal(items []models.QuotationItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		if Calculated(item) {
			subtotal = subtotal.Add(ItemTotal(item))
		}
	}
	return subtotal
}

// LocationTotals derives subtotal, GST and grand total for one location.
func (c Calculator) LocationTotals(location models.QuotationLocation) Totals {
	subtotal := c.LocationSubtotal(location.Items)
	gst := subtotal.Mul(c.rate)
	return Totals{
		Subtotal:   subtotal,
		GST:        gst,
		GrandTotal: subtotal.Add(gst),
	}
}

// QuotationTotals sums the location figures across the whole quotation.
func (c Calculator) QuotationTotals(quotation models.Quotation) Totals {
	totals := Totals{Subtotal: decimal.Zero, GST: decimal.Zero, GrandTotal: decimal.Zero}
	for _, location := range quotation.Locations {
		lt := c.LocationTotals(location)
		totals.Subtotal = totals.Subtotal.Add(lt.Subtotal)
		totals.GST = totals.GST.Add(lt.GST)
		totals.GrandTotal = totals.GrandTotal.Add(lt.GrandTotal)
	}
	return totals
}
