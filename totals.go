package quote2pdf

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeTotals derives the printed aggregates from the record.
//
// The subtotal is the record's when positive, otherwise the sum of line
// totals. The tax rate is the record's when present, otherwise defaultRate.
// With a positive rate, the tax amount is the record's when positive,
// otherwise (subtotal - discount) × rate / 100; with no rate there is no
// tax. The total is always subtotal - discount + tax, never negative. A
// supplied total that disagrees is returned as an ErrTotalMismatch warning.
func ComputeTotals(rec *QuotationRecord, defaultRate decimal.Decimal) (Totals, []error) {
	var t Totals

	sum := decimal.Zero
	for _, li := range rec.Items {
		sum = sum.Add(li.Total())
	}
	t.Subtotal = sum.Round(2)
	if rec.Subtotal.Set && rec.Subtotal.Value.IsPositive() {
		t.Subtotal = rec.Subtotal.Value
	}

	t.Discount = rec.Discount.Value.Abs()

	t.TaxRate = defaultRate
	if rec.TaxRate.Set {
		t.TaxRate = rec.TaxRate.Value
	}
	if t.TaxRate.IsNegative() {
		t.TaxRate = decimal.Zero
	}

	if t.TaxRate.IsPositive() {
		if rec.TaxAmount.Set && rec.TaxAmount.Value.IsPositive() {
			t.TaxAmount = rec.TaxAmount.Value
		} else {
			base := decimal.Max(t.Subtotal.Sub(t.Discount), decimal.Zero)
			t.TaxAmount = base.Mul(t.TaxRate).Div(hundred).Round(2)
		}
	}

	t.Total = decimal.Max(t.Subtotal.Sub(t.Discount).Add(t.TaxAmount), decimal.Zero)

	var warnings []error
	if rec.Total.Set && !rec.Total.Value.Round(2).Equal(t.Total.Round(2)) {
		warnings = append(warnings, fmt.Errorf("%w: record says %s, derived %s",
			ErrTotalMismatch, rec.Total.Value.StringFixed(2), t.Total.StringFixed(2)))
	}
	return t, warnings
}
