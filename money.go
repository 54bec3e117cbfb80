package quote2pdf

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency formats amounts with two decimals behind a fixed prefix.
type Currency struct {
	Prefix string // printed before the digits, e.g. "R " or "$"
	Group  bool   // insert thousands separators

	// Name is how the acceptance terms refer to the currency. Empty falls
	// back to the prefix.
	Name string
}

var grouped = message.NewPrinter(language.English)

// maxGrouped is the largest integer part the printer groups exactly.
var maxGrouped = decimal.NewFromInt(1<<53 - 1)

// Format renders d rounded to two decimals. Negative amounts put the sign
// before the prefix: -R 50.00.
func (c Currency) Format(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	digits := d.StringFixed(2)
	if c.Group {
		digits = group(digits)
	}
	return sign + c.Prefix + digits
}

// group inserts thousands separators into the integer part of a fixed-point
// string, leaving the fraction untouched.
func group(fixed string) string {
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := decimal.NewFromString(whole)
	if err == nil && n.LessThanOrEqual(maxGrouped) {
		whole = grouped.Sprintf("%d", n.IntPart())
	} else {
		whole = groupDigits(whole)
	}
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

func groupDigits(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (c Currency) name() string {
	if c.Name != "" {
		return c.Name
	}
	if p := strings.TrimSpace(c.Prefix); p != "" {
		return p
	}
	return "the quoted currency"
}

// formatQuantity prints a quantity without trailing zeros: 2, 1.5.
func formatQuantity(d decimal.Decimal) string {
	return d.String()
}

// formatRate prints a percentage without trailing zeros: 15, 12.5.
func formatRate(d decimal.Decimal) string {
	return d.String()
}
