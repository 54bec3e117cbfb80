package quote2pdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alnah/go-quote2pdf/internal/assets"
	"github.com/alnah/go-quote2pdf/internal/dateutil"
	"github.com/alnah/go-quote2pdf/internal/render"
)

// Built-in template names.
const (
	TemplateBranded = "branded"
	TemplatePlain   = "plain"
)

// DefaultTemplate is used when no template is selected.
const DefaultTemplate = TemplateBranded

const inch = 25.4 // mm

// Margins are page margins in millimeters. The top and bottom margins are
// minimums: a decorator may reserve more.
type Margins struct {
	Top, Right, Bottom, Left float64
}

type templateKind int

const (
	kindBranded templateKind = iota
	kindPlain
)

// Template fixes the page geometry, the money and date formats and the
// block order of a document.
type Template struct {
	Name     string
	PageSize string // render.PageA4 or render.PageLetter
	Margins  Margins

	Currency   Currency
	DateLayout string // Go time layout for displayed dates

	// DefaultTaxRate applies when the record has no tax_rate.
	DefaultTaxRate decimal.Decimal

	// QuoteNumberDefault is shown when the record has no quote_number.
	QuoteNumberDefault string

	// Decorated templates draw a header and footer on every page and end
	// with a customer acceptance page.
	Decorated bool
	LogoFile  string

	kind templateKind
}

var templates = map[string]Template{
	TemplateBranded: {
		Name:               TemplateBranded,
		PageSize:           render.PageA4,
		Margins:            Margins{Top: 68, Right: 15, Bottom: 15, Left: 15},
		Currency:           Currency{Prefix: "R ", Group: true, Name: "South African Rand (ZAR)"},
		DateLayout:         "02/01/2006",
		QuoteNumberDefault: "0000",
		Decorated:          true,
		LogoFile:           assets.LogoFile,
		kind:               kindBranded,
	},
	TemplatePlain: {
		Name:               TemplatePlain,
		PageSize:           render.PageLetter,
		Margins:            Margins{Top: 0.75 * inch, Right: 0.75 * inch, Bottom: 0.75 * inch, Left: 0.75 * inch},
		Currency:           Currency{Prefix: "$"},
		DateLayout:         "January 02, 2006",
		QuoteNumberDefault: dateutil.NotAvailable,
		kind:               kindPlain,
	},
}

// LookupTemplate returns a copy of a built-in template. Names are case
// insensitive.
func LookupTemplate(name string) (Template, error) {
	t, ok := templates[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTemplate, name, strings.Join(TemplateNames(), ", "))
	}
	return t, nil
}

// TemplateNames lists the built-in templates in sorted order.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// formatDate renders a raw record date with the template layout.
func (t Template) formatDate(raw string) string {
	return dateutil.Display(raw, t.DateLayout)
}
