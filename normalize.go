package quote2pdf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alnah/go-quote2pdf/internal/dateutil"
	"github.com/alnah/go-quote2pdf/internal/hints"
	"github.com/alnah/go-quote2pdf/internal/yamlutil"
)

// Defaults for the branding fields.
const (
	DefaultCompanyName    = "ScaryByte (Pty) Ltd"
	DefaultCompanyAddress = "165 West Street, Sandton, Johannesburg"
	DefaultCompanyPhone   = "+27 (0) 10 006 3999"
	DefaultCompanyEmail   = "support@scarybyte.co.za"
	DefaultCompanyTagline = "MILITARY GRADE CYBER SOLUTIONS"
	DefaultCompanyWebsite = "www.scarybyte.co.za"
	DefaultCompanyReg     = "2021/324782/07"
	DefaultCompanyVAT     = "4500299245"

	// DefaultItemName labels items that have no name.
	DefaultItemName = "Item"
)

// stringField maps one wire key onto a record field. Empty or blank values
// take def.
type stringField struct {
	key string
	def string
	dst func(*QuotationRecord) *string
}

var stringFields = []stringField{
	{"quote_number", "", func(r *QuotationRecord) *string { return &r.QuoteNumber }},
	{"status", dateutil.NotAvailable, func(r *QuotationRecord) *string { return &r.Status }},
	{"created_at", "", func(r *QuotationRecord) *string { return &r.CreatedAt }},
	{"valid_until", "", func(r *QuotationRecord) *string { return &r.ValidUntil }},
	{"created_by_name", dateutil.NotAvailable, func(r *QuotationRecord) *string { return &r.CreatedByName }},
	{"created_by_email", "", func(r *QuotationRecord) *string { return &r.CreatedByEmail }},
	{"prepared_by", "", func(r *QuotationRecord) *string { return &r.PreparedBy }},

	{"client_name", dateutil.NotAvailable, func(r *QuotationRecord) *string { return &r.Client.Name }},
	{"client_company", "", func(r *QuotationRecord) *string { return &r.Client.Company }},
	{"client_email", "", func(r *QuotationRecord) *string { return &r.Client.Email }},
	{"client_phone", "", func(r *QuotationRecord) *string { return &r.Client.Phone }},
	{"client_address", dateutil.NotAvailable, func(r *QuotationRecord) *string { return &r.Client.Address }},

	{"primary_contact_name", "", func(r *QuotationRecord) *string { return &r.Contact.Name }},
	{"primary_contact_email", "", func(r *QuotationRecord) *string { return &r.Contact.Email }},
	{"primary_contact_phone", "", func(r *QuotationRecord) *string { return &r.Contact.Phone }},
	{"primary_contact_position", "", func(r *QuotationRecord) *string { return &r.Contact.Position }},

	{"notes", "", func(r *QuotationRecord) *string { return &r.Notes }},
	{"terms", "", func(r *QuotationRecord) *string { return &r.Terms }},
	{"description", "", func(r *QuotationRecord) *string { return &r.Description }},

	{"company_name", DefaultCompanyName, func(r *QuotationRecord) *string { return &r.Company.Name }},
	{"company_address", DefaultCompanyAddress, func(r *QuotationRecord) *string { return &r.Company.Address }},
	{"company_phone", DefaultCompanyPhone, func(r *QuotationRecord) *string { return &r.Company.Phone }},
	{"company_email", DefaultCompanyEmail, func(r *QuotationRecord) *string { return &r.Company.Email }},
	{"company_tagline", DefaultCompanyTagline, func(r *QuotationRecord) *string { return &r.Company.Tagline }},
	{"company_website", DefaultCompanyWebsite, func(r *QuotationRecord) *string { return &r.Company.Website }},
	{"company_reg_number", DefaultCompanyReg, func(r *QuotationRecord) *string { return &r.Company.RegNumber }},
	{"company_vat_number", DefaultCompanyVAT, func(r *QuotationRecord) *string { return &r.Company.VATNumber }},
}

var amountFields = []struct {
	key string
	dst func(*QuotationRecord) *Amount
}{
	{"subtotal", func(r *QuotationRecord) *Amount { return &r.Subtotal }},
	{"discount", func(r *QuotationRecord) *Amount { return &r.Discount }},
	{"tax_rate", func(r *QuotationRecord) *Amount { return &r.TaxRate }},
	{"tax_amount", func(r *QuotationRecord) *Amount { return &r.TaxAmount }},
	{"total", func(r *QuotationRecord) *Amount { return &r.Total }},
}

// normalizeOptions carries the template-dependent parts of normalization.
type normalizeOptions struct {
	quoteNumber string // default for a missing quote number
	now         time.Time
}

// Normalize parses a JSON or YAML quotation record and fills every default.
// It fails with ErrInput only when data is not a parseable mapping.
// Non-fatal problems, like an undecodable items field, are returned as
// warnings.
func Normalize(data []byte) (*QuotationRecord, []error, error) {
	return normalize(data, normalizeOptions{quoteNumber: dateutil.NotAvailable, now: time.Now()})
}

func normalize(data []byte, opts normalizeOptions) (*QuotationRecord, []error, error) {
	raw, err := yamlutil.Mapping(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v%s", ErrInput, err, hints.ForInputSyntax())
	}

	rec := &QuotationRecord{ShowDescription: true}
	for _, f := range stringFields {
		v := toString(raw[f.key])
		if v == "" {
			v = f.def
		}
		*f.dst(rec) = v
	}
	for _, f := range amountFields {
		if d, ok := toDecimal(raw[f.key]); ok {
			*f.dst(rec) = Of(d)
		}
	}
	if v, ok := raw["show_description"]; ok && v != nil {
		rec.ShowDescription = toBool(v, true)
	}

	if rec.QuoteNumber == "" {
		rec.QuoteNumber = opts.quoteNumber
	}
	if rec.PreparedBy == "" {
		rec.PreparedBy = rec.CreatedByName
	}
	rec.Contact.Name = fallback(rec.Contact.Name, rec.Client.Name)
	rec.Contact.Email = fallback(rec.Contact.Email, rec.Client.Email)
	rec.Contact.Phone = fallback(rec.Contact.Phone, rec.Client.Phone)
	rec.CreatedAt = resolveDate(rec.CreatedAt, opts.now)
	rec.ValidUntil = resolveDate(rec.ValidUntil, opts.now)

	items, warnings := decodeItems(raw["items"])
	rec.Items = items
	return rec, warnings, nil
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// resolveDate expands "auto" dates. Anything else, including a malformed
// auto value, is kept raw and handled at display time.
func resolveDate(v string, now time.Time) string {
	resolved, err := dateutil.ResolveDate(v, now)
	if err != nil {
		return v
	}
	return resolved
}

// decodeItems accepts a native list or a string holding an encoded list.
// Items that cannot be decoded are dropped with a warning.
func decodeItems(v any) ([]LineItem, []error) {
	var list []any
	switch v := v.(type) {
	case nil:
		return []LineItem{}, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return []LineItem{}, nil
		}
		seq, err := yamlutil.Sequence([]byte(v))
		if err != nil {
			return []LineItem{}, []error{fmt.Errorf("%w: %v", ErrItemDecode, err)}
		}
		list = seq
	case []any:
		list = v
	default:
		return []LineItem{}, []error{fmt.Errorf("%w: items is a %T, want a list", ErrItemDecode, v)}
	}

	items := make([]LineItem, 0, len(list))
	var warnings []error
	for i, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Errorf("%w: item %d is a %T, want an object", ErrItemDecode, i+1, el))
			continue
		}
		items = append(items, decodeItem(m))
	}
	return items, warnings
}

func decodeItem(m map[string]any) LineItem {
	li := LineItem{
		Name:        fallback(toString(m["name"]), DefaultItemName),
		Description: toString(m["description"]),
	}
	if d, ok := toDecimal(m["quantity"]); ok && d.IsPositive() {
		li.Quantity = d
	}
	if d, ok := toDecimal(m["price"]); ok && d.IsPositive() {
		li.Price = d
	}
	return li
}

// toString renders a scalar as text. Strings are trimmed; numbers keep
// their shortest exact form.
func toString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// toDecimal converts a number or numeric string. ok is false for absent,
// non-finite or non-numeric values.
func toDecimal(v any) (d decimal.Decimal, ok bool) {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case float32:
		return toDecimal(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint64:
		return decimal.RequireFromString(strconv.FormatUint(v, 10)), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

func toBool(v any, def bool) bool {
	switch v := v.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return b
	default:
		if d, ok := toDecimal(v); ok {
			return !d.IsZero()
		}
		return def
	}
}
