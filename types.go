package quote2pdf

import "github.com/shopspring/decimal"

// QuotationRecord is a normalized quotation. Every optional field carries
// its default after normalization; dates are kept as their raw ISO strings
// and formatted at display time.
type QuotationRecord struct {
	QuoteNumber string
	Status      string
	CreatedAt   string
	ValidUntil  string

	CreatedByName  string
	CreatedByEmail string
	PreparedBy     string

	Client  Party
	Contact Contact

	Items []LineItem

	Subtotal  Amount
	Discount  Amount
	TaxRate   Amount
	TaxAmount Amount
	Total     Amount

	Notes           string
	Terms           string
	Description     string
	ShowDescription bool

	Company Company
}

// Party identifies the client.
type Party struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Address string
}

// Contact is the person the quotation is addressed to. Fields fall back to
// the client's when the record leaves them empty.
type Contact struct {
	Name     string
	Email    string
	Phone    string
	Position string
}

// Company holds the issuer branding printed by the decorated template.
type Company struct {
	Name      string
	Address   string
	Phone     string
	Email     string
	Tagline   string
	Website   string
	RegNumber string
	VATNumber string
}

// LineItem is one quoted product or service. Quantity and Price are never
// negative.
type LineItem struct {
	Name        string
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
}

// Total returns Quantity × Price at full precision.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.Price)
}

// Amount is a monetary field the record may omit. Set distinguishes an
// explicit zero from an absent value.
type Amount struct {
	Value decimal.Decimal
	Set   bool
}

// Of returns a present Amount.
func Of(v decimal.Decimal) Amount {
	return Amount{Value: v, Set: true}
}

// Totals are the aggregates printed under the item table. TaxRate is a
// percentage.
type Totals struct {
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ShowDiscount reports whether the discount row is printed.
func (t Totals) ShowDiscount() bool { return t.Discount.IsPositive() }

// ShowTax reports whether the tax row is printed.
func (t Totals) ShowTax() bool { return t.TaxRate.IsPositive() }

// Result is the outcome of one generation.
type Result struct {
	PDF    []byte
	Pages  int
	Record *QuotationRecord
	Totals Totals

	// Warnings lists problems that did not stop generation. Each wraps
	// ErrItemDecode, ErrAssetMissing or ErrTotalMismatch.
	Warnings []error
}
