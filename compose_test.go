package quote2pdf

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleRecord() *QuotationRecord {
	return &QuotationRecord{
		QuoteNumber:   "Q-100",
		Status:        "draft",
		CreatedAt:     "2025-03-14",
		ValidUntil:    "2025-04-14",
		CreatedByName: "Sam Seller",
		PreparedBy:    "Sam Seller",
		Client:        Party{Name: "Ada", Company: "Acme", Email: "ada@acme.test", Address: "1 Road"},
		Contact:       Contact{Name: "Ada", Email: "ada@acme.test", Position: "CTO"},
		Items: []LineItem{
			{Name: "Audit", Description: "External", Quantity: dec("2"), Price: dec("1500")},
		},
		Notes:           "Thanks",
		Terms:           "Net 30",
		Description:     "Security review",
		ShowDescription: true,
		Company:         Company{Name: DefaultCompanyName, Website: DefaultCompanyWebsite},
	}
}

func blockKinds(blocks []Block) []string {
	kinds := make([]string, len(blocks))
	for i, b := range blocks {
		switch b := b.(type) {
		case HeadingBlock:
			kinds[i] = "heading:" + b.Text
		case InfoBlock:
			kinds[i] = "info:" + b.Title
		case ItemTable:
			kinds[i] = "items:" + b.Title
		case TextSection:
			kinds[i] = "text:" + b.Title
		default:
			kinds[i] = strings.TrimPrefix(fmt.Sprintf("%T", b), "quote2pdf.")
		}
	}
	return kinds
}

func mustTemplate(t *testing.T, name string) Template {
	t.Helper()
	tmpl, err := LookupTemplate(name)
	if err != nil {
		t.Fatal(err)
	}
	return tmpl
}

// ---------------------------------------------------------------------------
// TestCompose - Block order per template
// ---------------------------------------------------------------------------

func TestCompose_Order(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	totals, _ := ComputeTotals(rec, dec("15"))

	tests := []struct {
		template string
		want     []string
	}{
		{
			template: TemplatePlain,
			want: []string{
				"heading:QUOTATION",
				"info:",
				"MetadataBlock",
				"items:Items",
				"TotalsBlock",
				"text:Notes",
				"text:Terms & Conditions",
			},
		},
		{
			template: TemplateBranded,
			want: []string{
				"info:CLIENT INFORMATION",
				"text:DESCRIPTION OF SERVICES",
				"items:ITEMIZED COSTS",
				"TotalsBlock",
				"text:NOTES",
				"text:TERMS",
				"PageBreakMarker",
				"heading:CUSTOMER ACCEPTANCE",
				"text:Terms & Conditions (Applicable to This Quotation)",
				"SignatureBlock",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			t.Parallel()

			got := blockKinds(Compose(rec, totals, mustTemplate(t, tt.template)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("block order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompose_OptionalSections(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	rec.Notes = "   "
	rec.Terms = ""
	rec.ShowDescription = false
	totals, _ := ComputeTotals(rec, dec("0"))

	got := blockKinds(Compose(rec, totals, mustTemplate(t, TemplateBranded)))
	for _, kind := range got {
		switch kind {
		case "text:NOTES", "text:TERMS", "text:DESCRIPTION OF SERVICES":
			t.Errorf("unexpected section %q in %v", kind, got)
		}
	}

	rec.ShowDescription = true
	rec.Description = ""
	got = blockKinds(Compose(rec, totals, mustTemplate(t, TemplateBranded)))
	for _, kind := range got {
		if kind == "text:DESCRIPTION OF SERVICES" {
			t.Error("blank description should be omitted")
		}
	}
}

// ---------------------------------------------------------------------------
// TestCompose_Totals - Conditional totals rows
// ---------------------------------------------------------------------------

func TestAppendText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string // one entry per row; nil means no section
	}{
		{name: "blank", text: " \n\t"},
		{name: "single line", text: "Net 30", want: []string{"Net 30"}},
		{name: "paragraphs split into rows", text: "one\n\ntwo", want: []string{"one", "", "two"}},
		{name: "list items split into rows", text: "- a\n- b", want: []string{"• a", "• b"}},
		{name: "thematic break kept as text", text: "---", want: []string{"---"}},
		{name: "comment kept as text", text: " <!-- x --> ", want: []string{"<!-- x -->"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks := appendText(nil, "Notes", tt.text)
			if tt.want == nil {
				if len(blocks) != 0 {
					t.Fatalf("blocks = %v, want none", blocks)
				}
				return
			}
			if len(blocks) != 1 {
				t.Fatalf("blocks = %d, want 1", len(blocks))
			}
			sec := blocks[0].(TextSection)
			got := make([]string, 0, len(sec.Rows))
			for _, row := range sec.Rows {
				var sb strings.Builder
				for _, p := range row {
					for _, sp := range p {
						sb.WriteString(sp.Text)
					}
				}
				got = append(got, sb.String())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompose_TotalsRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		totals   Totals
		want     []TotalRow
	}{
		{
			name:     "plain without discount or tax",
			template: TemplatePlain,
			totals:   Totals{Subtotal: dec("100"), Total: dec("100")},
			want: []TotalRow{
				{Label: "Subtotal:", Value: "$100.00"},
				{Label: "TOTAL:", Value: "$100.00", Grand: true},
			},
		},
		{
			name:     "branded with everything",
			template: TemplateBranded,
			totals: Totals{
				Subtotal:  dec("1000"),
				Discount:  dec("100"),
				TaxRate:   dec("15"),
				TaxAmount: dec("135"),
				Total:     dec("1035"),
			},
			want: []TotalRow{
				{Label: "Subtotal (Excl. VAT):", Value: "R 1,000.00"},
				{Label: "Discount:", Value: "-R 100.00"},
				{Label: "VAT (15%):", Value: "R 135.00"},
				{Label: "TOTAL (Incl. VAT):", Value: "R 1,035.00", Grand: true},
			},
		},
		{
			name:     "branded without tax",
			template: TemplateBranded,
			totals:   Totals{Subtotal: dec("500"), Total: dec("500")},
			want: []TotalRow{
				{Label: "Subtotal (Excl. VAT):", Value: "R 500.00"},
				{Label: "TOTAL (Excl. VAT):", Value: "R 500.00", Grand: true},
			},
		},
		{
			name:     "plain fractional rate",
			template: TemplatePlain,
			totals:   Totals{Subtotal: dec("10"), TaxRate: dec("12.5"), TaxAmount: dec("1.25"), Total: dec("11.25")},
			want: []TotalRow{
				{Label: "Subtotal:", Value: "$10.00"},
				{Label: "Tax (12.5%):", Value: "$1.25"},
				{Label: "TOTAL:", Value: "$11.25", Grand: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []TotalRow
			for _, b := range Compose(sampleRecord(), tt.totals, mustTemplate(t, tt.template)) {
				if tb, ok := b.(TotalsBlock); ok {
					got = tb.Rows
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("totals rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompose_PlainContent(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	rec.Items = []LineItem{}
	totals, _ := ComputeTotals(rec, dec("0"))
	blocks := Compose(rec, totals, mustTemplate(t, TemplatePlain))

	meta, ok := blocks[2].(MetadataBlock)
	if !ok {
		t.Fatalf("block 2 is %T, want MetadataBlock", blocks[2])
	}
	want := []Field{
		{Label: "Quote Number:", Value: "Q-100"},
		{Label: "Date:", Value: "March 14, 2025"},
		{Label: "Status:", Value: "DRAFT"},
		{Label: "Valid Until:", Value: "April 14, 2025"},
	}
	if diff := cmp.Diff(want, meta.Fields); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}

	info := blocks[1].(InfoBlock)
	if diff := cmp.Diff([]string{"Sam Seller"}, info.From); diff != "" {
		t.Errorf("From mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Ada", "Acme", "ada@acme.test", "1 Road"}, info.To); diff != "" {
		t.Errorf("To mismatch (-want +got):\n%s", diff)
	}

	items := blocks[3].(ItemTable)
	if len(items.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(items.Rows))
	}
}

func TestCompose_BrandedClient(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	rec.Contact.Phone = ""
	totals, _ := ComputeTotals(rec, dec("15"))
	blocks := Compose(rec, totals, mustTemplate(t, TemplateBranded))

	info := blocks[0].(InfoBlock)
	want := []Field{
		{Label: "Organization:", Value: "Acme"},
		{Label: "Contact Person:", Value: "Ada [CTO]"},
		{Label: "Phone:", Value: "N/A"},
		{Label: "Physical Address:", Value: "1 Road"},
		{Label: "Email:", Value: "ada@acme.test"},
	}
	if diff := cmp.Diff(want, info.Fields); diff != "" {
		t.Errorf("client fields mismatch (-want +got):\n%s", diff)
	}

	items := blocks[2].(ItemTable)
	wantRow := ItemRow{Name: "Audit", Description: "External", Quantity: "2", UnitPrice: "R 1,500.00", Amount: "R 3,000.00"}
	if diff := cmp.Diff([]ItemRow{wantRow}, items.Rows); diff != "" {
		t.Errorf("item rows mismatch (-want +got):\n%s", diff)
	}
}

func TestConditions(t *testing.T) {
	t.Parallel()

	company := Company{Name: "Acme Widgets (Pty) Ltd"}

	withTax := conditions(company, Totals{TaxRate: dec("15")}, mustTemplate(t, TemplateBranded).Currency)
	if len(withTax.Rows) != 10 {
		t.Fatalf("clauses = %d, want 10", len(withTax.Rows))
	}
	if !withTax.FinePrint {
		t.Error("conditions should be fine print")
	}
	first := withTax.Rows[0][0]
	if first[0].Text != "1. Inclusive of VAT" || !strings.Contains(first[1].Text, "15% Value Added Tax") {
		t.Errorf("VAT clause = %q %q", first[0].Text, first[1].Text)
	}

	noTax := conditions(company, Totals{}, Currency{Prefix: "EUR "})
	if got := noTax.Rows[0][0][0].Text; got != "1. Exclusive of VAT" {
		t.Errorf("VAT clause without tax = %q", got)
	}
	if got := noTax.Rows[1][0][1].Text; !strings.Contains(got, "by Acme Widgets.") {
		t.Errorf("validity clause = %q, want trading name", got)
	}

	if got := withTax.Rows[3][0][1].Text; !strings.Contains(got, "in South African Rand (ZAR).") {
		t.Errorf("currency clause = %q, want the template currency", got)
	}
	if got := noTax.Rows[3][0][1].Text; !strings.Contains(got, "in EUR.") || strings.Contains(got, "ZAR") {
		t.Errorf("currency clause = %q, want the overriding prefix", got)
	}
}

func TestBrand(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"ScaryByte (Pty) Ltd": "ScaryByte",
		"Acme":                "Acme",
		"(Odd) Name":          "(Odd) Name",
	}
	for in, want := range tests {
		if got := brand(in); got != want {
			t.Errorf("brand(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDocumentInfo(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()

	title, author, subject := documentInfo(rec, mustTemplate(t, TemplateBranded))
	if want := "ScaryByte Quotation - Quote ID_Q-100 - Acme - 14-03-2025"; title != want {
		t.Errorf("branded title = %q, want %q", title, want)
	}
	if author != DefaultCompanyName {
		t.Errorf("branded author = %q", author)
	}
	if subject != "Quotation for Acme" {
		t.Errorf("subject = %q", subject)
	}

	title, author, _ = documentInfo(rec, mustTemplate(t, TemplatePlain))
	if want := "Quotation Q-100 - Acme - 14-03-2025"; title != want {
		t.Errorf("plain title = %q, want %q", title, want)
	}
	if author != "Sam Seller" {
		t.Errorf("plain author = %q", author)
	}
}

// ---------------------------------------------------------------------------
// TestLookupTemplate - Built-in templates
// ---------------------------------------------------------------------------

func TestLookupTemplate(t *testing.T) {
	t.Parallel()

	tmpl, err := LookupTemplate("  Plain ")
	if err != nil {
		t.Fatalf("LookupTemplate() error: %v", err)
	}
	if tmpl.Name != TemplatePlain || tmpl.Decorated {
		t.Errorf("got %+v", tmpl)
	}
	if math.Abs(tmpl.Margins.Left-19.05) > 1e-9 {
		t.Errorf("plain left margin = %v, want 19.05mm", tmpl.Margins.Left)
	}

	branded := mustTemplate(t, TemplateBranded)
	if !branded.Decorated || branded.QuoteNumberDefault != "0000" {
		t.Errorf("branded = %+v", branded)
	}

	_, err = LookupTemplate("fancy")
	if err == nil || !strings.Contains(err.Error(), "branded, plain") {
		t.Errorf("error = %v, want the available names", err)
	}

	// Lookup returns copies.
	branded.Currency.Prefix = "EUR "
	if mustTemplate(t, TemplateBranded).Currency.Prefix != "R " {
		t.Error("modifying a looked-up template changed the built-in")
	}
}

func TestTemplate_FormatDate(t *testing.T) {
	t.Parallel()

	branded := mustTemplate(t, TemplateBranded)
	tests := []struct {
		raw  string
		want string
	}{
		{"2025-03-14", "14/03/2025"},
		{"2025-03-14T09:30:00Z", "14/03/2025"},
		{"", "N/A"},
		{"next week", "next week"},
	}
	for _, tt := range tests {
		if got := branded.formatDate(tt.raw); got != tt.want {
			t.Errorf("formatDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
