package quote2pdf

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-quote2pdf/internal/dateutil"
	"github.com/alnah/go-quote2pdf/internal/layout"
	"github.com/alnah/go-quote2pdf/internal/markup"
)

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

// Compose builds the ordered body blocks of a document. The order is fixed
// by the template; optional sections are left out when empty.
func Compose(rec *QuotationRecord, totals Totals, tmpl Template) []Block {
	if tmpl.kind == kindPlain {
		return composePlain(rec, totals, tmpl)
	}
	return composeBranded(rec, totals, tmpl)
}

func composePlain(rec *QuotationRecord, totals Totals, tmpl Template) []Block {
	blocks := []Block{
		HeadingBlock{Text: "QUOTATION"},
		InfoBlock{
			From: nonEmpty(rec.CreatedByName, rec.CreatedByEmail),
			To:   nonEmpty(rec.Client.Name, rec.Client.Company, rec.Client.Email, rec.Client.Phone, rec.Client.Address),
		},
		MetadataBlock{Fields: []Field{
			{Label: "Quote Number:", Value: rec.QuoteNumber},
			{Label: "Date:", Value: tmpl.formatDate(rec.CreatedAt)},
			{Label: "Status:", Value: upper.String(rec.Status)},
			{Label: "Valid Until:", Value: tmpl.formatDate(rec.ValidUntil)},
		}},
		itemTable(rec, tmpl, "Items", [4]string{"Description", "Quantity", "Unit Price", "Total"}),
		totalsBlock(totals, tmpl.Currency, totalLabels{
			subtotal: "Subtotal:",
			discount: "Discount:",
			tax:      "Tax (%s%%):",
			total:    "TOTAL:",
		}),
	}
	blocks = appendText(blocks, "Notes", rec.Notes)
	blocks = appendText(blocks, "Terms & Conditions", rec.Terms)
	return blocks
}

func composeBranded(rec *QuotationRecord, totals Totals, tmpl Template) []Block {
	contact := rec.Contact.Name
	if p := rec.Contact.Position; p != "" && p != dateutil.NotAvailable {
		contact += " [" + p + "]"
	}

	blocks := []Block{
		InfoBlock{
			Title: "CLIENT INFORMATION",
			Fields: []Field{
				{Label: "Organization:", Value: fallback(rec.Client.Company, rec.Client.Name)},
				{Label: "Contact Person:", Value: contact},
				{Label: "Phone:", Value: fallback(rec.Contact.Phone, dateutil.NotAvailable)},
				{Label: "Physical Address:", Value: rec.Client.Address},
				{Label: "Email:", Value: fallback(rec.Contact.Email, dateutil.NotAvailable)},
			},
		},
	}
	if rec.ShowDescription {
		blocks = appendText(blocks, "DESCRIPTION OF SERVICES", rec.Description)
	}
	blocks = append(blocks,
		itemTable(rec, tmpl, "ITEMIZED COSTS", [4]string{"DESCRIPTION", "QTY", "UNIT PRICE", "AMOUNT"}),
		totalsBlock(totals, tmpl.Currency, totalLabels{
			subtotal: "Subtotal (Excl. VAT):",
			discount: "Discount:",
			tax:      "VAT (%s%%):",
			total:    brandedTotal(totals),
		}),
	)
	blocks = appendText(blocks, "NOTES", rec.Notes)
	blocks = appendText(blocks, "TERMS", rec.Terms)

	return append(blocks,
		PageBreakMarker{},
		HeadingBlock{Text: "CUSTOMER ACCEPTANCE"},
		conditions(rec.Company, totals, tmpl.Currency),
		SignatureBlock{Lines: [][2]string{
			{"SIGNED AT: _______________________", "DATE: ______________________________"},
			{"", ""},
			{"FULL NAME: _______________________", "DESIGNATION: _______________________"},
			{"", ""},
			{"SIGNATURE: _______________________", "STAMP:"},
		}},
	)
}

func itemTable(rec *QuotationRecord, tmpl Template, title string, headers [4]string) ItemTable {
	rows := make([]ItemRow, 0, len(rec.Items))
	for _, li := range rec.Items {
		rows = append(rows, ItemRow{
			Name:        li.Name,
			Description: li.Description,
			Quantity:    formatQuantity(li.Quantity),
			UnitPrice:   tmpl.Currency.Format(li.Price),
			Amount:      tmpl.Currency.Format(li.Total()),
		})
	}
	return ItemTable{Title: title, Headers: headers, Rows: rows}
}

type totalLabels struct {
	subtotal string
	discount string
	tax      string // format with one %s for the rate
	total    string
}

func brandedTotal(t Totals) string {
	if t.ShowTax() {
		return "TOTAL (Incl. VAT):"
	}
	return "TOTAL (Excl. VAT):"
}

func totalsBlock(t Totals, cur Currency, labels totalLabels) TotalsBlock {
	rows := []TotalRow{{Label: labels.subtotal, Value: cur.Format(t.Subtotal)}}
	if t.ShowDiscount() {
		rows = append(rows, TotalRow{Label: labels.discount, Value: cur.Format(t.Discount.Neg())})
	}
	if t.ShowTax() {
		rows = append(rows, TotalRow{Label: fmt.Sprintf(labels.tax, formatRate(t.TaxRate)), Value: cur.Format(t.TaxAmount)})
	}
	rows = append(rows, TotalRow{Label: labels.total, Value: cur.Format(t.Total), Grand: true})
	return TotalsBlock{Rows: rows}
}

// appendText adds a titled markup section when text is not blank. Text that
// parses to nothing, such as a lone rule or comment, is printed as written.
func appendText(blocks []Block, title, text string) []Block {
	if strings.TrimSpace(text) == "" {
		return blocks
	}
	body := markup.Parse(text)
	if body == nil {
		body = layout.Plain(strings.TrimSpace(text))
	}
	return append(blocks, TextSection{Title: title, Rows: textRows(body)})
}

// textRows gives every paragraph and every forced line its own row so the
// section can break between pages anywhere a line ends.
func textRows(body layout.Content) []layout.Content {
	var rows []layout.Content
	for _, p := range body {
		var cur layout.Paragraph
		for _, sp := range p {
			if sp.Text == "\n" {
				rows = append(rows, layout.Content{cur})
				cur = nil
				continue
			}
			cur = append(cur, sp)
		}
		rows = append(rows, layout.Content{cur})
	}
	return rows
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// brand shortens a registered company name to its trading name:
// "ScaryByte (Pty) Ltd" becomes "ScaryByte".
func brand(company string) string {
	if i := strings.Index(company, " ("); i > 0 {
		return company[:i]
	}
	return company
}

// conditions builds the standard terms printed on the acceptance page.
func conditions(c Company, t Totals, cur Currency) TextSection {
	name := brand(c.Name)

	vat := clause{"Exclusive of VAT", "All prices quoted exclude Value Added Tax (VAT)."}
	if t.ShowTax() {
		vat = clause{"Inclusive of VAT", "All prices quoted include a " + formatRate(t.TaxRate) + "% Value Added Tax (VAT)."}
	}
	clauses := []clause{
		vat,
		{"Validity of Quotation", "This quotation is valid for 7 (seven) working days from the date of issue, unless otherwise specified in writing by " + name + "."},
		{"Payment Terms", "Payment is due within 1 (one) working week / 7 (seven) working days from the date of invoice following acceptance of this quotation."},
		{"Currency", "All amounts quoted are in " + cur.name() + "."},
		{"Acceptance of Quotation", "Acceptance of this quotation constitutes agreement to " + name + "'s standard invoicing terms and conditions, including payment terms, ownership terms, and surcharge conditions."},
		{"Late Payment", "In the event of late or overdue payment, the customer agrees to cover all costs reasonably incurred by " + name + ", including any applicable and approved additional fees."},
		{"Credit Authorisation", "Any credit notes, discounts, or adjustments remain subject to the approval and discretion of " + name + "'s management team."},
		{"Ownership of Goods", "All goods and deliverables remain the property of " + name + " until full and final payment has been made."},
		{"Overdue Payments & Surcharges", "Payments not received within 15 (fifteen) days from the invoice date will be deemed overdue. " + name + " reserves the right to suspend or terminate services or apply a surcharge calculated at an interest rate of 2% for every 10 (ten) days of delayed payment."},
		{"Amendments", name + " reserves the right to revise or update these terms and conditions at any time. Any changes affecting an already accepted quotation will be communicated in writing."},
	}

	rows := make([]layout.Content, 0, len(clauses))
	for i, cl := range clauses {
		rows = append(rows, layout.Content{{
			{Text: fmt.Sprintf("%d. %s", i+1, cl.title), Bold: true},
			{Text: "\n" + cl.text},
		}})
	}
	return TextSection{Title: "Terms & Conditions (Applicable to This Quotation)", Rows: rows, FinePrint: true}
}

type clause struct {
	title string
	text  string
}

// PageHeader is the document-level data the branded page frame prints.
type PageHeader struct {
	QuoteID    string
	Date       string
	ValidUntil string
	PreparedBy string
	Company    Company
}

func pageHeader(rec *QuotationRecord, tmpl Template) PageHeader {
	return PageHeader{
		QuoteID:    rec.QuoteNumber,
		Date:       tmpl.formatDate(rec.CreatedAt),
		ValidUntil: tmpl.formatDate(rec.ValidUntil),
		PreparedBy: rec.PreparedBy,
		Company:    rec.Company,
	}
}

// documentInfo returns the PDF metadata: title, author and subject.
func documentInfo(rec *QuotationRecord, tmpl Template) (title, author, subject string) {
	client := fallback(rec.Client.Company, rec.Client.Name)
	date := dateutil.Display(rec.CreatedAt, "02-01-2006")
	title = fmt.Sprintf("%s Quotation - Quote ID_%s - %s - %s", brand(rec.Company.Name), rec.QuoteNumber, client, date)
	author = rec.Company.Name
	if tmpl.kind == kindPlain {
		title = fmt.Sprintf("Quotation %s - %s - %s", rec.QuoteNumber, client, date)
		author = rec.CreatedByName
	}
	return title, author, "Quotation for " + client
}
