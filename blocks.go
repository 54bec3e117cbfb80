package quote2pdf

import "github.com/alnah/go-quote2pdf/internal/layout"

// Block is one unit of body content. The set of blocks is closed; a
// template presents each kind as a styled table.
type Block interface {
	block()
}

// HeadingBlock is a standalone title line.
type HeadingBlock struct {
	Text string
}

// Field is a labelled value.
type Field struct {
	Label string
	Value string
}

// InfoBlock identifies the parties. The branded layout prints Title and
// Fields as a form; the plain layout prints From and To side by side.
type InfoBlock struct {
	Title  string
	Fields []Field

	From []string
	To   []string
}

// MetadataBlock lists the quotation identifiers in a two-column grid.
type MetadataBlock struct {
	Fields []Field
}

// ItemRow is one line of the item table, already formatted.
type ItemRow struct {
	Name        string
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

// ItemTable lists the line items under a title and a header row. With no
// items only the title and header are printed.
type ItemTable struct {
	Title   string
	Headers [4]string
	Rows    []ItemRow
}

// TotalRow is one line of the totals block.
type TotalRow struct {
	Label string
	Value string
	Grand bool // the final TOTAL line
}

// TotalsBlock lists the aggregates under the item table.
type TotalsBlock struct {
	Rows []TotalRow
}

// TextSection is a titled body of text. Each entry of Rows is printed in
// its own cell, so long sections can break between rows.
type TextSection struct {
	Title string
	Rows  []layout.Content

	// FinePrint sets the rows in small type under a dark title bar.
	FinePrint bool
}

// SignatureBlock is the acceptance form: pairs of fill-in lines.
type SignatureBlock struct {
	Lines [][2]string
}

// PageBreakMarker starts a new page unless the current one is empty.
type PageBreakMarker struct{}

func (HeadingBlock) block()    {}
func (InfoBlock) block()       {}
func (MetadataBlock) block()   {}
func (ItemTable) block()       {}
func (TotalsBlock) block()     {}
func (TextSection) block()     {}
func (SignatureBlock) block()  {}
func (PageBreakMarker) block() {}
