package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Page size names understood by NewPDF.
const (
	PageA4     = "A4"
	PageLetter = "Letter"
)

// PDF is a Surface backed by gofpdf.
type PDF struct {
	doc       *gofpdf.Fpdf
	utf8      map[string]bool // families registered from TrueType data
	translate func(string) string
	family    string
}

// Compile-time interface check.
var _ Surface = (*PDF)(nil)

// NewPDF creates a portrait PDF surface in millimeters.
// Automatic page breaks are disabled: pagination belongs to the caller.
func NewPDF(pageSize string) *PDF {
	doc := gofpdf.New("P", "mm", pageSize, "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	return &PDF{
		doc:       doc,
		utf8:      make(map[string]bool),
		translate: doc.UnicodeTranslatorFromDescriptor(""),
	}
}

func (p *PDF) PageSize() (float64, float64) {
	return p.doc.GetPageSize()
}

func (p *PDF) AddPage() {
	p.doc.AddPage()
}

func (p *PDF) PageCount() int {
	return p.doc.PageCount()
}

// RegisterFont embeds a TrueType font. gofpdf latches errors on the document,
// so a failed registration is cleared here and returned to the caller
// instead of poisoning the final Output.
func (p *PDF) RegisterFont(family, style string, ttf []byte) error {
	p.doc.AddUTF8FontFromBytes(family, style, ttf)
	if err := p.doc.Error(); err != nil {
		p.doc.ClearError()
		return fmt.Errorf("%w: %s %q: %v", ErrFontRegister, family, style, err)
	}
	p.utf8[strings.ToLower(family)] = true
	return nil
}

func (p *PDF) SetInfo(info Info) {
	p.doc.SetTitle(info.Title, true)
	p.doc.SetAuthor(info.Author, true)
	p.doc.SetSubject(info.Subject, true)
	p.doc.SetCreator(info.Creator, true)
}

func (p *PDF) SetFont(f Font) {
	p.family = strings.ToLower(f.Family)
	p.doc.SetFont(f.Family, f.Style, f.Size)
}

func (p *PDF) StringWidth(s string) float64 {
	return p.doc.GetStringWidth(p.text(s))
}

func (p *PDF) SetTextColor(c Color) {
	p.doc.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func (p *PDF) SetFillColor(c Color) {
	p.doc.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func (p *PDF) SetDrawColor(c Color) {
	p.doc.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func (p *PDF) SetLineWidth(w float64) {
	p.doc.SetLineWidth(w)
}

func (p *PDF) FillRect(x, y, w, h float64) {
	p.doc.Rect(x, y, w, h, "F")
}

func (p *PDF) Line(x1, y1, x2, y2 float64) {
	p.doc.Line(x1, y1, x2, y2)
}

func (p *PDF) Text(x, y float64, s string) {
	p.doc.Text(x, y, p.text(s))
}

// Image registers png under name (once) and draws it. Like RegisterFont, a
// gofpdf failure is cleared so the document stays writable.
func (p *PDF) Image(name string, png []byte, x, y, w, h float64) error {
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	if p.doc.GetImageInfo(name) == nil {
		p.doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	}
	if err := p.doc.Error(); err == nil {
		p.doc.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	}
	if err := p.doc.Error(); err != nil {
		p.doc.ClearError()
		return fmt.Errorf("%w: %s: %v", ErrImage, name, err)
	}
	return nil
}

func (p *PDF) Output(w io.Writer) error {
	if err := p.doc.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	return nil
}

// text converts UTF-8 to the code page of the core fonts when the current
// family was not registered from TrueType data.
func (p *PDF) text(s string) string {
	if p.utf8[p.family] {
		return s
	}
	return p.translate(s)
}
