package quote2pdf

import (
	"fmt"

	"github.com/alnah/go-quote2pdf/internal/assets"
	"github.com/alnah/go-quote2pdf/internal/layout"
	"github.com/alnah/go-quote2pdf/internal/render"
)

// Decorator draws the fixed frame of a page, independent of the body flow.
type Decorator interface {
	// Decorate draws on the current page and returns the heights, in mm
	// from the page edges, that the body must leave free.
	Decorate(s render.Surface) (top, bottom float64, err error)
}

// noDecorator leaves pages bare.
type noDecorator struct{}

func (noDecorator) Decorate(render.Surface) (float64, float64, error) { return 0, 0, nil }

// Branded frame geometry, in mm.
const (
	frameSide    = 15.0 // left and right margin
	frameTop     = 10.0 // top of logo and metadata box
	logoW        = 80.0
	logoH        = 25.0
	metaColW     = 35.0
	footerRule   = 20.0 // rule distance from the page bottom
	footerText   = 15.0 // footer baseline distance from the page bottom
	footerExtent = 22.0
	headerGap    = 5.0 // space below the title strip
)

// brandedDecorator draws the logo, tagline, metadata box, contact line and
// title strip at the top of every page and a rule with the company name
// and website at the bottom. Tables are laid out on first use and reused,
// so every page is identical.
type brandedDecorator struct {
	header PageHeader
	fonts  layout.Fonts
	logo   *assets.Logo
	warn   func(error)

	meta, contact, strip *layout.Grid
	logoFailed           bool
}

func newBrandedDecorator(h PageHeader, fonts layout.Fonts, logo *assets.Logo, warn func(error)) *brandedDecorator {
	if warn == nil {
		warn = func(error) {}
	}
	return &brandedDecorator{header: h, fonts: fonts, logo: logo, warn: warn}
}

func (d *brandedDecorator) Decorate(s render.Surface) (float64, float64, error) {
	w, h := s.PageSize()
	inner := w - 2*frameSide
	if d.meta == nil {
		if err := d.layout(s, inner); err != nil {
			return 0, 0, err
		}
	}

	if d.logo != nil && !d.logoFailed {
		dw, dh := fit(d.logo.Width, d.logo.Height, logoW, logoH)
		if err := s.Image("logo", d.logo.PNG, frameSide, frameTop+(logoH-dh)/2, dw, dh); err != nil {
			// Reported once; later pages skip the logo.
			d.logoFailed = true
			d.warn(fmt.Errorf("%w: logo %s: %v", ErrAssetMissing, d.logo.Path, err))
		}
	}

	tagline := frameTop + logoH + 5
	s.SetFont(d.fonts.Face(false, false, 11))
	s.SetTextColor(render.Black)
	s.Text(frameSide, tagline, d.header.Company.Tagline)

	d.meta.Draw(s, w-frameSide-d.meta.Width(), frameTop, 0, d.meta.Rows())

	y := max(tagline, frameTop+d.meta.Height()) + 3
	y += d.contact.Draw(s, frameSide, y, 0, d.contact.Rows())
	y += 2
	y += d.strip.Draw(s, frameSide, y, 0, d.strip.Rows())

	base := h - footerRule
	s.SetDrawColor(render.LightGrey)
	s.SetLineWidth(pt(0.5))
	s.Line(frameSide, base, w-frameSide, base)

	s.SetFont(d.fonts.Face(false, false, 8))
	s.SetTextColor(textLight)
	s.Text(frameSide, h-footerText, d.header.Company.Name)
	site := lower.String(d.header.Company.Website)
	s.Text(w-frameSide-s.StringWidth(site), h-footerText, site)

	return y + headerGap, footerExtent, nil
}

func (d *brandedDecorator) layout(m render.Measurer, inner float64) error {
	hd := d.header
	meta := &layout.Table{
		Columns: []layout.Width{layout.Fixed(metaColW), layout.Fixed(metaColW)},
		Rows: [][]layout.Content{
			{layout.Plain("QUOTE ID"), layout.Plain("DATE")},
			{layout.Plain(hd.QuoteID), layout.Plain(hd.Date)},
			{layout.Plain("VALID UNTIL"), layout.Plain("PREPARED BY")},
			{layout.Plain(hd.ValidUntil), layout.Plain(hd.PreparedBy)},
		},
		Rules: []layout.Rule{
			layout.Apply(layout.All(), style.Size(8).Align(layout.AlignCenter).VAlign(layout.VAlignMiddle).PadY(3)),
			layout.Apply(layout.Row(0), style.Fill(headerGrey).Weight(layout.Bold)),
			layout.Apply(layout.Row(1), style.Fill(render.White).TextColor(textLight)),
			layout.Apply(layout.Row(2), style.Fill(headerGrey).Weight(layout.Bold)),
			layout.Apply(layout.Row(3), style.Fill(render.White).TextColor(textLight)),
			layout.GridLines(layout.All(), 0.5, render.Black),
		},
	}

	c := hd.Company
	contact := &layout.Table{
		Columns: []layout.Width{layout.Frac(1)},
		Rows: [][]layout.Content{{{{
			{Text: c.Name, Bold: true},
			{Text: " | " + c.Address + " | "},
			{Text: "Tel:", Bold: true},
			{Text: " " + c.Phone + " | "},
			{Text: "Email:", Bold: true},
			{Text: " " + c.Email},
		}}}},
		Rules: []layout.Rule{
			layout.Apply(layout.All(), style.Size(9).Leading(11).TextColor(textDark).Align(layout.AlignCenter).Padding(0)),
		},
	}

	strip := &layout.Table{
		Columns: []layout.Width{layout.Frac(100.0 / 180), layout.Frac(40.0 / 180), layout.Frac(5.0 / 180), layout.Frac(35.0 / 180)},
		Rows: [][]layout.Content{
			{layout.Plain("QUOTATION"), layout.Plain("Company Registration"), layout.Plain(":"), layout.Plain(c.RegNumber)},
			{nil, layout.Plain("VAT Registration"), layout.Plain(":"), layout.Plain(c.VATNumber)},
		},
		Spans: []layout.Range{layout.Cells(0, 0, 0, 1)},
		Rules: []layout.Rule{
			layout.Apply(layout.All(), style.Size(8).TextColor(textLight).VAlign(layout.VAlignMiddle).PadX(0).PadY(2)),
			layout.Apply(layout.Col(0), style.Size(24).Weight(layout.Bold).TextColor(textDark)),
			layout.Apply(layout.Col(2), style.Align(layout.AlignCenter)),
			layout.Apply(layout.Col(3), style.Align(layout.AlignRight)),
			layout.LineAbove(layout.All(), 1, headerGrey),
			layout.LineBelow(layout.All(), 1, headerGrey),
		},
	}

	var err error
	if d.meta, err = meta.Layout(m, d.fonts, 2*metaColW); err != nil {
		return fmt.Errorf("%w: header metadata: %v", ErrRender, err)
	}
	if d.contact, err = contact.Layout(m, d.fonts, inner); err != nil {
		return fmt.Errorf("%w: contact line: %v", ErrRender, err)
	}
	if d.strip, err = strip.Layout(m, d.fonts, inner); err != nil {
		return fmt.Errorf("%w: title strip: %v", ErrRender, err)
	}
	return nil
}

// fit scales a w×h pixel image into a box, keeping its aspect ratio.
func fit(w, h int, boxW, boxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return boxW, boxH
	}
	scale := min(boxW/float64(w), boxH/float64(h))
	return float64(w) * scale, float64(h) * scale
}
