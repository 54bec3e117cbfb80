// Package rendertest provides a recording render.Surface for tests.
package rendertest

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-quote2pdf/internal/render"
)

// Op is one recorded drawing call.
type Op struct {
	Page int
	Kind string // "text", "rect", "line", "image"
	X, Y float64
	W, H float64
	Text string
	Font render.Font
}

// Recorder implements render.Surface by recording every call. Text width is
// deterministic: each rune is half the font size in points, converted to mm.
type Recorder struct {
	Width, Height float64
	Ops           []Op
	Fonts         map[string]bool
	Info          render.Info

	// FailFonts makes RegisterFont fail. FailImages makes Image fail.
	// FailOutput makes Output fail.
	FailFonts  bool
	FailImages bool
	FailOutput bool

	pages int
	font  render.Font
}

var _ render.Surface = (*Recorder)(nil)

// New returns a Recorder with an A4-sized page.
func New() *Recorder {
	return &Recorder{Width: 210, Height: 297, Fonts: make(map[string]bool)}
}

func (r *Recorder) PageSize() (float64, float64) { return r.Width, r.Height }
func (r *Recorder) AddPage()                     { r.pages++ }
func (r *Recorder) PageCount() int               { return r.pages }
func (r *Recorder) SetInfo(info render.Info)     { r.Info = info }
func (r *Recorder) SetFont(f render.Font)        { r.font = f }
func (r *Recorder) SetTextColor(render.Color)    {}
func (r *Recorder) SetFillColor(render.Color)    {}
func (r *Recorder) SetDrawColor(render.Color)    {}
func (r *Recorder) SetLineWidth(float64)         {}

func (r *Recorder) RegisterFont(family, style string, ttf []byte) error {
	if r.FailFonts {
		return fmt.Errorf("%w: %s", render.ErrFontRegister, family)
	}
	r.Fonts[family+"/"+style] = true
	return nil
}

func (r *Recorder) StringWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.font.Size * 0.5 / render.PointsPerMM
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Page: r.pages, Kind: "rect", X: x, Y: y, W: w, H: h})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.Ops = append(r.Ops, Op{Page: r.pages, Kind: "line", X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (r *Recorder) Text(x, y float64, s string) {
	r.Ops = append(r.Ops, Op{Page: r.pages, Kind: "text", X: x, Y: y, Text: s, Font: r.font})
}

func (r *Recorder) Image(name string, png []byte, x, y, w, h float64) error {
	if r.FailImages {
		return fmt.Errorf("%w: %s", render.ErrImage, name)
	}
	r.Ops = append(r.Ops, Op{Page: r.pages, Kind: "image", X: x, Y: y, W: w, H: h, Text: name})
	return nil
}

func (r *Recorder) Output(w io.Writer) error {
	if r.FailOutput {
		return fmt.Errorf("%w: forced", render.ErrOutput)
	}
	if r.pages == 0 {
		return errors.New("rendertest: no pages")
	}
	_, err := fmt.Fprintf(w, "%%PDF-rendertest pages=%d ops=%d\n", r.pages, len(r.Ops))
	return err
}

// Texts returns the text drawn on page (1-based), in drawing order.
// Page 0 returns text from every page.
func (r *Recorder) Texts(page int) []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" && (page == 0 || op.Page == page) {
			out = append(out, op.Text)
		}
	}
	return out
}

// Joined returns the text of page joined by single spaces.
func (r *Recorder) Joined(page int) string {
	return strings.Join(r.Texts(page), " ")
}

// Count returns how many ops of kind were recorded on page (0 = all pages).
func (r *Recorder) Count(page int, kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind && (page == 0 || op.Page == page) {
			n++
		}
	}
	return n
}
