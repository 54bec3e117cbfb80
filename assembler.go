package quote2pdf

import (
	"fmt"

	"github.com/alnah/go-quote2pdf/internal/layout"
	"github.com/alnah/go-quote2pdf/internal/render"
)

const eps = 1e-6

// assembler flows presented pieces down the pages of a surface. The
// decorator runs on every page it opens.
type assembler struct {
	s       render.Surface
	fonts   layout.Fonts
	deco    Decorator
	margins Margins

	pageH float64
	top   float64 // first usable y of the current page
	limit float64 // last usable y of the current page
	y     float64
}

// assemble lays pieces out on s, starting a first page even when there is
// nothing to draw.
func assemble(s render.Surface, fonts layout.Fonts, deco Decorator, margins Margins, pieces []piece) error {
	pageW, pageH := s.PageSize()
	a := &assembler{s: s, fonts: fonts, deco: deco, margins: margins, pageH: pageH}
	if err := a.newPage(); err != nil {
		return err
	}

	width := pageW - margins.Left - margins.Right
	for i, p := range pieces {
		if p.brk {
			if !a.empty() {
				if err := a.newPage(); err != nil {
					return err
				}
			}
			continue
		}

		g, err := p.table.Layout(s, fonts, width)
		if err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrRender, i, err)
		}
		if !a.empty() {
			a.y += p.before
		}
		if err := a.flow(g, i); err != nil {
			return err
		}
		a.y += p.after
	}
	return nil
}

func (a *assembler) newPage() error {
	a.s.AddPage()
	top, bottom, err := a.deco.Decorate(a.s)
	if err != nil {
		return fmt.Errorf("%w: page %d decoration: %w", ErrRender, a.s.PageCount(), err)
	}
	a.top = max(a.margins.Top, top)
	a.limit = a.pageH - max(a.margins.Bottom, bottom)
	if a.limit-a.top <= eps {
		return fmt.Errorf("%w: page decoration leaves no room for the body", ErrRender)
	}
	a.y = a.top
	return nil
}

func (a *assembler) empty() bool {
	return a.y-a.top <= eps
}

// flow draws the rows of g, breaking pages between row groups. The header
// rows stay with the first body group and are repeated on every
// continuation page.
func (a *assembler) flow(g *layout.Grid, block int) error {
	rows := g.Rows()
	header := g.HeaderRows()

	for r := 0; r < rows; {
		repeat := header > 0 && r >= header && g.CanBreakBefore(header)
		headH := 0.0
		if repeat {
			headH = g.RowsHeight(0, header)
		}

		end, used := r, 0.0
		needed := 0.0
		for end < rows {
			next := g.GroupEnd(end)
			if end < header {
				next = max(next, header)
				if next == header && next < rows {
					next = g.GroupEnd(next)
				}
			}
			h := g.RowsHeight(end, next)
			if a.y+headH+used+h > a.limit+eps {
				needed = h
				break
			}
			used += h
			end = next
		}

		if end == r {
			if a.empty() {
				return fmt.Errorf("%w: block %d row %d needs %.1fmm, page body has %.1fmm",
					ErrRender, block, r, headH+needed, a.limit-a.top)
			}
			if err := a.newPage(); err != nil {
				return err
			}
			continue
		}

		if repeat {
			a.y += g.Draw(a.s, a.margins.Left, a.y, 0, header)
		}
		a.y += g.Draw(a.s, a.margins.Left, a.y, r, end)
		r = end
		if r < rows {
			if err := a.newPage(); err != nil {
				return err
			}
		}
	}
	return nil
}
