package layout

import (
	"errors"
	"fmt"

	"github.com/alnah/go-quote2pdf/internal/render"
)

// Sentinel errors for table layout.
var (
	ErrShape = errors.New("table row does not match column count")
	ErrSpan  = errors.New("invalid cell span")
)

// Width is a column width, either fixed (mm) or a fraction of the
// available width.
type Width struct {
	fixed float64
	frac  float64
}

// Fixed returns an absolute column width in millimeters.
func Fixed(mm float64) Width { return Width{fixed: mm} }

// Frac returns a width proportional to the available width.
func Frac(f float64) Width { return Width{frac: f} }

func (w Width) resolve(avail float64) float64 {
	if w.frac != 0 {
		return w.frac * avail
	}
	return w.fixed
}

// Range is a rectangular cell range. Negative indices count from the end:
// -1 is the last column or row.
type Range struct {
	Col0, Row0, Col1, Row1 int
}

// Cells returns the range from (c0, r0) to (c1, r1) inclusive.
func Cells(c0, r0, c1, r1 int) Range { return Range{c0, r0, c1, r1} }

// Row returns every cell of row r.
func Row(r int) Range { return Range{0, r, -1, r} }

// Col returns every cell of column c.
func Col(c int) Range { return Range{c, 0, c, -1} }

// All returns every cell of the table.
func All() Range { return Range{0, 0, -1, -1} }

// resolve converts negative indices and clamps to the grid. ok is false when
// the range is empty, for example a data-row range on a table with no data.
func (r Range) resolve(cols, rows int) (Range, bool) {
	fix := func(i, n int) int {
		if i < 0 {
			return n + i
		}
		return i
	}
	out := Range{fix(r.Col0, cols), fix(r.Row0, rows), fix(r.Col1, cols), fix(r.Row1, rows)}
	out.Col0, out.Row0 = max(out.Col0, 0), max(out.Row0, 0)
	out.Col1, out.Row1 = min(out.Col1, cols-1), min(out.Row1, rows-1)
	return out, out.Col0 <= out.Col1 && out.Row0 <= out.Row1
}

type lineKind int

const (
	linesNone lineKind = iota
	linesGrid
	linesBox
	linesAbove
	linesBelow
)

// Rule applies a Style or a border pattern to a cell range. Rules run in
// declaration order and later rules override earlier ones channel by
// channel.
type Rule struct {
	Range Range
	Style Style
	lines lineKind
	edge  Edge
}

// Apply styles every cell in r.
func Apply(r Range, s Style) Rule { return Rule{Range: r, Style: s} }

// GridLines draws every edge of every cell in r.
func GridLines(r Range, width float64, c render.Color) Rule {
	return Rule{Range: r, lines: linesGrid, edge: Edge{width, c}}
}

// Box draws the outline of r.
func Box(r Range, width float64, c render.Color) Rule {
	return Rule{Range: r, lines: linesBox, edge: Edge{width, c}}
}

// LineAbove draws the top edge of the first row of r.
func LineAbove(r Range, width float64, c render.Color) Rule {
	return Rule{Range: r, lines: linesAbove, edge: Edge{width, c}}
}

// LineBelow draws the bottom edge of the last row of r.
func LineBelow(r Range, width float64, c render.Color) Rule {
	return Rule{Range: r, lines: linesBelow, edge: Edge{width, c}}
}

// cellStyle returns what the rule contributes to cell (c, r) of the
// resolved range rr.
func (rule Rule) cellStyle(rr Range, c, r int) Style {
	s := rule.Style
	e := rule.edge
	switch rule.lines {
	case linesGrid:
		s = s.Edge(Top, e).Edge(Right, e).Edge(Bottom, e).Edge(Left, e)
	case linesBox:
		if r == rr.Row0 {
			s = s.Edge(Top, e)
		}
		if r == rr.Row1 {
			s = s.Edge(Bottom, e)
		}
		if c == rr.Col0 {
			s = s.Edge(Left, e)
		}
		if c == rr.Col1 {
			s = s.Edge(Right, e)
		}
	case linesAbove:
		if r == rr.Row0 {
			s = s.Edge(Top, e)
		}
	case linesBelow:
		if r == rr.Row1 {
			s = s.Edge(Bottom, e)
		}
	}
	return s
}

// Table is a grid of cell contents with column widths, style rules and
// merged ranges. Cells covered by a span (other than its top-left anchor)
// are ignored.
type Table struct {
	Columns []Width
	Rows    [][]Content
	Rules   []Rule
	Spans   []Range

	// HeaderRows are repeated at the top of every continuation page.
	HeaderRows int
}

type cell struct {
	style  Style
	span   Range // resolved; equal to the cell itself when not merged
	anchor bool
	body   block
}

// Grid is a table laid out at a fixed width. Row heights are final.
type Grid struct {
	widths  []float64
	heights []float64
	cells   [][]cell
	breaks  []bool // breaks[r]: a page may end before row r
	header  int
}

// Layout resolves widths, styles and spans, wraps every cell and computes
// row heights for the available width.
func (t *Table) Layout(m render.Measurer, fonts Fonts, avail float64) (*Grid, error) {
	cols := len(t.Columns)
	rows := len(t.Rows)
	for i, row := range t.Rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrShape, i, len(row), cols)
		}
	}

	g := &Grid{
		widths:  make([]float64, cols),
		heights: make([]float64, rows),
		cells:   make([][]cell, rows),
		breaks:  make([]bool, rows+1),
		header:  min(t.HeaderRows, rows),
	}
	for i, w := range t.Columns {
		g.widths[i] = w.resolve(avail)
	}
	for r := range g.cells {
		g.cells[r] = make([]cell, cols)
		for c := range g.cells[r] {
			g.cells[r][c] = cell{style: DefaultStyle, span: Range{c, r, c, r}, anchor: true}
		}
	}

	for _, rule := range t.Rules {
		rr, ok := rule.Range.resolve(cols, rows)
		if !ok {
			continue
		}
		for r := rr.Row0; r <= rr.Row1; r++ {
			for c := rr.Col0; c <= rr.Col1; c++ {
				g.cells[r][c].style = g.cells[r][c].style.Merge(rule.cellStyle(rr, c, r))
			}
		}
	}

	if err := g.applySpans(t.Spans, cols, rows); err != nil {
		return nil, err
	}

	for r := range g.cells {
		for c := range g.cells[r] {
			cl := &g.cells[r][c]
			if !cl.anchor {
				continue
			}
			inner := g.spanWidth(cl.span) - (cl.style.pad[Left]+cl.style.pad[Right])/render.PointsPerMM
			cl.body = wrap(m, t.Rows[r][c], cl.style, fonts, max(inner, 0))
		}
	}

	// Single-row cells size their row; merged rows grow the last row if the
	// merged content still does not fit.
	for r := range g.cells {
		for c := range g.cells[r] {
			cl := g.cells[r][c]
			if cl.anchor && cl.span.Row0 == cl.span.Row1 {
				g.heights[r] = max(g.heights[r], cl.needed())
			}
		}
	}
	for r := range g.cells {
		for c := range g.cells[r] {
			cl := g.cells[r][c]
			if !cl.anchor || cl.span.Row0 == cl.span.Row1 {
				continue
			}
			if have := g.spanHeight(cl.span); cl.needed() > have {
				g.heights[cl.span.Row1] += cl.needed() - have
			}
		}
	}

	for r := 0; r <= rows; r++ {
		g.breaks[r] = true
	}
	for _, sp := range g.spans() {
		for r := sp.Row0 + 1; r <= sp.Row1; r++ {
			g.breaks[r] = false
		}
	}
	return g, nil
}

func (g *Grid) applySpans(spans []Range, cols, rows int) error {
	for _, sp := range spans {
		rr, ok := sp.resolve(cols, rows)
		if !ok {
			return fmt.Errorf("%w: %+v outside %dx%d grid", ErrSpan, sp, cols, rows)
		}
		for r := rr.Row0; r <= rr.Row1; r++ {
			for c := rr.Col0; c <= rr.Col1; c++ {
				if cur := g.cells[r][c].span; cur != (Range{c, r, c, r}) {
					return fmt.Errorf("%w: %+v overlaps %+v", ErrSpan, rr, cur)
				}
			}
		}
		for r := rr.Row0; r <= rr.Row1; r++ {
			for c := rr.Col0; c <= rr.Col1; c++ {
				g.cells[r][c].span = rr
				g.cells[r][c].anchor = r == rr.Row0 && c == rr.Col0
			}
		}
	}
	return nil
}

func (g *Grid) spans() []Range {
	var out []Range
	for r := range g.cells {
		for c := range g.cells[r] {
			cl := g.cells[r][c]
			if cl.anchor && cl.span != (Range{c, r, c, r}) {
				out = append(out, cl.span)
			}
		}
	}
	return out
}

func (cl cell) needed() float64 {
	return cl.body.height + (cl.style.pad[Top]+cl.style.pad[Bottom])/render.PointsPerMM
}

func (g *Grid) spanWidth(sp Range) float64 {
	w := 0.0
	for c := sp.Col0; c <= sp.Col1; c++ {
		w += g.widths[c]
	}
	return w
}

func (g *Grid) spanHeight(sp Range) float64 {
	h := 0.0
	for r := sp.Row0; r <= sp.Row1; r++ {
		h += g.heights[r]
	}
	return h
}

// Width returns the total table width.
func (g *Grid) Width() float64 {
	w := 0.0
	for _, cw := range g.widths {
		w += cw
	}
	return w
}

// Height returns the total table height.
func (g *Grid) Height() float64 {
	return g.RowsHeight(0, len(g.heights))
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.heights) }

// HeaderRows returns how many leading rows repeat on continuation pages.
func (g *Grid) HeaderRows() int { return g.header }

// RowsHeight returns the height of rows [from, to).
func (g *Grid) RowsHeight(from, to int) float64 {
	h := 0.0
	for r := from; r < to; r++ {
		h += g.heights[r]
	}
	return h
}

// CanBreakBefore reports whether a page may end right before row r. Rows
// joined by a vertical merge must stay on one page.
func (g *Grid) CanBreakBefore(r int) bool { return g.breaks[r] }

// GroupEnd returns the end (exclusive) of the unsplittable row group that
// starts at row r.
func (g *Grid) GroupEnd(r int) int {
	end := r + 1
	for end < len(g.heights) && !g.breaks[end] {
		end++
	}
	return end
}

// CellText returns the wrapped text of cell (c, r), lines joined by "\n".
// Covered cells return "".
func (g *Grid) CellText(c, r int) string {
	cl := g.cells[r][c]
	if !cl.anchor {
		return ""
	}
	return cl.body.text()
}

// Draw paints rows [from, to) with the table's top-left corner at (x, y)
// and returns the height drawn. Backgrounds go first, then text, then
// borders, so later borders sit on top.
func (g *Grid) Draw(s render.Surface, x, y float64, from, to int) float64 {
	tops := make([]float64, len(g.heights)+1)
	for r := from; r < to; r++ {
		tops[r+1] = tops[r] + g.heights[r]
	}
	lefts := make([]float64, len(g.widths)+1)
	for c, w := range g.widths {
		lefts[c+1] = lefts[c] + w
	}
	box := func(sp Range) (cx, cy, cw, ch float64) {
		return x + lefts[sp.Col0], y + tops[sp.Row0] - tops[from], g.spanWidth(sp), g.spanHeight(sp)
	}

	for r := from; r < to; r++ {
		for c := range g.cells[r] {
			cl := g.cells[r][c]
			if !cl.anchor || cl.style.set&chFill == 0 {
				continue
			}
			cx, cy, cw, ch := box(cl.span)
			s.SetFillColor(cl.style.fill)
			s.FillRect(cx, cy, cw, ch)
		}
	}

	for r := from; r < to; r++ {
		for c := range g.cells[r] {
			cl := g.cells[r][c]
			if !cl.anchor {
				continue
			}
			cx, cy, cw, ch := box(cl.span)
			st := cl.style
			padT := st.pad[Top] / render.PointsPerMM
			padB := st.pad[Bottom] / render.PointsPerMM
			padL := st.pad[Left] / render.PointsPerMM
			padR := st.pad[Right] / render.PointsPerMM
			ty := cy + padT
			switch st.valign {
			case VAlignMiddle:
				ty = cy + (ch-cl.body.height)/2
			case VAlignBottom:
				ty = cy + ch - padB - cl.body.height
			}
			cl.body.draw(s, cx+padL, ty, cw-padL-padR, st.align)
		}
	}

	for r := from; r < to; r++ {
		for c := range g.cells[r] {
			cl := g.cells[r][c]
			if !cl.anchor {
				continue
			}
			sp := cl.span
			cx, cy, cw, ch := box(sp)
			top := cl.style.edges[Top]
			left := cl.style.edges[Left]
			bottom := g.cells[sp.Row1][sp.Col0].style.edges[Bottom]
			right := g.cells[sp.Row0][sp.Col1].style.edges[Right]
			strokeEdge(s, top, cx, cy, cx+cw, cy)
			strokeEdge(s, bottom, cx, cy+ch, cx+cw, cy+ch)
			strokeEdge(s, left, cx, cy, cx, cy+ch)
			strokeEdge(s, right, cx+cw, cy, cx+cw, cy+ch)
		}
	}
	return g.RowsHeight(from, to)
}

func strokeEdge(s render.Surface, e Edge, x1, y1, x2, y2 float64) {
	if e.Width <= 0 {
		return
	}
	s.SetDrawColor(e.Color)
	s.SetLineWidth(e.Width / render.PointsPerMM)
	s.Line(x1, y1, x2, y2)
}
