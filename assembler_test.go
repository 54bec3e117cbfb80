package quote2pdf

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alnah/go-quote2pdf/internal/layout"
	"github.com/alnah/go-quote2pdf/internal/render"
	"github.com/alnah/go-quote2pdf/internal/render/rendertest"
)

// countingDecorator reserves fixed bands and marks every page it sees.
type countingDecorator struct {
	top, bottom float64
	err         error
	calls       int
}

func (d *countingDecorator) Decorate(s render.Surface) (float64, float64, error) {
	d.calls++
	s.Text(0, 0, fmt.Sprintf("frame-%d", d.calls))
	return d.top, d.bottom, d.err
}

var testMargins = Margins{Top: 10, Right: 10, Bottom: 10, Left: 10}

func rowsTable(header string, n int) *layout.Table {
	t := &layout.Table{Columns: []layout.Width{layout.Frac(1)}}
	if header != "" {
		t.Rows = append(t.Rows, []layout.Content{layout.Plain(header)})
		t.HeaderRows = 1
	}
	for i := 1; i <= n; i++ {
		t.Rows = append(t.Rows, []layout.Content{layout.Plain(fmt.Sprintf("row%03d", i))})
	}
	return t
}

// ---------------------------------------------------------------------------
// TestAssemble - Page flow
// ---------------------------------------------------------------------------

func TestAssemble_Breaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pieces    []piece
		wantPages int
	}{
		{
			name:      "nothing still opens a page",
			wantPages: 1,
		},
		{
			name:      "break on an empty page is ignored",
			pieces:    []piece{{brk: true}, {table: rowsTable("", 1)}},
			wantPages: 1,
		},
		{
			name:      "break after content starts a page",
			pieces:    []piece{{table: rowsTable("", 1)}, {brk: true}, {table: rowsTable("", 1)}},
			wantPages: 2,
		},
		{
			name:      "consecutive breaks collapse",
			pieces:    []piece{{table: rowsTable("", 1)}, {brk: true}, {brk: true}, {table: rowsTable("", 1)}},
			wantPages: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := rendertest.New()
			deco := &countingDecorator{}
			if err := assemble(rec, layout.CoreFonts, deco, testMargins, tt.pieces); err != nil {
				t.Fatalf("assemble() error: %v", err)
			}
			if rec.PageCount() != tt.wantPages {
				t.Errorf("pages = %d, want %d", rec.PageCount(), tt.wantPages)
			}
			if deco.calls != rec.PageCount() {
				t.Errorf("decorator calls = %d, want one per page (%d)", deco.calls, rec.PageCount())
			}
		})
	}
}

func TestAssemble_RepeatsHeader(t *testing.T) {
	t.Parallel()

	rec := rendertest.New()
	deco := &countingDecorator{top: 40, bottom: 30}
	if err := assemble(rec, layout.CoreFonts, deco, testMargins, []piece{{table: rowsTable("HEAD", 120)}}); err != nil {
		t.Fatalf("assemble() error: %v", err)
	}
	if rec.PageCount() < 3 {
		t.Fatalf("pages = %d, want the table to span pages", rec.PageCount())
	}

	seen := 0
	for page := 1; page <= rec.PageCount(); page++ {
		texts := rec.Texts(page)
		if texts[0] != fmt.Sprintf("frame-%d", page) {
			t.Errorf("page %d starts with %q, want the frame", page, texts[0])
		}
		if texts[1] != "HEAD" {
			t.Errorf("page %d body starts with %q, want the header", page, texts[1])
		}
		for _, s := range texts {
			if strings.HasPrefix(s, "row") {
				seen++
			}
		}
	}
	if seen != 120 {
		t.Errorf("rows drawn = %d, want 120", seen)
	}

	// Body text stays between the decorator bands.
	for _, op := range rec.Ops {
		if op.Kind == "text" && strings.HasPrefix(op.Text, "row") {
			if op.Y < 40 || op.Y > rec.Height-30 {
				t.Fatalf("%s at y=%.1f is outside the body", op.Text, op.Y)
			}
		}
	}
}

func TestAssemble_Spacing(t *testing.T) {
	t.Parallel()

	rec := rendertest.New()
	pieces := []piece{
		{table: rowsTable("", 1), before: 50},
		{table: rowsTable("", 1), before: 20, after: 5},
	}
	if err := assemble(rec, layout.CoreFonts, noDecorator{}, testMargins, pieces); err != nil {
		t.Fatalf("assemble() error: %v", err)
	}

	var ys []float64
	for _, op := range rec.Ops {
		if op.Kind == "text" {
			ys = append(ys, op.Y)
		}
	}
	if len(ys) != 2 {
		t.Fatalf("texts = %d, want 2", len(ys))
	}
	// The leading space of the first piece is dropped at the page top.
	if ys[0] > testMargins.Top+10 {
		t.Errorf("first row at y=%.1f, want near the top margin", ys[0])
	}
	if gap := ys[1] - ys[0]; gap < 20 || gap > 35 {
		t.Errorf("gap = %.1f, want one row plus 20mm", gap)
	}
}

func TestAssemble_Errors(t *testing.T) {
	t.Parallel()

	tall := &layout.Table{
		Columns: []layout.Width{layout.Frac(1)},
		Rows:    [][]layout.Content{{layout.Plain(strings.Repeat("tall ", 5000))}},
	}

	tests := []struct {
		name    string
		deco    Decorator
		pieces  []piece
		wantMsg string
	}{
		{
			name:    "row taller than the page body",
			deco:    noDecorator{},
			pieces:  []piece{{table: tall}},
			wantMsg: "page body has",
		},
		{
			name:    "decorator leaves no room",
			deco:    &countingDecorator{top: 200, bottom: 100},
			wantMsg: "no room",
		},
		{
			name:    "decorator fails",
			deco:    &countingDecorator{err: errors.New("boom")},
			wantMsg: "boom",
		},
		{
			name: "malformed table",
			deco: noDecorator{},
			pieces: []piece{{table: &layout.Table{
				Columns: []layout.Width{layout.Frac(1)},
				Rows:    [][]layout.Content{{nil, nil}},
			}}},
			wantMsg: "block 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := assemble(rendertest.New(), layout.CoreFonts, tt.deco, testMargins, tt.pieces)
			if !errors.Is(err, ErrRender) {
				t.Fatalf("error = %v, want ErrRender", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want %q", err, tt.wantMsg)
			}
		})
	}
}
