package quote2pdf

import (
	"fmt"
	"strings"

	"github.com/alnah/go-quote2pdf/internal/layout"
	"github.com/alnah/go-quote2pdf/internal/render"
)

// Branded palette.
var (
	primary    = render.Hex(0x8B0000)
	textDark   = render.Hex(0x212121)
	textLight  = render.Hex(0x757575)
	headerGrey = render.Hex(0xCCCCCC)
	greyText   = render.Grey
)

// Plain palette.
var (
	navy       = render.Hex(0x1A365D)
	slate      = render.Hex(0x2D3748)
	bodyText   = render.Hex(0x4A5568)
	paper      = render.Hex(0xF7FAFC)
	hairline   = render.Hex(0xE2E8F0)
	whitesmoke = render.Hex(0xF5F5F5)
)

// piece is a presented block: a table plus the vertical space around it,
// in mm. A break piece has no table.
type piece struct {
	table  *layout.Table
	before float64
	after  float64
	brk    bool
}

func pt(v float64) float64 { return v / render.PointsPerMM }

var style = layout.Style{}

// present turns each block into a table styled for the template.
func present(kind templateKind, blocks []Block) ([]piece, error) {
	out := make([]piece, 0, len(blocks))
	for i, b := range blocks {
		var p piece
		var err error
		if kind == kindPlain {
			p, err = presentPlain(b)
		} else {
			p, err = presentBranded(b)
		}
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func errBlock(b Block) error {
	return fmt.Errorf("%w: no presentation for %T", ErrRender, b)
}

// ---------------------------------------------------------------------------
// Branded
// ---------------------------------------------------------------------------

func presentBranded(b Block) (piece, error) {
	switch b := b.(type) {
	case PageBreakMarker:
		return piece{brk: true}, nil

	case HeadingBlock:
		return piece{
			before: 1,
			after:  pt(10),
			table: &layout.Table{
				Columns: []layout.Width{layout.Frac(1)},
				Rows:    [][]layout.Content{{layout.Plain(b.Text)}},
				Rules: []layout.Rule{
					layout.Apply(layout.All(), style.Size(18).Weight(layout.Bold).TextColor(primary).Align(layout.AlignCenter)),
				},
			},
		}, nil

	case InfoBlock:
		rows := [][]layout.Content{{layout.Plain(b.Title), nil}}
		for _, f := range b.Fields {
			rows = append(rows, []layout.Content{layout.Plain(f.Label), layout.Plain(f.Value)})
		}
		return piece{
			after: 8,
			table: &layout.Table{
				Columns: []layout.Width{layout.Frac(0.25), layout.Frac(0.75)},
				Rows:    rows,
				Spans:   []layout.Range{layout.Cells(0, 0, 1, 0)},
				Rules: []layout.Rule{
					layout.Apply(layout.Row(0), style.Fill(primary).TextColor(render.White).Weight(layout.Bold).PadY(8)),
					layout.Apply(layout.Cells(0, 1, -1, -1), style.TextColor(textDark).PadY(8)),
					layout.Apply(layout.Cells(0, 1, 0, -1), style.Weight(layout.Bold)),
					layout.Apply(layout.All(), style.VAlign(layout.VAlignTop)),
					layout.GridLines(layout.All(), 0.5, render.LightGrey),
				},
				HeaderRows: 1,
			},
		}, nil

	case ItemTable:
		rows := [][]layout.Content{
			{layout.Plain(b.Title), nil, nil, nil},
			{layout.Plain(b.Headers[0]), layout.Plain(b.Headers[1]), layout.Plain(b.Headers[2]), layout.Plain(b.Headers[3])},
		}
		for _, r := range b.Rows {
			name := layout.Paragraph{{Text: r.Name, Bold: true}}
			if r.Description != "" {
				name = append(name, layout.Span{Text: "\n" + r.Description, Size: 8, Color: &greyText})
			}
			rows = append(rows, []layout.Content{{name}, layout.Plain(r.Quantity), layout.Plain(r.UnitPrice), layout.Plain(r.Amount)})
		}
		return piece{
			table: &layout.Table{
				Columns: []layout.Width{layout.Frac(0.45), layout.Frac(0.15), layout.Frac(0.20), layout.Frac(0.20)},
				Rows:    rows,
				Spans:   []layout.Range{layout.Cells(0, 0, -1, 0)},
				Rules: []layout.Rule{
					layout.Apply(layout.Row(0), style.Fill(render.Black).TextColor(render.White).Weight(layout.Bold).PadY(8)),
					layout.Apply(layout.Row(1), style.Fill(primary).TextColor(render.White).Weight(layout.Bold).PadY(8)),
					layout.Apply(layout.Cells(1, 1, -1, -1), style.Align(layout.AlignRight)),
					layout.Apply(layout.Cells(0, 2, -1, -1), style.PadY(8)),
					layout.Apply(layout.Cells(0, 2, 0, -1), style.Size(9).Leading(12)),
					layout.Apply(layout.All(), style.VAlign(layout.VAlignTop)),
					layout.GridLines(layout.All(), 0.5, render.LightGrey),
				},
				HeaderRows: 2,
			},
		}, nil

	case TotalsBlock:
		rows := make([][]layout.Content, 0, len(b.Rows))
		for _, r := range b.Rows {
			rows = append(rows, []layout.Content{layout.Plain(r.Label), layout.Plain(r.Value)})
		}
		return piece{
			after: 8,
			table: &layout.Table{
				Columns: []layout.Width{layout.Frac(0.80), layout.Frac(0.20)},
				Rows:    rows,
				Rules: []layout.Rule{
					layout.Apply(layout.All(), style.Align(layout.AlignRight).Weight(layout.Bold).Pad(layout.Top, 6)),
					layout.Apply(layout.Cells(-1, -1, -1, -1), style.TextColor(primary)),
					layout.LineAbove(layout.Row(-1), 1, primary),
				},
			},
		}, nil

	case TextSection:
		rows := [][]layout.Content{{layout.Plain(b.Title)}}
		for _, c := range b.Rows {
			rows = append(rows, []layout.Content{c})
		}
		rules := []layout.Rule{
			layout.Apply(layout.Row(0), style.Fill(primary).TextColor(render.White).Weight(layout.Bold).PadY(8)),
			layout.Apply(layout.Cells(0, 1, -1, -1), style.VAlign(layout.VAlignTop).Size(9).Leading(12).PadY(0)),
			layout.Apply(layout.Row(1), style.Pad(layout.Top, 8)),
			layout.Apply(layout.Row(-1), style.Pad(layout.Bottom, 8)),
			layout.GridLines(layout.Row(0), 0.5, render.LightGrey),
			layout.Box(layout.Cells(0, 1, -1, -1), 0.5, render.LightGrey),
		}
		after := 8.0
		if b.FinePrint {
			rules = []layout.Rule{
				layout.Apply(layout.Row(0), style.Fill(render.Black).TextColor(render.White).Weight(layout.Bold).Size(11).PadY(6)),
				layout.Apply(layout.Cells(0, 1, -1, -1), style.VAlign(layout.VAlignTop).Size(6).Leading(8).PadY(6).PadX(8)),
				layout.GridLines(layout.All(), 0.5, render.LightGrey),
			}
			after = 10
		}
		return piece{
			after: after,
			table: &layout.Table{
				Columns:    []layout.Width{layout.Frac(1)},
				Rows:       rows,
				Rules:      rules,
				HeaderRows: 1,
			},
		}, nil

	case SignatureBlock:
		return piece{
			after: 20,
			table: &layout.Table{
				Columns: []layout.Width{layout.Frac(0.5), layout.Frac(0.5)},
				Rows:    signatureRows(b),
				Rules: []layout.Rule{
					layout.Apply(layout.All(), style.Weight(layout.Bold).Size(10).Pad(layout.Bottom, 10)),
				},
			},
		}, nil

	default:
		return piece{}, errBlock(b)
	}
}

func signatureRows(b SignatureBlock) [][]layout.Content {
	rows := make([][]layout.Content, 0, len(b.Lines))
	for _, l := range b.Lines {
		rows = append(rows, []layout.Content{layout.Plain(l[0]), layout.Plain(l[1])})
	}
	return rows
}

// ---------------------------------------------------------------------------
// Plain
// ---------------------------------------------------------------------------

var (
	plainHalf  = []layout.Width{layout.Fixed(3.25 * inch), layout.Fixed(3.25 * inch)}
	plainItems = []layout.Width{layout.Fixed(3 * inch), layout.Fixed(1 * inch), layout.Fixed(1.25 * inch), layout.Fixed(1.25 * inch)}
	plainFull  = []layout.Width{layout.Fixed(6.5 * inch)}

	heading = style.Size(14).Weight(layout.Bold).TextColor(slate)
	normal  = style.Size(10).TextColor(bodyText)
)

func presentPlain(b Block) (piece, error) {
	switch b := b.(type) {
	case PageBreakMarker:
		return piece{brk: true}, nil

	case HeadingBlock:
		return piece{
			after: pt(30) + 0.2*inch,
			table: &layout.Table{
				Columns: []layout.Width{layout.Frac(1)},
				Rows:    [][]layout.Content{{layout.Plain(b.Text)}},
				Rules: []layout.Rule{
					layout.Apply(layout.All(), style.Size(24).Weight(layout.Bold).TextColor(navy).Align(layout.AlignCenter)),
				},
			},
		}, nil

	case InfoBlock:
		to := layout.Paragraph{}
		for i, line := range b.To {
			text := line
			if i > 0 {
				text = "\n" + line
			}
			to = append(to, layout.Span{Text: text, Bold: i == 0})
		}
		return piece{
			after: 0.3 * inch,
			table: &layout.Table{
				Columns: plainHalf,
				Rows: [][]layout.Content{
					{layout.Plain("From:"), layout.Plain("To:")},
					{layout.Plain(strings.Join(b.From, "\n")), {to}},
				},
				Rules: []layout.Rule{
					layout.Apply(layout.Row(0), heading),
					layout.Apply(layout.Row(1), normal),
					layout.Apply(layout.All(), style.VAlign(layout.VAlignTop).Pad(layout.Top, 0).Pad(layout.Bottom, 12)),
				},
			},
		}, nil

	case MetadataBlock:
		var rows [][]layout.Content
		for i := 0; i < len(b.Fields); i += 2 {
			row := []layout.Content{labelled(b.Fields[i]), nil}
			if i+1 < len(b.Fields) {
				row[1] = labelled(b.Fields[i+1])
			}
			rows = append(rows, row)
		}
		return piece{
			after: 0.3 * inch,
			table: &layout.Table{
				Columns: plainHalf,
				Rows:    rows,
				Rules: []layout.Rule{
					layout.Apply(layout.All(), normal.Fill(paper).Padding(10)),
					layout.GridLines(layout.All(), 1, hairline),
				},
			},
		}, nil

	case ItemTable:
		rows := [][]layout.Content{
			{layout.Plain(b.Title), nil, nil, nil},
			{layout.Plain(b.Headers[0]), layout.Plain(b.Headers[1]), layout.Plain(b.Headers[2]), layout.Plain(b.Headers[3])},
		}
		for _, r := range b.Rows {
			name := layout.Paragraph{{Text: r.Name}}
			if r.Description != "" {
				name = append(name, layout.Span{Text: "\n" + r.Description, Italic: true})
			}
			rows = append(rows, []layout.Content{{name}, layout.Plain(r.Quantity), layout.Plain(r.UnitPrice), layout.Plain(r.Amount)})
		}
		return piece{
			after: 0.2 * inch,
			table: &layout.Table{
				Columns: plainItems,
				Rows:    rows,
				Spans:   []layout.Range{layout.Cells(0, 0, -1, 0)},
				Rules: []layout.Rule{
					layout.Apply(layout.All(), normal.Padding(8).VAlign(layout.VAlignTop)),
					layout.Apply(layout.Row(0), heading.PadX(0).PadY(12)),
					layout.Apply(layout.Row(1), style.Fill(slate).TextColor(whitesmoke).Weight(layout.Bold).Pad(layout.Bottom, 12)),
					layout.Apply(layout.Cells(0, 2, -1, -1), style.Fill(render.White)),
					layout.Apply(layout.Cells(1, 1, -1, -1), style.Align(layout.AlignRight)),
					layout.GridLines(layout.Cells(0, 1, -1, -1), 1, hairline),
				},
				HeaderRows: 2,
			},
		}, nil

	case TotalsBlock:
		rows := make([][]layout.Content, 0, len(b.Rows))
		for _, r := range b.Rows {
			rows = append(rows, []layout.Content{nil, nil, layout.Plain(r.Label), layout.Plain(r.Value)})
		}
		return piece{
			table: &layout.Table{
				Columns: plainItems,
				Rows:    rows,
				Rules: []layout.Rule{
					layout.Apply(layout.All(), normal.Padding(8)),
					layout.Apply(layout.Cells(2, 0, -1, -1), style.Align(layout.AlignRight)),
					layout.Apply(layout.Col(2), style.Weight(layout.Bold)),
					layout.Apply(layout.Cells(2, -1, -1, -1), heading.Fill(paper)),
					layout.LineAbove(layout.Cells(2, -1, -1, -1), 2, slate),
				},
			},
		}, nil

	case TextSection:
		rows := [][]layout.Content{{layout.Plain(b.Title)}}
		for _, c := range b.Rows {
			rows = append(rows, []layout.Content{c})
		}
		return piece{
			before: 0.3 * inch,
			table: &layout.Table{
				Columns: plainFull,
				Rows:    rows,
				Rules: []layout.Rule{
					layout.Apply(layout.All(), normal.VAlign(layout.VAlignTop).PadX(0)),
					layout.Apply(layout.Cells(0, 1, -1, -1), style.PadY(0)),
					layout.Apply(layout.Row(0), heading.PadY(12)),
				},
				HeaderRows: 1,
			},
		}, nil

	case SignatureBlock:
		return piece{
			before: 0.3 * inch,
			table: &layout.Table{
				Columns: plainHalf,
				Rows:    signatureRows(b),
				Rules: []layout.Rule{
					layout.Apply(layout.All(), normal.Weight(layout.Bold).Pad(layout.Bottom, 10)),
				},
			},
		}, nil

	default:
		return piece{}, errBlock(b)
	}
}

func labelled(f Field) layout.Content {
	return layout.Content{{{Text: f.Label, Bold: true}, {Text: " " + f.Value}}}
}
