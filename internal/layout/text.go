package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-quote2pdf/internal/render"
)

// Span is a run of text with optional emphasis. A zero Size inherits the
// cell size; a nil Color inherits the cell text color.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Size   float64
	Color  *render.Color
}

// Paragraph is a sequence of spans wrapped as one flow. Newlines inside span
// text force a line break. An empty paragraph renders as one blank line.
type Paragraph []Span

// Content is the text of one cell: paragraphs stacked top to bottom.
type Content []Paragraph

// Plain returns single-paragraph content.
func Plain(s string) Content {
	if s == "" {
		return nil
	}
	return Content{{{Text: s}}}
}

type word struct {
	text  string
	font  render.Font
	color render.Color
	x     float64
	w     float64
	glue  bool
}

type line struct {
	words  []word
	width  float64
	height float64 // mm
	size   float64 // largest font size on the line, pt
}

// block is wrapped content ready to draw.
type block struct {
	lines  []line
	height float64
}

// token is a word or a forced break produced from spans. A glued token
// continues the previous word without a space, as in "**bold**!".
type token struct {
	text  string
	font  render.Font
	color render.Color
	brk   bool
	glue  bool
}

func tokenize(p Paragraph, base Style, fonts Fonts) []token {
	var out []token
	prevSpace := true
	for _, sp := range p {
		size := base.size
		if sp.Size > 0 {
			size = sp.Size
		}
		font := fonts.Face(base.weight == Bold || sp.Bold, sp.Italic, size)
		color := base.color
		if sp.Color != nil {
			color = *sp.Color
		}
		for i, seg := range strings.Split(sp.Text, "\n") {
			if i > 0 {
				out = append(out, token{brk: true})
				prevSpace = true
			}
			for j, f := range strings.Fields(seg) {
				glue := j == 0 && !prevSpace && !startsSpace(seg)
				out = append(out, token{text: f, font: font, color: color, glue: glue})
			}
			if seg != "" {
				prevSpace = endsSpace(seg)
			}
		}
	}
	return out
}

func startsSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t") != s
}

func endsSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t") != s
}

// wrap lays content out at width (mm). Measurements go through m, which is
// left with an undefined current font.
func wrap(m render.Measurer, c Content, base Style, fonts Fonts, width float64) block {
	var b block
	if len(c) == 0 {
		c = Content{nil}
	}
	for _, p := range c {
		lines := wrapParagraph(m, tokenize(p, base, fonts), base, width)
		b.lines = append(b.lines, lines...)
	}
	for _, l := range b.lines {
		b.height += l.height
	}
	return b
}

func wrapParagraph(m render.Measurer, toks []token, base Style, width float64) []line {
	leadingRatio := base.lineHeight() / base.size
	newLine := func() line {
		return line{size: base.size, height: base.lineHeight() / render.PointsPerMM}
	}

	var lines []line
	cur := newLine()
	started := false

	finish := func() {
		lines = append(lines, cur)
		cur = newLine()
		started = false
	}

	place := func(t token, w float64) {
		x := cur.width
		if started && !t.glue {
			m.SetFont(t.font)
			x += m.StringWidth(" ")
		}
		cur.words = append(cur.words, word{text: t.text, font: t.font, color: t.color, x: x, w: w, glue: t.glue && started})
		cur.width = x + w
		if t.font.Size > cur.size {
			cur.size = t.font.Size
			cur.height = t.font.Size * leadingRatio / render.PointsPerMM
		}
		started = true
	}

	for _, t := range toks {
		if t.brk {
			finish()
			continue
		}
		m.SetFont(t.font)
		w := m.StringWidth(t.text)
		space := 0.0
		if started && !t.glue {
			space = m.StringWidth(" ")
		}
		if started && cur.width+space+w > width {
			finish()
		}
		if w <= width {
			place(t, w)
			continue
		}
		// A single word wider than the cell is broken by runes.
		for _, piece := range breakWord(m, t.text, width) {
			if started {
				finish()
			}
			place(token{text: piece, font: t.font, color: t.color}, m.StringWidth(piece))
		}
	}
	return append(lines, cur)
}

func breakWord(m render.Measurer, s string, width float64) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		if i > start && m.StringWidth(s[start:i+size]) > width {
			out = append(out, s[start:i])
			start = i
		}
		i += size
	}
	return append(out, s[start:])
}

// draw paints b inside the box starting at (x, y) with the given width.
func (b block) draw(s render.Surface, x, y, width float64, align Align) {
	top := y
	for _, l := range b.lines {
		offset := 0.0
		switch align {
		case AlignCenter:
			offset = (width - l.width) / 2
		case AlignRight:
			offset = width - l.width
		}
		sizeMM := l.size / render.PointsPerMM
		baseline := top + (l.height+sizeMM*0.7)/2
		for _, w := range l.words {
			s.SetFont(w.font)
			s.SetTextColor(w.color)
			s.Text(x+offset+w.x, baseline, w.text)
		}
		top += l.height
	}
}

// text returns the plain text of the block, one line per row.
func (b block) text() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, w := range l.words {
			if j > 0 && !w.glue {
				sb.WriteByte(' ')
			}
			sb.WriteString(w.text)
		}
	}
	return sb.String()
}
