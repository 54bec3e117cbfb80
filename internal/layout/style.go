package layout

import "github.com/alnah/go-quote2pdf/internal/render"

// Align is horizontal alignment inside a cell.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// VAlign is vertical alignment inside a cell.
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignMiddle
	VAlignBottom
)

// Weight selects the regular or bold face of the document font pair.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// Edge is one border line of a cell. A zero Width means no line.
// Width is in points.
type Edge struct {
	Width float64
	Color render.Color
}

// Side indexes cell edges and padding.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

type channel uint32

const (
	chFill channel = 1 << iota
	chWeight
	chSize
	chLeading
	chColor
	chAlign
	chVAlign
	chPadTop
	chPadRight
	chPadBottom
	chPadLeft
	chEdgeTop
	chEdgeRight
	chEdgeBottom
	chEdgeLeft
)

var padChannels = [4]channel{chPadTop, chPadRight, chPadBottom, chPadLeft}

var edgeChannels = [4]channel{chEdgeTop, chEdgeRight, chEdgeBottom, chEdgeLeft}

// Style is an immutable bundle of cell properties. Every setter returns a
// new Style; Merge overlays only the channels the other Style sets.
// Sizes, leading, padding and edge widths are in points.
type Style struct {
	set     channel
	fill    render.Color
	weight  Weight
	size    float64
	leading float64
	color   render.Color
	align   Align
	valign  VAlign
	pad     [4]float64
	edges   [4]Edge
}

// DefaultStyle is the base every cell starts from before rules apply.
var DefaultStyle = Style{}.
	Size(10).
	TextColor(render.Black).
	Align(AlignLeft).
	VAlign(VAlignBottom).
	PadX(6).
	PadY(3)

func (s Style) Fill(c render.Color) Style {
	s.fill = c
	s.set |= chFill
	return s
}

func (s Style) Weight(w Weight) Style {
	s.weight = w
	s.set |= chWeight
	return s
}

func (s Style) Size(pt float64) Style {
	s.size = pt
	s.set |= chSize
	return s
}

// Leading sets the line height. Unset leading is 1.2 × size.
func (s Style) Leading(pt float64) Style {
	s.leading = pt
	s.set |= chLeading
	return s
}

func (s Style) TextColor(c render.Color) Style {
	s.color = c
	s.set |= chColor
	return s
}

func (s Style) Align(a Align) Style {
	s.align = a
	s.set |= chAlign
	return s
}

func (s Style) VAlign(v VAlign) Style {
	s.valign = v
	s.set |= chVAlign
	return s
}

// Pad sets the padding of one side.
func (s Style) Pad(side Side, pt float64) Style {
	s.pad[side] = pt
	s.set |= padChannels[side]
	return s
}

// Padding sets all four sides.
func (s Style) Padding(pt float64) Style {
	return s.PadX(pt).PadY(pt)
}

// PadX sets left and right padding.
func (s Style) PadX(pt float64) Style {
	return s.Pad(Left, pt).Pad(Right, pt)
}

// PadY sets top and bottom padding.
func (s Style) PadY(pt float64) Style {
	return s.Pad(Top, pt).Pad(Bottom, pt)
}

// Edge sets one border line.
func (s Style) Edge(side Side, e Edge) Style {
	s.edges[side] = e
	s.set |= edgeChannels[side]
	return s
}

// Merge returns s with every channel set in o overriding s.
func (s Style) Merge(o Style) Style {
	if o.set&chFill != 0 {
		s.fill = o.fill
	}
	if o.set&chWeight != 0 {
		s.weight = o.weight
	}
	if o.set&chSize != 0 {
		s.size = o.size
	}
	if o.set&chLeading != 0 {
		s.leading = o.leading
	}
	if o.set&chColor != 0 {
		s.color = o.color
	}
	if o.set&chAlign != 0 {
		s.align = o.align
	}
	if o.set&chVAlign != 0 {
		s.valign = o.valign
	}
	for i := range padChannels {
		if o.set&padChannels[i] != 0 {
			s.pad[i] = o.pad[i]
		}
		if o.set&edgeChannels[i] != 0 {
			s.edges[i] = o.edges[i]
		}
	}
	s.set |= o.set
	return s
}

// lineHeight returns the leading in points.
func (s Style) lineHeight() float64 {
	if s.set&chLeading != 0 {
		return s.leading
	}
	return s.size * 1.2
}

// Fonts maps weights and emphasis onto concrete faces.
type Fonts struct {
	Regular    render.Font
	Bold       render.Font
	Italic     render.Font
	BoldItalic render.Font
}

// CoreFonts is the built-in Helvetica family every PDF reader provides.
var CoreFonts = Fonts{
	Regular:    render.Font{Family: "Helvetica", Style: render.StyleRegular},
	Bold:       render.Font{Family: "Helvetica", Style: render.StyleBold},
	Italic:     render.Font{Family: "Helvetica", Style: render.StyleItalic},
	BoldItalic: render.Font{Family: "Helvetica", Style: render.StyleBold + render.StyleItalic},
}

// Face returns the face for the requested emphasis, sized to pt.
func (f Fonts) Face(bold, italic bool, pt float64) render.Font {
	var face render.Font
	switch {
	case bold && italic:
		face = f.BoldItalic
	case bold:
		face = f.Bold
	case italic:
		face = f.Italic
	default:
		face = f.Regular
	}
	face.Size = pt
	return face
}
