// Package render defines the drawing surface the layout engine paints on.
//
// The engine never talks to a PDF library directly. It draws through the
// Surface interface, which the gofpdf-backed PDF type implements for
// production and rendertest.Recorder implements for tests.
package render

import (
	"errors"
	"io"
)

// Sentinel errors for surface operations.
var (
	ErrFontRegister = errors.New("font registration failed")
	ErrImage        = errors.New("image drawing failed")
	ErrOutput       = errors.New("document output failed")
)

// PointsPerMM converts font sizes (points) to layout units (millimeters).
const PointsPerMM = 72.0 / 25.4

// Font style flags accepted by SetFont.
const (
	StyleRegular = ""
	StyleBold    = "B"
	StyleItalic  = "I"
)

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// Hex builds a Color from a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Common colors.
var (
	Black     = Color{}
	White     = Color{R: 255, G: 255, B: 255}
	Grey      = Hex(0x808080)
	LightGrey = Hex(0xD3D3D3)
)

// Font selects a face and size. Size is in points.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// Info is document metadata written into the output.
type Info struct {
	Title   string
	Author  string
	Subject string
	Creator string
}

// Measurer measures text in layout units. The layout engine only needs this
// subset to compute wrapped heights.
type Measurer interface {
	SetFont(f Font)
	StringWidth(s string) float64
}

// Surface is a page-oriented drawing target. Coordinates are millimeters
// from the top-left corner of the current page.
type Surface interface {
	Measurer

	// PageSize returns the width and height of a page.
	PageSize() (w, h float64)
	// AddPage starts a new page and makes it current.
	AddPage()
	// PageCount returns the number of pages emitted so far.
	PageCount() int

	// RegisterFont makes a TrueType font available under family/style.
	RegisterFont(family, style string, ttf []byte) error

	SetInfo(info Info)
	SetTextColor(c Color)
	SetFillColor(c Color)
	SetDrawColor(c Color)
	SetLineWidth(w float64)

	FillRect(x, y, w, h float64)
	Line(x1, y1, x2, y2 float64)
	// Text draws s with its baseline at y.
	Text(x, y float64, s string)
	// Image draws PNG data scaled into the given box.
	Image(name string, png []byte, x, y, w, h float64) error

	// Output writes the finished document. It is called exactly once.
	Output(w io.Writer) error
}
