package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// TestPDF - gofpdf-backed surface
// ---------------------------------------------------------------------------

func TestNewPDF_PageSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size  string
		wantW float64
		wantH float64
	}{
		{PageA4, 210, 297},
		{PageLetter, 215.9, 279.4},
	}
	for _, tt := range tests {
		w, h := NewPDF(tt.size).PageSize()
		if math.Abs(w-tt.wantW) > 0.1 || math.Abs(h-tt.wantH) > 0.1 {
			t.Errorf("%s: size = %.1fx%.1f, want %.1fx%.1f", tt.size, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestPDF_Output(t *testing.T) {
	t.Parallel()

	p := NewPDF(PageA4)
	if err := p.RegisterFont("Go", StyleRegular, goregular.TTF); err != nil {
		t.Fatalf("RegisterFont() error: %v", err)
	}
	if err := p.RegisterFont("Go", StyleBold, gobold.TTF); err != nil {
		t.Fatalf("RegisterFont() error: %v", err)
	}
	p.SetInfo(Info{Title: "Quotation", Author: "Ada", Creator: "test"})

	p.AddPage()
	p.SetFont(Font{Family: "Go", Style: StyleBold, Size: 12})
	p.SetTextColor(Hex(0x8B0000))
	p.Text(20, 20, "Total: R 1,234.56 café")
	p.SetFillColor(LightGrey)
	p.FillRect(20, 30, 50, 10)
	p.SetDrawColor(Black)
	p.SetLineWidth(0.2)
	p.Line(20, 45, 190, 45)
	if err := p.Image("logo", pngBytes(t), 20, 50, 40, 20); err != nil {
		t.Fatalf("Image() error: %v", err)
	}

	p.AddPage()
	p.SetFont(Font{Family: "Helvetica", Style: StyleRegular, Size: 10})
	p.Text(20, 20, "Core font, café, page two")
	// A registered image is reused by name.
	if err := p.Image("logo", nil, 20, 30, 40, 20); err != nil {
		t.Fatalf("Image() reuse error: %v", err)
	}

	if p.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", p.PageCount())
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output starts with %q", buf.Bytes()[:min(buf.Len(), 8)])
	}
}

func TestPDF_StringWidth(t *testing.T) {
	t.Parallel()

	p := NewPDF(PageA4)
	p.SetFont(Font{Family: "Helvetica", Style: StyleRegular, Size: 10})
	short := p.StringWidth("ab")
	long := p.StringWidth("abab")
	if short <= 0 || math.Abs(long-2*short) > 1e-9 {
		t.Errorf("widths = %v, %v; want positive and additive", short, long)
	}

	p.SetFont(Font{Family: "Helvetica", Style: StyleRegular, Size: 20})
	if got := p.StringWidth("ab"); math.Abs(got-2*short) > 1e-9 {
		t.Errorf("width at 20pt = %v, want %v", got, 2*short)
	}
}

func TestPDF_ImageFailure(t *testing.T) {
	t.Parallel()

	t.Run("bad image is reported and cleared", func(t *testing.T) {
		t.Parallel()

		p := NewPDF(PageA4)
		p.AddPage()
		if err := p.Image("bad", []byte("not a png"), 10, 10, 20, 20); !errors.Is(err, ErrImage) {
			t.Fatalf("error = %v, want ErrImage", err)
		}
		if err := p.Output(&bytes.Buffer{}); err != nil {
			t.Errorf("Output() after an image failure: %v", err)
		}
	})
}
