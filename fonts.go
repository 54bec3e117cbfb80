package quote2pdf

import (
	"fmt"

	"github.com/alnah/go-quote2pdf/internal/assets"
	"github.com/alnah/go-quote2pdf/internal/hints"
	"github.com/alnah/go-quote2pdf/internal/layout"
	"github.com/alnah/go-quote2pdf/internal/render"
)

// FontResolver locates the document font pair. Both faces must sit in the
// same directory of Dirs; the first such directory wins.
type FontResolver struct {
	Dirs    assets.SearchPath
	Regular string
	Bold    string
}

// Resolve registers the pair on s and returns the faces to lay out with.
// It never fails: when the pair is missing, unreadable or rejected by the
// surface, the core Helvetica faces are returned along with an
// ErrAssetMissing warning.
func (r FontResolver) Resolve(s render.Surface) (layout.Fonts, error) {
	regular, bold := r.Regular, r.Bold
	if regular == "" {
		regular = assets.RegularFontFile
	}
	if bold == "" {
		bold = assets.BoldFontFile
	}

	pair, err := assets.FindFontPair(r.Dirs, regular, bold)
	if err != nil {
		return layout.CoreFonts, fmt.Errorf("%w: %v%s", ErrAssetMissing, err, hints.ForFonts(r.Dirs, regular, bold))
	}
	if err := s.RegisterFont(pair.Family, render.StyleRegular, pair.Regular); err != nil {
		return layout.CoreFonts, fmt.Errorf("%w: %v", ErrAssetMissing, err)
	}
	if err := s.RegisterFont(pair.Family, render.StyleBold, pair.Bold); err != nil {
		return layout.CoreFonts, fmt.Errorf("%w: %v", ErrAssetMissing, err)
	}

	// The pair has no italic faces; emphasis falls back to the upright ones.
	reg := render.Font{Family: pair.Family, Style: render.StyleRegular}
	bld := render.Font{Family: pair.Family, Style: render.StyleBold}
	return layout.Fonts{Regular: reg, Bold: bld, Italic: reg, BoldItalic: bld}, nil
}
