package assets

import (
	"path/filepath"
	"slices"
)

// Default file names.
const (
	RegularFontFile = "Oswald-Regular.ttf"
	BoldFontFile    = "Oswald-Bold.ttf"
	LogoFile        = "scarybyte-logo.png"
)

// SearchPath is an ordered list of directories, first match wins.
type SearchPath []string

// DefaultFontDirs returns the font directories relative to base, usually the
// directory holding the binary.
func DefaultFontDirs(base string) SearchPath {
	return SearchPath{
		filepath.Join(base, "..", "fonts"),
		filepath.Join(base, "fonts"),
		filepath.Join(base, "assets", "fonts"),
	}
}

// DefaultLogoDirs returns the logo directories relative to base.
func DefaultLogoDirs(base string) SearchPath {
	return SearchPath{
		filepath.Join(base, "..", "logos"),
		filepath.Join(base, "logos"),
		base,
	}
}

// Prepend returns a new SearchPath with dirs ahead of p. Empty entries are
// dropped.
func (p SearchPath) Prepend(dirs ...string) SearchPath {
	out := make(SearchPath, 0, len(dirs)+len(p))
	for _, d := range dirs {
		if d != "" {
			out = append(out, d)
		}
	}
	return append(out, p...)
}

// Candidates returns the path of name in every directory, in order.
func (p SearchPath) Candidates(name string) []string {
	out := make([]string, 0, len(p))
	for _, d := range p {
		out = append(out, filepath.Join(d, name))
	}
	return slices.Clip(out)
}
