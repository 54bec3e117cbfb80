package assets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/sfnt"

	"github.com/alnah/go-quote2pdf/internal/fileutil"
)

// FontPair is a regular and bold face loaded from one directory.
type FontPair struct {
	Dir     string
	Family  string
	Regular []byte
	Bold    []byte
}

// FindFontPair returns the first directory of dirs holding both regular and
// bold. A directory with only one of the two is skipped, not reported.
// Returns ErrFontNotFound when no directory qualifies and ErrFontInvalid when
// the first complete pair fails to parse.
func FindFontPair(dirs SearchPath, regular, bold string) (*FontPair, error) {
	if err := ValidateAssetName(regular); err != nil {
		return nil, err
	}
	if err := ValidateAssetName(bold); err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		rPath := filepath.Join(dir, regular)
		bPath := filepath.Join(dir, bold)
		if !fileutil.FileExists(rPath) || !fileutil.FileExists(bPath) {
			continue
		}
		return loadPair(dir, rPath, bPath)
	}
	return nil, fmt.Errorf("%w: %s and %s in %s", ErrFontNotFound, regular, bold, strings.Join(dirs, ", "))
}

func loadPair(dir, rPath, bPath string) (*FontPair, error) {
	rData, err := os.ReadFile(rPath) // #nosec G304 -- path built from validated name
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	bData, err := os.ReadFile(bPath) // #nosec G304 -- path built from validated name
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	family, err := CheckTrueType(rData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rPath, err)
	}
	if _, err := CheckTrueType(bData); err != nil {
		return nil, fmt.Errorf("%s: %w", bPath, err)
	}
	if family == "" {
		family = strings.TrimSuffix(filepath.Base(rPath), filepath.Ext(rPath))
	}
	return &FontPair{Dir: dir, Family: family, Regular: rData, Bold: bData}, nil
}

// CheckTrueType parses data as an sfnt font and returns its family name.
// Fonts with CFF outlines are rejected.
func CheckTrueType(data []byte) (string, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFontInvalid, err)
	}
	if !info.IsGlyf() {
		return "", fmt.Errorf("%w: %s has no TrueType outlines", ErrFontInvalid, info.FamilyName)
	}
	return info.FamilyName, nil
}
