package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrFontNotFound indicates no search directory holds a complete pair.
	ErrFontNotFound = errors.New("font pair not found")

	// ErrFontInvalid indicates a font file is not usable TrueType.
	ErrFontInvalid = errors.New("invalid font file")

	// ErrLogoNotFound indicates no search directory holds the logo.
	ErrLogoNotFound = errors.New("logo not found")

	// ErrLogoDecode indicates the logo exists but is not a supported image.
	ErrLogoDecode = errors.New("failed to decode logo")

	// ErrInvalidAssetName indicates the asset name contains path separators
	// or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")
)
