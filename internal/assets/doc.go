// Package assets locates the optional font and logo files a quotation is
// drawn with.
//
// # Search Path
//
// Assets are looked up in an ordered list of directories. The defaults are
// relative to the directory holding the binary:
//
//	fonts: ../fonts, fonts, assets/fonts
//	logos: ../logos, logos, .
//
// Callers may prepend their own directories; the first match wins.
//
// # Fonts
//
// A font pair is a regular and a bold TrueType file found in the same
// directory. A directory holding only one of the two is skipped. Each file is
// parsed and must carry TrueType (glyf) outlines, which is what the PDF
// surface can embed.
//
// # Logos
//
// Logos may be PNG, JPEG, GIF, BMP, TIFF or WebP. They are decoded,
// downscaled to at most MaxLogoWidth pixels wide and re-encoded as PNG.
//
// # Security
//
// File names are validated to prevent path traversal; only plain names are
// joined onto search directories.
package assets
