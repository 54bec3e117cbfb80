package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/alnah/go-quote2pdf/internal/fileutil"
)

// MaxLogoWidth caps the pixel width of embedded logos.
const MaxLogoWidth = 1200

// Logo is a decoded logo re-encoded as PNG.
type Logo struct {
	Path   string
	Format string // source format as reported by image.Decode
	PNG    []byte
	Width  int
	Height int
}

// FindLogo loads the first existing name in dirs.
func FindLogo(dirs SearchPath, name string) (*Logo, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	for _, p := range dirs.Candidates(name) {
		if fileutil.FileExists(p) {
			return LoadLogo(p)
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrLogoNotFound, name, strings.Join(dirs, ", "))
}

// LoadLogo decodes the image at path.
func LoadLogo(path string) (*Logo, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path from search path or user flag
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLogoNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	logo, err := DecodeLogo(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logo.Path = path
	return logo, nil
}

// DecodeLogo decodes data in any registered format and returns it as PNG,
// downscaled to MaxLogoWidth when wider.
func DecodeLogo(data []byte) (*Logo, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoDecode, err)
	}

	img := src
	b := src.Bounds()
	if b.Dx() > MaxLogoWidth {
		h := max(1, b.Dy()*MaxLogoWidth/b.Dx())
		dst := image.NewNRGBA(image.Rect(0, 0, MaxLogoWidth, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoDecode, err)
	}
	return &Logo{
		Format: format,
		PNG:    buf.Bytes(),
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}
