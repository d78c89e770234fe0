// Package font resolves caption font faces.  Resolution never fails: a
// configured font file that cannot be loaded falls back to the embedded
// Go Regular face, and ultimately to a fixed bitmap face.
package font

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Provider satisfies core.FontProvider.
type Provider struct {
	sfnt *opentype.Font // nil when only the bitmap fallback is available
}

// NewProvider loads the font at path, or the embedded Go Regular face
// when path is empty or unloadable.
func NewProvider(path string) *Provider {
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if f, err := opentype.Parse(data); err == nil {
				return &Provider{sfnt: f}
			}
		}
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		// Embedded font failing to parse leaves only the bitmap face.
		return &Provider{}
	}
	return &Provider{sfnt: f}
}

// Face returns a face at the given point size.  Never fails.
func (p *Provider) Face(sizePoints int) font.Face {
	if sizePoints <= 0 {
		sizePoints = 14
	}
	if p.sfnt != nil {
		face, err := opentype.NewFace(p.sfnt, &opentype.FaceOptions{
			Size:    float64(sizePoints),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}
