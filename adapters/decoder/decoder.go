// Package decoder provides format-specific image decoders.  Every decoder
// normalises its output to an 8-bit NRGBA buffer so the rest of the
// pipeline sees one fixed color representation.
package decoder

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/labimaging/imagebatch/core"
	apperrors "github.com/labimaging/imagebatch/errors"
)

// normalize converts a freshly decoded image into the pipeline's ImageData,
// rejecting degenerate zero-size images at the boundary.
func normalize(img image.Image, format core.Format, op string) (*core.ImageData, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, apperrors.New(apperrors.CategoryDecode, op,
			fmt.Errorf("%w: %dx%d", apperrors.ErrInvalidDimensions, b.Dx(), b.Dy()))
	}

	nrgba := imaging.Clone(img)
	return &core.ImageData{
		Image:      nrgba,
		Format:     format,
		Width:      b.Dx(),
		Height:     b.Dy(),
		OrigWidth:  b.Dx(),
		OrigHeight: b.Dy(),
	}, nil
}
