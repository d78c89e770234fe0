package decoder

import (
	"context"
	"image/png"
	"io"

	"github.com/labimaging/imagebatch/core"
	apperrors "github.com/labimaging/imagebatch/errors"
)

// PNG decodes PNG images using the standard library.
type PNG struct{}

// NewPNG returns an initialised PNG decoder.
func NewPNG() *PNG { return &PNG{} }

func (p *PNG) CanDecode(format core.Format) bool {
	return format == core.FormatPNG
}

func (p *PNG) Decode(ctx context.Context, r io.Reader) (*core.ImageData, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "png.decode", err)
	}

	img, err := png.Decode(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "png.decode", err)
	}
	return normalize(img, core.FormatPNG, "png.decode")
}
