package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/labimaging/imagebatch/core"
	apperrors "github.com/labimaging/imagebatch/errors"
)

// ── Decode ────────────────────────────────────────────────────────────────────

// DecodeStep decodes raw bytes in img.Data into a pixel buffer using the
// registry.
type DecodeStep struct {
	Registry core.Registry
}

func (s *DecodeStep) Name() string { return "decode" }

func (s *DecodeStep) Execute(ctx context.Context, img *core.ImageData) (*core.ImageData, error) {
	if img.Image != nil {
		return img, nil // already decoded
	}
	if len(img.Data) == 0 {
		return nil, apperrors.New(apperrors.CategoryDecode, s.Name(), apperrors.ErrEmptyInput)
	}
	dec, ok := s.Registry.DecoderFor(img.Format)
	if !ok {
		return nil, apperrors.New(apperrors.CategoryDecode, s.Name(),
			fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, img.Format))
	}

	decoded, err := dec.Decode(ctx, bytes.NewReader(img.Data))
	if err != nil {
		return nil, err
	}

	// Preserve the source identity alongside the decoded representation.
	decoded.Name = img.Name
	decoded.Data = img.Data
	return decoded, nil
}

// ── Resize to spec ────────────────────────────────────────────────────────────

// ResizeToSpecStep applies the sizing policy: it computes the resize plan
// for the run's SizeSpec and resamples with the configured filter,
// padding or cropping as the plan dictates.
type ResizeToSpecStep struct {
	Spec       core.SizeSpec
	Interp     core.Interpolation
	Background color.NRGBA
}

func (s *ResizeToSpecStep) Name() string { return "resize" }

func (s *ResizeToSpecStep) Execute(ctx context.Context, img *core.ImageData) (*core.ImageData, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryPipeline, s.Name(), err)
	}
	src := img.Image
	if src == nil {
		return nil, apperrors.New(apperrors.CategoryPipeline, s.Name(), apperrors.ErrEmptyInput)
	}

	b := src.Bounds()
	plan, err := core.PlanResize(b.Dx(), b.Dy(), s.Spec)
	if err != nil {
		return nil, err
	}
	if plan.Identity(b.Dx(), b.Dy()) {
		return img, nil // nothing to do
	}

	filter := FilterFor(s.Interp)
	resized := imaging.Resize(src, plan.ResizeWidth, plan.ResizeHeight, filter)

	// Crop and pad can both apply: a no-upscale crop-to-fill may fall
	// short of the canvas on one axis, leaving a band to fill.
	var out image.Image = resized
	if plan.Crop {
		out = imaging.Crop(out, image.Rect(
			plan.CropX, plan.CropY,
			plan.CropX+plan.CanvasWidth, plan.CropY+plan.CanvasHeight,
		))
	}
	if plan.Pad {
		canvas := imaging.New(plan.CanvasWidth, plan.CanvasHeight, s.Background)
		out = imaging.Paste(canvas, out, image.Pt(plan.PasteX, plan.PasteY))
	}

	next := *img
	next.Image = out
	next.Width = out.Bounds().Dx()
	next.Height = out.Bounds().Dy()
	return &next, nil
}

// ── Encode ────────────────────────────────────────────────────────────────────

// EncodeStep serialises the pixel buffer into encoded bytes using the
// registry.
type EncodeStep struct {
	Registry core.Registry
	Format   core.Format
	Options  core.EncodeOptions
}

func (s *EncodeStep) Name() string { return "encode" }

func (s *EncodeStep) Execute(ctx context.Context, img *core.ImageData) (*core.ImageData, error) {
	format := s.Format
	if format == "" {
		format = img.Format
	}
	enc, ok := s.Registry.EncoderFor(format)
	if !ok {
		return nil, apperrors.New(apperrors.CategoryEncode, s.Name(),
			fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, format))
	}

	data, err := enc.Encode(ctx, img, s.Options)
	if err != nil {
		return nil, err
	}

	out := *img
	out.Data = data
	out.Format = format
	return &out, nil
}
