// Package sheet builds the contact-sheet composite: optional filename
// captions, grid planning, and pasting onto the canvas.
package sheet

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/labimaging/imagebatch/core"
)

// captionPad is the vertical padding above and below the caption text.
const captionPad = 6

// Options parameterises sheet assembly.
type Options struct {
	Grid       core.GridConfig
	Background color.NRGBA

	Caption     bool
	FontSize    int
	Fonts       core.FontProvider
	TextColor   color.NRGBA // zero value renders as opaque black
	CaptionBand color.NRGBA // zero value renders as opaque white
}

// AddCaption appends a text band below img.  Empty text is the identity.
// The band is filled with band color and the text drawn horizontally
// centered; the input buffer is never modified.
func AddCaption(img image.Image, text string, face xfont.Face, textColor, band color.NRGBA) image.Image {
	if text == "" {
		return img
	}

	metrics := face.Metrics()
	textH := (metrics.Ascent + metrics.Descent).Ceil()
	textW := xfont.MeasureString(face, text).Ceil()

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	capH := textH + 2*captionPad

	canvas := imaging.New(w, h+capH, band)
	canvas = imaging.Paste(canvas, img, image.Pt(0, 0))

	d := &xfont.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot:  fixed.P((w-textW)/2, h+captionPad+metrics.Ascent.Ceil()),
	}
	d.DrawString(text)
	return canvas
}

// Compose allocates the layout's canvas filled with bg and pastes each
// image at its planned offset, in input order.  Placements never overlap
// by construction; an overflowing fixed canvas clips at the paste.
func Compose(images []image.Image, layout *core.CompositeLayout, bg color.NRGBA) *image.NRGBA {
	canvas := imaging.New(layout.CanvasWidth, layout.CanvasHeight, bg)
	for i, im := range images {
		if i >= len(layout.Placements) {
			break
		}
		canvas = imaging.Paste(canvas, im, layout.Placements[i])
	}
	return canvas
}

// Assemble captions the processed images (when enabled), plans the grid
// over the resulting cell sizes, and composes the sheet.  The returned
// warning is non-nil when a fixed canvas is smaller than the grid needs.
func Assemble(images []core.ProcessedImage, opts Options) (*image.NRGBA, *core.CompositeLayout, *core.Warning, error) {
	textColor := opts.TextColor
	if textColor.A == 0 {
		textColor = color.NRGBA{A: 0xFF} // black
	}
	band := opts.CaptionBand
	if band.A == 0 {
		band = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}

	cells := make([]image.Image, len(images))
	sizes := make([]image.Point, len(images))
	for i, item := range images {
		im := item.Image
		if opts.Caption && opts.Fonts != nil {
			im = AddCaption(im, item.Name, opts.Fonts.Face(opts.FontSize), textColor, band)
		}
		cells[i] = im
		b := im.Bounds()
		sizes[i] = image.Pt(b.Dx(), b.Dy())
	}

	layout, warn, err := core.PlanGrid(sizes, opts.Grid)
	if err != nil {
		return nil, nil, nil, err
	}
	return Compose(cells, layout, opts.Background), layout, warn, nil
}
