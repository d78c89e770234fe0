package export

import (
	"context"
	"io"

	"github.com/labimaging/imagebatch/core"
	apperrors "github.com/labimaging/imagebatch/errors"
)

// SheetPNG writes the composed contact sheet as a single PNG.
type SheetPNG struct {
	Encoder core.Encoder // PNG encoder
}

// NewSheetPNG creates the contact-sheet exporter.
func NewSheetPNG(enc core.Encoder) *SheetPNG { return &SheetPNG{Encoder: enc} }

func (s *SheetPNG) Name() string { return "sheet" }

func (s *SheetPNG) Export(ctx context.Context, run *core.RunResult, w io.Writer) error {
	if run.Sheet == nil {
		return apperrors.New(apperrors.CategoryExport, "sheet.export", apperrors.ErrEmptyInput)
	}
	data, err := s.Encoder.Encode(ctx, &core.ImageData{Image: run.Sheet}, core.EncodeOptions{})
	if err != nil {
		return apperrors.Wrap(apperrors.CategoryExport, "sheet.encode", err)
	}
	if _, err := w.Write(data); err != nil {
		return apperrors.Wrap(apperrors.CategoryExport, "sheet.write", err)
	}
	return nil
}
