// Package export provides Exporter implementations for the run artifacts:
// ZIP archive, CSV metadata table, PPTX deck, and the contact-sheet PNG.
package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"

	"github.com/labimaging/imagebatch/core"
	apperrors "github.com/labimaging/imagebatch/errors"
	"github.com/labimaging/imagebatch/utils"
)

// Archive writes one ZIP entry per processed image, renamed to
// {3-digit sequence}_{original basename}.jpg.
type Archive struct {
	Encoder core.Encoder // JPEG encoder
	Quality int
}

// NewArchive creates the ZIP exporter.
func NewArchive(enc core.Encoder, quality int) *Archive {
	if quality <= 0 {
		quality = 95
	}
	return &Archive{Encoder: enc, Quality: quality}
}

func (a *Archive) Name() string { return "archive" }

func (a *Archive) Export(ctx context.Context, run *core.RunResult, w io.Writer) error {
	zw := zip.NewWriter(w)
	for idx, item := range run.Images {
		if err := ctx.Err(); err != nil {
			return apperrors.Wrap(apperrors.CategoryExport, "archive.export", err)
		}

		data, err := a.Encoder.Encode(ctx, &core.ImageData{Image: item.Image}, core.EncodeOptions{Quality: a.Quality})
		if err != nil {
			return apperrors.Wrap(apperrors.CategoryExport, "archive.encode", err)
		}

		name := fmt.Sprintf("%03d_%s.jpg", idx+1, utils.BaseName(item.Name))
		f, err := zw.Create(name)
		if err != nil {
			return apperrors.Wrap(apperrors.CategoryExport, "archive.entry", err)
		}
		if _, err := f.Write(data); err != nil {
			return apperrors.Wrap(apperrors.CategoryExport, "archive.write", err)
		}
	}
	if err := zw.Close(); err != nil {
		return apperrors.Wrap(apperrors.CategoryExport, "archive.close", err)
	}
	return nil
}
