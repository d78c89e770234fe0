package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/labimaging/imagebatch/core"
	apperrors "github.com/labimaging/imagebatch/errors"
)

// utf8BOM is prepended so spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Metadata writes the per-image metadata table as UTF-8 CSV with a
// byte-order mark.
type Metadata struct{}

// NewMetadata creates the CSV exporter.
func NewMetadata() *Metadata { return &Metadata{} }

func (m *Metadata) Name() string { return "metadata" }

func (m *Metadata) Export(ctx context.Context, run *core.RunResult, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Wrap(apperrors.CategoryExport, "metadata.export", err)
	}
	if _, err := w.Write(utf8BOM); err != nil {
		return apperrors.Wrap(apperrors.CategoryExport, "metadata.bom", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"filename", "orig_w", "orig_h", "out_w", "out_h", "scale"}); err != nil {
		return apperrors.Wrap(apperrors.CategoryExport, "metadata.header", err)
	}
	for _, item := range run.Images {
		row := []string{
			item.Name,
			strconv.Itoa(item.OrigWidth),
			strconv.Itoa(item.OrigHeight),
			strconv.Itoa(item.OutWidth),
			strconv.Itoa(item.OutHeight),
			fmt.Sprintf("%.4f", item.Scale),
		}
		if err := cw.Write(row); err != nil {
			return apperrors.Wrap(apperrors.CategoryExport, "metadata.row", err)
		}
	}
	cw.Flush()
	return apperrors.Wrap(apperrors.CategoryExport, "metadata.flush", cw.Error())
}
