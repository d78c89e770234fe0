package core

import (
	"fmt"
	"image"

	apperrors "github.com/labimaging/imagebatch/errors"
)

// PlanGrid computes the contact-sheet layout for the given image sizes.
// Sizes must be in input order; placements come back in the same order.
//
// The returned Warning is non-nil when a fixed canvas is smaller than
// the grid needs; the layout still proceeds and content may be clipped
// at composite time.
func PlanGrid(sizes []image.Point, cfg GridConfig) (*CompositeLayout, *Warning, error) {
	if len(sizes) == 0 {
		return nil, nil, apperrors.New(apperrors.CategoryLayout, "layout.plan", apperrors.ErrEmptyBatch)
	}
	if cfg.Columns < 1 {
		return nil, nil, apperrors.New(apperrors.CategoryLayout, "layout.plan",
			fmt.Errorf("%w: columns %d", apperrors.ErrInvalidDimensions, cfg.Columns))
	}
	if cfg.Gap < 0 || cfg.Margin < 0 {
		return nil, nil, apperrors.New(apperrors.CategoryLayout, "layout.plan",
			fmt.Errorf("%w: gap %d margin %d", apperrors.ErrInvalidDimensions, cfg.Gap, cfg.Margin))
	}

	// Cell size is the componentwise maximum over all images.
	var cellW, cellH int
	for _, s := range sizes {
		cellW = max(cellW, s.X)
		cellH = max(cellH, s.Y)
	}

	cols := cfg.Columns
	rows := (len(sizes) + cols - 1) / cols

	minW := 2*cfg.Margin + cols*cellW + (cols-1)*cfg.Gap
	minH := 2*cfg.Margin + rows*cellH + (rows-1)*cfg.Gap

	canvasW, canvasH := minW, minH
	var warn *Warning
	if cfg.Fixed() {
		canvasW, canvasH = cfg.FixedWidth, cfg.FixedHeight
		if canvasW < minW || canvasH < minH {
			warn = &Warning{
				Code: WarnCanvasTooSmall,
				Message: fmt.Sprintf("fixed canvas %dx%d is smaller than the %dx%d grid; images may be clipped",
					canvasW, canvasH, minW, minH),
			}
		}
	}

	placements := make([]image.Point, len(sizes))
	for i, s := range sizes {
		col := i % cols
		row := i / cols
		x := cfg.Margin + col*(cellW+cfg.Gap)
		y := cfg.Margin + row*(cellH+cfg.Gap)
		// Center within the cell.  Cell size is the max over all images,
		// so the centred offset cannot go negative, but guard anyway and
		// fall back to flush top-left.
		ox := x + (cellW-s.X)/2
		oy := y + (cellH-s.Y)/2
		if ox < x || oy < y {
			ox, oy = x, y
		}
		placements[i] = image.Pt(ox, oy)
	}

	return &CompositeLayout{
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
		CellWidth:    cellW,
		CellHeight:   cellH,
		Rows:         rows,
		Columns:      cols,
		Placements:   placements,
	}, warn, nil
}
