package pipeline

import (
	"github.com/disintegration/imaging"

	"github.com/labimaging/imagebatch/core"
)

// FilterFor maps an interpolation choice to the imaging resample filter.
// Bicubic uses Catmull-Rom, the standard cubic interpolator.
func FilterFor(interp core.Interpolation) imaging.ResampleFilter {
	switch interp {
	case core.InterpNearest:
		return imaging.NearestNeighbor
	case core.InterpBilinear:
		return imaging.Linear
	case core.InterpBicubic:
		return imaging.CatmullRom
	default:
		return imaging.Lanczos
	}
}
