package core

import (
	"fmt"
	"math"

	apperrors "github.com/labimaging/imagebatch/errors"
)

// ResizePlan is the output of the sizing policy: how to resample one
// image and, for fixed-canvas modes, how to map the result onto the
// canvas.  The plan is pure geometry; applying it is the resampler's job.
type ResizePlan struct {
	// Dimensions to resample the source to.
	ResizeWidth, ResizeHeight int

	// Final output dimensions.  In the fixed-canvas modes this is always
	// the requested canvas size.
	CanvasWidth, CanvasHeight int

	// Pad: top-left offset of the (possibly cropped) image on the canvas.
	Pad            bool
	PasteX, PasteY int

	// Crop: origin of the centered crop within the resized image.  Crop
	// and Pad can both be set when a no-upscale crop falls short of the
	// canvas on one axis.
	Crop         bool
	CropX, CropY int
}

// Identity reports whether the plan leaves the image untouched.
func (p ResizePlan) Identity(origW, origH int) bool {
	return !p.Pad && !p.Crop && p.ResizeWidth == origW && p.ResizeHeight == origH
}

// PlanResize computes the resize plan for one image under the given spec.
// Original dimensions must be positive; decoders reject zero-size images
// before they reach the policy.
func PlanResize(origW, origH int, spec SizeSpec) (ResizePlan, error) {
	if origW <= 0 || origH <= 0 {
		return ResizePlan{}, apperrors.New(apperrors.CategoryInput, "sizing.plan",
			fmt.Errorf("%w: %dx%d", apperrors.ErrInvalidDimensions, origW, origH))
	}

	switch spec.Mode {
	case ModeCanvas:
		if spec.Width <= 0 || spec.Height <= 0 {
			return ResizePlan{}, apperrors.New(apperrors.CategoryConfig, "sizing.plan",
				fmt.Errorf("%w: canvas %dx%d", apperrors.ErrInvalidDimensions, spec.Width, spec.Height))
		}
		return planCanvas(origW, origH, spec), nil
	default:
		if spec.TargetPixels <= 0 {
			return ResizePlan{}, apperrors.New(apperrors.CategoryConfig, "sizing.plan",
				fmt.Errorf("%w: target %d", apperrors.ErrInvalidDimensions, spec.TargetPixels))
		}
		w, h := edgeTarget(origW, origH, spec)
		return ResizePlan{ResizeWidth: w, ResizeHeight: h, CanvasWidth: w, CanvasHeight: h}, nil
	}
}

// TargetSize returns the final output dimensions for one image under the
// given spec, without the intermediate geometry.
func TargetSize(origW, origH int, spec SizeSpec) (int, int, error) {
	plan, err := PlanResize(origW, origH, spec)
	if err != nil {
		return 0, 0, err
	}
	return plan.CanvasWidth, plan.CanvasHeight, nil
}

// edgeTarget resolves long/short-edge sizing.
func edgeTarget(w, h int, spec SizeSpec) (int, int) {
	target := spec.TargetPixels

	if spec.KeepAspect {
		var scale float64
		if spec.Basis == ShortEdge {
			scale = float64(target) / float64(min(w, h))
		} else {
			scale = float64(target) / float64(max(w, h))
		}
		if spec.NoUpscale && scale > 1.0 {
			return w, h
		}
		return scaleDims(w, h, scale)
	}

	// Free aspect: force only the basis axis to the target.
	nw, nh := w, h
	if spec.Basis == ShortEdge {
		if w <= h {
			nw = target
		} else {
			nh = target
		}
	} else {
		if w >= h {
			nw = target
		} else {
			nh = target
		}
	}
	if spec.NoUpscale {
		nw, nh = min(nw, w), min(nh, h)
	}
	return nw, nh
}

// planCanvas resolves fixed-canvas sizing for all three fit modes.
func planCanvas(w, h int, spec SizeSpec) ResizePlan {
	tw, th := spec.Width, spec.Height

	switch spec.Fit {
	case CropToFill:
		scale := math.Max(float64(tw)/float64(w), float64(th)/float64(h))
		if spec.NoUpscale {
			scale = math.Min(1.0, scale)
		}
		nw, nh := scaleDims(w, h, scale)
		plan := ResizePlan{
			ResizeWidth: nw, ResizeHeight: nh,
			CanvasWidth: tw, CanvasHeight: th,
		}
		if nw > tw || nh > th {
			plan.Crop = true
			plan.CropX = max(0, (nw-tw)/2)
			plan.CropY = max(0, (nh-th)/2)
		}
		// Under no-upscale the resized image can be smaller than the
		// canvas on either axis; the shortfall is padded with background
		// so the output is always exactly the canvas size.
		if nw < tw || nh < th {
			plan.Pad = true
			plan.PasteX = (tw - min(tw, nw)) / 2
			plan.PasteY = (th - min(th, nh)) / 2
		}
		return plan
	case Stretch:
		if spec.NoUpscale {
			tw, th = min(tw, w), min(th, h)
		}
		return ResizePlan{ResizeWidth: tw, ResizeHeight: th, CanvasWidth: tw, CanvasHeight: th}
	default: // PadToFit
		scale := math.Min(float64(tw)/float64(w), float64(th)/float64(h))
		if spec.NoUpscale {
			scale = math.Min(1.0, scale)
		}
		nw, nh := scaleDims(w, h, scale)
		if nw == tw && nh == th {
			// Exact fit, nothing to pad.
			return ResizePlan{ResizeWidth: nw, ResizeHeight: nh, CanvasWidth: tw, CanvasHeight: th}
		}
		return ResizePlan{
			ResizeWidth: nw, ResizeHeight: nh,
			CanvasWidth: tw, CanvasHeight: th,
			Pad:    true,
			PasteX: (tw - nw) / 2,
			PasteY: (th - nh) / 2,
		}
	}
}

// scaleDims multiplies both axes by scale, rounding, with a floor of 1px.
func scaleDims(w, h int, scale float64) (int, int) {
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	return max(1, nw), max(1, nh)
}

// ScaleFactor is the diagnostic ratio recorded per image:
// min(outW/origW, outH/origH).  It equals the true uniform scale only in
// aspect-preserving modes.
func ScaleFactor(origW, origH, outW, outH int) float64 {
	return math.Min(float64(outW)/float64(origW), float64(outH)/float64(origH))
}
