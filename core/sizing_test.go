package core

import (
	"errors"
	"testing"

	apperrors "github.com/labimaging/imagebatch/errors"
)

func edgeSpec(basis EdgeBasis, target int, keepAspect, noUpscale bool) SizeSpec {
	return SizeSpec{Mode: ModeEdge, Basis: basis, TargetPixels: target, KeepAspect: keepAspect, NoUpscale: noUpscale}
}

func canvasSpec(w, h int, fit FitMode, noUpscale bool) SizeSpec {
	return SizeSpec{Mode: ModeCanvas, Width: w, Height: h, Fit: fit, NoUpscale: noUpscale}
}

func TestTargetSize_EdgeKeepAspect(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		spec         SizeSpec
		wantW, wantH int
	}{
		{"long edge landscape", 800, 600, edgeSpec(LongEdge, 400, true, false), 400, 300},
		{"long edge portrait", 600, 800, edgeSpec(LongEdge, 400, true, false), 300, 400},
		{"short edge", 800, 600, edgeSpec(ShortEdge, 300, true, false), 400, 300},
		{"upscale allowed", 100, 50, edgeSpec(LongEdge, 200, true, false), 200, 100},
		{"no upscale returns original", 100, 50, edgeSpec(LongEdge, 200, true, true), 100, 50},
		{"no upscale still shrinks", 800, 600, edgeSpec(LongEdge, 400, true, true), 400, 300},
		{"target equals long edge", 800, 600, edgeSpec(LongEdge, 800, true, true), 800, 600},
		{"floor at one pixel", 1000, 1, edgeSpec(LongEdge, 10, true, false), 10, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotW, gotH, err := TargetSize(tc.w, tc.h, tc.spec)
			if err != nil {
				t.Fatalf("TargetSize: %v", err)
			}
			if gotW != tc.wantW || gotH != tc.wantH {
				t.Errorf("got %dx%d, want %dx%d", gotW, gotH, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestTargetSize_EdgeFreeAspect(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		spec         SizeSpec
		wantW, wantH int
	}{
		{"long edge landscape forces width", 800, 600, edgeSpec(LongEdge, 400, false, false), 400, 600},
		{"long edge portrait forces height", 600, 800, edgeSpec(LongEdge, 400, false, false), 600, 400},
		{"short edge landscape forces height", 800, 600, edgeSpec(ShortEdge, 300, false, false), 800, 300},
		{"short edge portrait forces width", 600, 800, edgeSpec(ShortEdge, 300, false, false), 300, 800},
		{"no upscale clamps each axis", 300, 200, edgeSpec(LongEdge, 500, false, true), 300, 200},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotW, gotH, err := TargetSize(tc.w, tc.h, tc.spec)
			if err != nil {
				t.Fatalf("TargetSize: %v", err)
			}
			if gotW != tc.wantW || gotH != tc.wantH {
				t.Errorf("got %dx%d, want %dx%d", gotW, gotH, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestPlanResize_PadToFit(t *testing.T) {
	plan, err := PlanResize(1000, 500, canvasSpec(500, 500, PadToFit, false))
	if err != nil {
		t.Fatalf("PlanResize: %v", err)
	}
	if plan.ResizeWidth != 500 || plan.ResizeHeight != 250 {
		t.Errorf("resize: got %dx%d, want 500x250", plan.ResizeWidth, plan.ResizeHeight)
	}
	if plan.CanvasWidth != 500 || plan.CanvasHeight != 500 {
		t.Errorf("canvas: got %dx%d, want 500x500", plan.CanvasWidth, plan.CanvasHeight)
	}
	if !plan.Pad || plan.PasteX != 0 || plan.PasteY != 125 {
		t.Errorf("paste: got pad=%v (%d,%d), want pad at (0,125)", plan.Pad, plan.PasteX, plan.PasteY)
	}
}

func TestPlanResize_PadToFit_OutputAlwaysTarget(t *testing.T) {
	for _, dims := range [][2]int{{100, 900}, {900, 100}, {333, 777}, {500, 500}} {
		w, h, err := TargetSize(dims[0], dims[1], canvasSpec(500, 500, PadToFit, false))
		if err != nil {
			t.Fatalf("TargetSize(%v): %v", dims, err)
		}
		if w != 500 || h != 500 {
			t.Errorf("%v: got %dx%d, want 500x500", dims, w, h)
		}
	}
}

func TestPlanResize_PadToFit_Idempotent(t *testing.T) {
	plan, err := PlanResize(500, 500, canvasSpec(500, 500, PadToFit, false))
	if err != nil {
		t.Fatalf("PlanResize: %v", err)
	}
	if !plan.Identity(500, 500) {
		t.Errorf("already-sized image should pass through unchanged, got %+v", plan)
	}
}

func TestPlanResize_CropToFill(t *testing.T) {
	plan, err := PlanResize(1000, 500, canvasSpec(500, 500, CropToFill, false))
	if err != nil {
		t.Fatalf("PlanResize: %v", err)
	}
	// scale = max(0.5, 1.0) = 1.0: no resampling, centered 500px crop.
	if plan.ResizeWidth != 1000 || plan.ResizeHeight != 500 {
		t.Errorf("resize: got %dx%d, want 1000x500", plan.ResizeWidth, plan.ResizeHeight)
	}
	if !plan.Crop || plan.CropX != 250 || plan.CropY != 0 {
		t.Errorf("crop: got crop=%v (%d,%d), want crop at (250,0)", plan.Crop, plan.CropX, plan.CropY)
	}
	if plan.CanvasWidth != 500 || plan.CanvasHeight != 500 {
		t.Errorf("canvas: got %dx%d, want 500x500", plan.CanvasWidth, plan.CanvasHeight)
	}
}

func TestPlanResize_CropToFill_OutputAlwaysTarget(t *testing.T) {
	for _, noUpscale := range []bool{false, true} {
		for _, dims := range [][2]int{{100, 900}, {900, 100}, {333, 777}, {100, 100}, {500, 500}} {
			w, h, err := TargetSize(dims[0], dims[1], canvasSpec(500, 500, CropToFill, noUpscale))
			if err != nil {
				t.Fatalf("TargetSize(%v, noUpscale=%v): %v", dims, noUpscale, err)
			}
			if w != 500 || h != 500 {
				t.Errorf("%v noUpscale=%v: got %dx%d, want 500x500", dims, noUpscale, w, h)
			}
		}
	}
}

func TestPlanResize_CropToFill_NoUpscalePadsShortfall(t *testing.T) {
	// Undersized on both axes: no resampling, no crop, centered pad.
	plan, err := PlanResize(100, 100, canvasSpec(500, 500, CropToFill, true))
	if err != nil {
		t.Fatalf("PlanResize: %v", err)
	}
	if plan.ResizeWidth != 100 || plan.ResizeHeight != 100 {
		t.Errorf("resize: got %dx%d, want 100x100", plan.ResizeWidth, plan.ResizeHeight)
	}
	if plan.CanvasWidth != 500 || plan.CanvasHeight != 500 {
		t.Errorf("canvas: got %dx%d, want 500x500", plan.CanvasWidth, plan.CanvasHeight)
	}
	if plan.Crop {
		t.Error("nothing to crop from an undersized image")
	}
	if !plan.Pad || plan.PasteX != 200 || plan.PasteY != 200 {
		t.Errorf("pad: got pad=%v (%d,%d), want pad at (200,200)", plan.Pad, plan.PasteX, plan.PasteY)
	}

	// Undersized on one axis only: crop the wide axis, pad the short one.
	plan, err = PlanResize(1000, 200, canvasSpec(500, 500, CropToFill, true))
	if err != nil {
		t.Fatalf("PlanResize: %v", err)
	}
	if plan.ResizeWidth != 1000 || plan.ResizeHeight != 200 {
		t.Errorf("resize: got %dx%d, want 1000x200", plan.ResizeWidth, plan.ResizeHeight)
	}
	if !plan.Crop || plan.CropX != 250 || plan.CropY != 0 {
		t.Errorf("crop: got crop=%v (%d,%d), want crop at (250,0)", plan.Crop, plan.CropX, plan.CropY)
	}
	if !plan.Pad || plan.PasteX != 0 || plan.PasteY != 150 {
		t.Errorf("pad: got pad=%v (%d,%d), want pad at (0,150)", plan.Pad, plan.PasteX, plan.PasteY)
	}
	if plan.CanvasWidth != 500 || plan.CanvasHeight != 500 {
		t.Errorf("canvas: got %dx%d, want 500x500", plan.CanvasWidth, plan.CanvasHeight)
	}
}

func TestPlanResize_Stretch(t *testing.T) {
	plan, err := PlanResize(800, 600, canvasSpec(500, 500, Stretch, false))
	if err != nil {
		t.Fatalf("PlanResize: %v", err)
	}
	if plan.ResizeWidth != 500 || plan.ResizeHeight != 500 || plan.Pad || plan.Crop {
		t.Errorf("got %+v, want plain 500x500 resize", plan)
	}

	// No-upscale clamps each axis independently, breaking the fixed
	// canvas contract by design.
	plan, err = PlanResize(400, 300, canvasSpec(500, 500, Stretch, true))
	if err != nil {
		t.Fatalf("PlanResize: %v", err)
	}
	if plan.ResizeWidth != 400 || plan.ResizeHeight != 300 {
		t.Errorf("got %dx%d, want 400x300", plan.ResizeWidth, plan.ResizeHeight)
	}
}

func TestPlanResize_InvalidInput(t *testing.T) {
	if _, err := PlanResize(0, 100, edgeSpec(LongEdge, 400, true, false)); err == nil {
		t.Error("expected error for zero width")
	} else if !errors.Is(err, apperrors.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := PlanResize(100, 100, SizeSpec{Mode: ModeEdge}); err == nil {
		t.Error("expected error for zero target")
	}
	if _, err := PlanResize(100, 100, SizeSpec{Mode: ModeCanvas}); err == nil {
		t.Error("expected error for zero canvas")
	}
}

func TestScaleFactor(t *testing.T) {
	if got := ScaleFactor(1000, 500, 500, 500); got != 0.5 {
		t.Errorf("ScaleFactor: got %v, want 0.5", got)
	}
	if got := ScaleFactor(800, 600, 400, 300); got != 0.5 {
		t.Errorf("ScaleFactor: got %v, want 0.5", got)
	}
}
