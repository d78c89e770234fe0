package core

import (
	"context"
	"image"
	"image/color"
	"io"
	"time"
)

// Format identifies an image codec.
type Format string

const (
	FormatJPEG    Format = "jpeg"
	FormatPNG     Format = "png"
	FormatTIFF    Format = "tiff"
	FormatBMP     Format = "bmp"
	FormatUnknown Format = "unknown"
)

// Interpolation selects the resampling algorithm applied to every resize
// in a run.  The choice affects quality and speed, never correctness.
type Interpolation string

const (
	InterpNearest  Interpolation = "nearest"
	InterpBilinear Interpolation = "bilinear"
	InterpBicubic  Interpolation = "bicubic"
	InterpLanczos  Interpolation = "lanczos"
)

// SizeMode selects between edge-based and fixed-canvas sizing.
type SizeMode string

const (
	ModeEdge   SizeMode = "edge"
	ModeCanvas SizeMode = "canvas"
)

// EdgeBasis names the edge that edge-based sizing measures against.
type EdgeBasis string

const (
	LongEdge  EdgeBasis = "long"
	ShortEdge EdgeBasis = "short"
)

// FitMode controls how an image is mapped onto a fixed canvas.
type FitMode string

const (
	PadToFit   FitMode = "pad"
	CropToFill FitMode = "crop"
	Stretch    FitMode = "stretch"
)

// SizeSpec describes the target-size rule for a run.  Exactly one of the
// two groups applies, selected by Mode.
type SizeSpec struct {
	Mode SizeMode

	// Edge-based sizing.
	Basis        EdgeBasis
	TargetPixels int
	KeepAspect   bool

	// Fixed-canvas sizing.
	Width, Height int
	Fit           FitMode

	// NoUpscale forbids scale factors above 1.0 in either mode.
	NoUpscale bool
}

// ImageData is the in-memory representation passed through a pipeline.
// Each step produces a new value; buffers are never aliased across stages.
type ImageData struct {
	Name string

	// Encoded bytes — non-nil after an encode step or for raw input.
	Data   []byte
	Format Format

	// Decoded pixel buffer, always 8-bit color after decode.
	Image image.Image

	// Dimensions of Image, tracked so hooks can log without bounds calls.
	Width, Height int

	// Dimensions at decode time, before any resize.
	OrigWidth, OrigHeight int
}

// ProcessedImage is the per-image record produced by a batch run.
type ProcessedImage struct {
	Name                  string
	OrigWidth, OrigHeight int
	Image                 image.Image
	OutWidth, OutHeight   int

	// Scale = min(outW/origW, outH/origH).  A diagnostic ratio: in crop
	// and stretch modes it is not a single physical scale factor.
	Scale float64
}

// GridConfig parameterises the contact-sheet layout.
type GridConfig struct {
	Columns int // ≥ 1
	Gap     int // pixels between cells, ≥ 0
	Margin  int // pixels around the grid, ≥ 0

	// FixedWidth/FixedHeight pin the canvas size; both zero means the
	// canvas is computed from the grid.
	FixedWidth, FixedHeight int
}

// Fixed reports whether the canvas size is pinned.
func (g GridConfig) Fixed() bool { return g.FixedWidth > 0 && g.FixedHeight > 0 }

// CompositeLayout is the planned geometry of a contact sheet.
type CompositeLayout struct {
	CanvasWidth, CanvasHeight int
	CellWidth, CellHeight     int
	Rows, Columns             int

	// Placements holds the top-left paste offset of each image, in input
	// order.
	Placements []image.Point
}

// WarningCode classifies non-fatal conditions surfaced to the caller.
type WarningCode string

const (
	WarnDecodeSkipped     WarningCode = "decode_skipped"
	WarnCanvasTooSmall    WarningCode = "canvas_too_small"
	WarnExportUnavailable WarningCode = "export_unavailable"
	WarnConfigFallback    WarningCode = "config_fallback"
)

// Warning is a non-fatal condition recorded during a run.  No warning
// aborts processing.
type Warning struct {
	Code    WarningCode
	Subject string // file or exporter name, empty when not applicable
	Message string
}

// Source abstracts where raw image bytes come from.
type Source struct {
	Reader io.Reader
	Name   string // logical name / filename
	Size   int64  // -1 if unknown
}

// RunResult is returned to the caller after a full batch run.
type RunResult struct {
	Images   []ProcessedImage
	Layout   *CompositeLayout // nil when no sheet was built
	Sheet    image.Image      // nil when no sheet was built
	Warnings []Warning

	Background color.NRGBA

	// Observability.
	ProcessingTime time.Duration
	StepTimings    map[string]time.Duration
}

// AddWarning appends a warning to the result.
func (r *RunResult) AddWarning(code WarningCode, subject, message string) {
	r.Warnings = append(r.Warnings, Warning{Code: code, Subject: subject, Message: message})
}

// Step is the fundamental pipeline building block.  Each Step transforms
// an *ImageData value and must be safe for concurrent use.
type Step interface {
	Name() string
	Execute(ctx context.Context, img *ImageData) (*ImageData, error)
}

// Hook is an optional observer invoked around pipeline steps.
type Hook interface {
	BeforeStep(ctx context.Context, stepName string, img *ImageData)
	AfterStep(ctx context.Context, stepName string, img *ImageData, d time.Duration, err error)
}
