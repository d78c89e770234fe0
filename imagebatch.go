// Package imagebatch batch-normalizes image dimensions, builds an
// optional contact-sheet composite, and produces export artifacts
// (ZIP archive, CSV metadata, PPTX deck, sheet PNG).
package imagebatch

import (
	"context"
	"fmt"
	"io"

	"github.com/labimaging/imagebatch/adapters/decoder"
	"github.com/labimaging/imagebatch/adapters/encoder"
	"github.com/labimaging/imagebatch/adapters/export"
	"github.com/labimaging/imagebatch/adapters/font"
	"github.com/labimaging/imagebatch/config"
	"github.com/labimaging/imagebatch/core"
	apperrors "github.com/labimaging/imagebatch/errors"
	"github.com/labimaging/imagebatch/pipeline"
	"github.com/labimaging/imagebatch/sheet"
)

// Re-export Format constants for convenience.
const (
	JPEG = core.FormatJPEG
	PNG  = core.FormatPNG
	TIFF = core.FormatTIFF
	BMP  = core.FormatBMP
)

// DefaultConfig returns the standard run configuration.
func DefaultConfig() config.Config { return config.Default() }

// Batcher is the primary entry point.  One Batcher serves one
// configuration; each Run is independent and stateless.
type Batcher struct {
	cfg    config.Config
	runner *core.Runner
	reg    *core.DefaultRegistry
	fonts  core.FontProvider
}

// New creates a fully wired Batcher with the JPEG, PNG, TIFF, and BMP
// codecs and all exporters registered.
func New(cfg config.Config) (*Batcher, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	reg := core.NewRegistry()
	reg.RegisterDecoder(core.FormatJPEG, decoder.NewJPEG())
	reg.RegisterDecoder(core.FormatPNG, decoder.NewPNG())
	reg.RegisterDecoder(core.FormatTIFF, decoder.NewTIFF())
	reg.RegisterDecoder(core.FormatBMP, decoder.NewBMP())

	jpegEnc := encoder.NewJPEG(cfg.ArchiveQuality)
	pngEnc := encoder.NewPNG()
	reg.RegisterEncoder(core.FormatJPEG, jpegEnc)
	reg.RegisterEncoder(core.FormatPNG, pngEnc)

	reg.RegisterExporter(export.NewArchive(jpegEnc, cfg.ArchiveQuality))
	reg.RegisterExporter(export.NewMetadata())
	reg.RegisterExporter(export.NewSheetPNG(pngEnc))
	reg.RegisterExporter(export.NewSlides(pngEnc))

	return &Batcher{
		cfg:    cfg,
		runner: core.NewRunner(reg),
		reg:    reg,
		fonts:  font.NewProvider(cfg.Caption.FontPath),
	}, nil
}

// SetLogger attaches a structured logger.
func (b *Batcher) SetLogger(l core.Logger) { b.runner.SetLogger(l) }

// AddHook registers an observer for pipeline step events.
func (b *Batcher) AddHook(h core.Hook) { b.runner.AddHook(h) }

// RegisterDecoder registers a custom decoder for the given format.
func (b *Batcher) RegisterDecoder(f core.Format, d core.Decoder) { b.reg.RegisterDecoder(f, d) }

// RegisterExporter registers a custom artifact exporter.
func (b *Batcher) RegisterExporter(e core.Exporter) { b.reg.RegisterExporter(e) }

// Run processes the whole batch sequentially: decode each source
// (skipping undecodable files with a warning), resize per the sizing
// rule, and assemble the contact sheet when enabled.
func (b *Batcher) Run(ctx context.Context, sources []core.Source) (*core.RunResult, error) {
	spec, err := b.cfg.SizeSpec()
	if err != nil {
		return nil, err
	}
	bg, err := config.ParseHexColor(b.cfg.Background)
	if err != nil {
		return nil, err
	}

	steps := []core.Step{
		&pipeline.DecodeStep{Registry: b.reg},
		&pipeline.ResizeToSpecStep{Spec: spec, Interp: b.cfg.Interp(), Background: bg},
	}

	result, err := b.runner.RunBatch(ctx, sources, steps...)
	if err != nil {
		return result, err
	}
	result.Background = bg

	if b.cfg.Sheet.Enabled && len(result.Images) > 0 {
		grid, err := b.cfg.GridConfig()
		if err != nil {
			return result, err
		}
		sheetImg, layout, warn, err := sheet.Assemble(result.Images, sheet.Options{
			Grid:       grid,
			Background: bg,
			Caption:    b.cfg.Caption.Enabled,
			FontSize:   b.cfg.Caption.FontSize,
			Fonts:      b.fonts,
		})
		if err != nil {
			return result, err
		}
		result.Sheet = sheetImg
		result.Layout = layout
		if warn != nil {
			result.Warnings = append(result.Warnings, *warn)
		}
	}
	return result, nil
}

// Export writes the named artifact ("archive", "metadata", "sheet",
// "slides") for a completed run to w.
func (b *Batcher) Export(ctx context.Context, name string, run *core.RunResult, w io.Writer) error {
	exp, ok := b.reg.ExporterFor(name)
	if !ok {
		return apperrors.New(apperrors.CategoryExport, "export",
			fmt.Errorf("%w: %s", apperrors.ErrNoExporter, name))
	}
	return exp.Export(ctx, run, w)
}

// EnabledArtifacts lists the artifact names selected by the run
// configuration, in output order.
func (b *Batcher) EnabledArtifacts() []string {
	var names []string
	if b.cfg.Export.Archive {
		names = append(names, "archive")
	}
	if b.cfg.Export.Metadata {
		names = append(names, "metadata")
	}
	if b.cfg.Sheet.Enabled {
		names = append(names, "sheet")
	}
	if b.cfg.Export.Slides {
		names = append(names, "slides")
	}
	return names
}

// NewPipeline creates a reusable, standalone pipeline.
func (b *Batcher) NewPipeline(steps ...core.Step) *pipeline.Pipeline {
	pl := pipeline.New()
	pl.Use(steps...)
	return pl
}

// Stats returns lightweight processing statistics.
func (b *Batcher) Stats() (processed, skipped int64) {
	return b.runner.ProcessedCount(), b.runner.SkippedCount()
}

// ── Source constructors ───────────────────────────────────────────────────────

// FromReader creates a Source from an io.Reader.
func FromReader(r io.Reader, name string) core.Source {
	return core.Source{Reader: r, Name: name, Size: -1}
}

// ── Step constructors ─────────────────────────────────────────────────────────

// DecodeWith returns a decode step bound to the given registry.
func DecodeWith(reg core.Registry) core.Step { return &pipeline.DecodeStep{Registry: reg} }

// ResizeToSpec returns a step applying the sizing policy with the given
// interpolation.
func ResizeToSpec(spec core.SizeSpec, interp core.Interpolation) core.Step {
	return &pipeline.ResizeToSpecStep{Spec: spec, Interp: interp}
}

// EncodeWith returns an encode step bound to the given registry.
func EncodeWith(reg core.Registry, format core.Format, opts core.EncodeOptions) core.Step {
	return &pipeline.EncodeStep{Registry: reg, Format: format, Options: opts}
}
