// Package config defines the per-run configuration.  A run's settings are
// captured in one immutable Config value passed into the core functions,
// so the processing pipeline is testable without any UI surface.
package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/labimaging/imagebatch/core"
	apperrors "github.com/labimaging/imagebatch/errors"
)

// Paper dimensions in inches (portrait).
const (
	A4WidthInches      = 8.27
	A4HeightInches     = 11.69
	LetterWidthInches  = 8.5
	LetterHeightInches = 11.0
)

// Config is the top-level configuration struct.  All fields have safe
// defaults so callers can start with Default() and override what they need.
type Config struct {
	Sizing  Sizing  `toml:"sizing"`
	Grid    Grid    `toml:"grid"`
	Caption Caption `toml:"caption"`
	Sheet   Sheet   `toml:"sheet"`
	Export  Export  `toml:"export"`

	// Interpolation algorithm applied to every resize in the run:
	// "nearest", "bilinear", "bicubic", or "lanczos".
	Interpolation string `toml:"interpolation"`

	// Background fill for padding and the sheet canvas, "#RRGGBB".
	Background string `toml:"background"`

	// JPEG quality for archived images.
	ArchiveQuality int `toml:"archive_quality"`

	LogLevel string `toml:"log_level"` // "debug", "info", "warn", "error"
}

// Sizing selects the target-size rule.
type Sizing struct {
	Mode         string `toml:"mode"`  // "edge" or "canvas"
	Basis        string `toml:"basis"` // "long" or "short"
	TargetPixels int    `toml:"target_pixels"`
	KeepAspect   bool   `toml:"keep_aspect"`
	NoUpscale    bool   `toml:"no_upscale"`
	Canvas       string `toml:"canvas"` // "WxH", canvas mode only
	Fit          string `toml:"fit"`    // "pad", "crop", or "stretch"
}

// Grid parameterises the contact-sheet layout.
type Grid struct {
	Columns int `toml:"columns"`
	Gap     int `toml:"gap"`
	Margin  int `toml:"margin"`
}

// Caption controls the filename band under each sheet cell.
type Caption struct {
	Enabled  bool   `toml:"enabled"`
	FontSize int    `toml:"font_size"`
	FontPath string `toml:"font_path"` // optional TTF; built-in fallback when empty or unloadable
}

// Sheet controls the composite canvas.
type Sheet struct {
	Enabled  bool   `toml:"enabled"`
	SizeMode string `toml:"size_mode"` // "auto", "pixels", or "paper"
	Pixels   string `toml:"pixels"`    // "WxH", pixels mode only
	Paper    string `toml:"paper"`     // "a4" or "letter"
	DPI      int    `toml:"dpi"`
}

// Export toggles the output artifacts.
type Export struct {
	Archive  bool `toml:"archive"`
	Metadata bool `toml:"metadata"`
	Slides   bool `toml:"slides"`
}

// Default returns a Config mirroring the tool's standard form defaults.
func Default() Config {
	return Config{
		Sizing: Sizing{
			Mode:         "edge",
			Basis:        "long",
			TargetPixels: 1024,
			KeepAspect:   true,
			NoUpscale:    true,
			Canvas:       "1024x768",
			Fit:          "pad",
		},
		Grid:    Grid{Columns: 4, Gap: 12, Margin: 24},
		Caption: Caption{FontSize: 14},
		Sheet:   Sheet{Enabled: true, SizeMode: "auto", Paper: "a4", DPI: 300},
		Export:  Export{Archive: true, Metadata: true},

		Interpolation:  "lanczos",
		Background:     "#FFFFFF",
		ArchiveQuality: 95,
		LogLevel:       "info",
	}
}

// Load reads a TOML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, apperrors.Wrap(apperrors.CategoryConfig, "config.load", err)
	}
	return cfg, Validate(cfg)
}

// Validate returns an error if the configuration is inconsistent.
func Validate(c Config) error {
	if c.Grid.Columns < 1 {
		return apperrors.New(apperrors.CategoryConfig, "config.validate",
			fmt.Errorf("grid columns must be >= 1, got %d", c.Grid.Columns))
	}
	if c.Grid.Gap < 0 || c.Grid.Margin < 0 {
		return apperrors.New(apperrors.CategoryConfig, "config.validate",
			fmt.Errorf("grid gap and margin must be >= 0"))
	}
	if c.ArchiveQuality < 1 || c.ArchiveQuality > 100 {
		return apperrors.New(apperrors.CategoryConfig, "config.validate",
			fmt.Errorf("archive quality must be 1-100, got %d", c.ArchiveQuality))
	}
	if _, err := ParseHexColor(c.Background); err != nil {
		return err
	}
	if c.Sizing.Mode == "canvas" {
		if _, _, err := ParseSize(c.Sizing.Canvas); err != nil {
			return err
		}
	}
	if c.Sheet.SizeMode == "paper" {
		if _, _, err := PaperPixels(c.Sheet.Paper, c.Sheet.DPI); err != nil {
			return err
		}
	}
	return nil
}

// ParseSize parses textual "WIDTHxHEIGHT" input (ASCII "x" or the
// full-width "×") into two positive integers.
func ParseSize(text string) (int, int, error) {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), "×", "x")
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, apperrors.New(apperrors.CategoryConfig, "config.parse_size",
			fmt.Errorf("%w: %q", apperrors.ErrBadSizeSyntax, text))
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, apperrors.New(apperrors.CategoryConfig, "config.parse_size",
			fmt.Errorf("%w: %q", apperrors.ErrBadSizeSyntax, text))
	}
	return w, h, nil
}

// ParseHexColor parses "#RRGGBB" into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, apperrors.New(apperrors.CategoryConfig, "config.parse_color",
			fmt.Errorf("color must be #RRGGBB, got %q", s))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, apperrors.New(apperrors.CategoryConfig, "config.parse_color",
			fmt.Errorf("color must be #RRGGBB, got %q", s))
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// PaperPixels converts a paper size at the given DPI to pixel
// dimensions, floored to integers.
func PaperPixels(paper string, dpi int) (int, int, error) {
	if dpi <= 0 {
		return 0, 0, apperrors.New(apperrors.CategoryConfig, "config.paper",
			fmt.Errorf("dpi must be positive, got %d", dpi))
	}
	switch strings.ToLower(paper) {
	case "a4":
		return int(A4WidthInches * float64(dpi)), int(A4HeightInches * float64(dpi)), nil
	case "letter":
		return int(LetterWidthInches * float64(dpi)), int(LetterHeightInches * float64(dpi)), nil
	}
	return 0, 0, apperrors.New(apperrors.CategoryConfig, "config.paper",
		fmt.Errorf("unknown paper size %q", paper))
}

// SizeSpec resolves the sizing section into the core policy input.
func (c Config) SizeSpec() (core.SizeSpec, error) {
	spec := core.SizeSpec{NoUpscale: c.Sizing.NoUpscale}
	if c.Sizing.Mode == "canvas" {
		w, h, err := ParseSize(c.Sizing.Canvas)
		if err != nil {
			return spec, err
		}
		spec.Mode = core.ModeCanvas
		spec.Width, spec.Height = w, h
		switch c.Sizing.Fit {
		case "crop":
			spec.Fit = core.CropToFill
		case "stretch":
			spec.Fit = core.Stretch
		default:
			spec.Fit = core.PadToFit
		}
		return spec, nil
	}

	spec.Mode = core.ModeEdge
	spec.TargetPixels = c.Sizing.TargetPixels
	spec.KeepAspect = c.Sizing.KeepAspect
	if c.Sizing.Basis == "short" {
		spec.Basis = core.ShortEdge
	} else {
		spec.Basis = core.LongEdge
	}
	return spec, nil
}

// GridConfig resolves the grid and sheet sections into the planner input.
func (c Config) GridConfig() (core.GridConfig, error) {
	g := core.GridConfig{Columns: c.Grid.Columns, Gap: c.Grid.Gap, Margin: c.Grid.Margin}
	switch c.Sheet.SizeMode {
	case "pixels":
		w, h, err := ParseSize(c.Sheet.Pixels)
		if err != nil {
			return g, err
		}
		g.FixedWidth, g.FixedHeight = w, h
	case "paper":
		w, h, err := PaperPixels(c.Sheet.Paper, c.Sheet.DPI)
		if err != nil {
			return g, err
		}
		g.FixedWidth, g.FixedHeight = w, h
	}
	return g, nil
}

// Interp resolves the interpolation name, defaulting to Lanczos.
func (c Config) Interp() core.Interpolation {
	switch strings.ToLower(c.Interpolation) {
	case "nearest":
		return core.InterpNearest
	case "bilinear":
		return core.InterpBilinear
	case "bicubic":
		return core.InterpBicubic
	default:
		return core.InterpLanczos
	}
}
