package core

import (
	"context"
	"io"

	"golang.org/x/image/font"
)

// Decoder converts raw bytes into an in-memory ImageData.
// Implementations live in adapters/decoder/.
type Decoder interface {
	// Decode reads from r and returns a decoded ImageData.
	Decode(ctx context.Context, r io.Reader) (*ImageData, error)
	// CanDecode reports whether this decoder handles the given format hint.
	CanDecode(format Format) bool
}

// Encoder serialises an ImageData to bytes in a target format.
// Implementations live in adapters/encoder/.
type Encoder interface {
	Encode(ctx context.Context, img *ImageData, opts EncodeOptions) ([]byte, error)
	CanEncode(format Format) bool
}

// EncodeOptions carries format-specific encoding parameters.
type EncodeOptions struct {
	Quality int // 1-100; 0 = use encoder default
}

// Exporter serialises a completed run into one output artifact (ZIP
// archive, CSV table, PPTX deck, sheet PNG).  Implementations live in
// adapters/export/.
type Exporter interface {
	// Name returns the artifact identifier used for registry lookup.
	Name() string
	// Export writes the artifact for the given run to w.
	Export(ctx context.Context, run *RunResult, w io.Writer) error
}

// FontProvider resolves a font face for caption rendering.  Face must
// always succeed: implementations substitute a built-in face when the
// configured font cannot be loaded.
type FontProvider interface {
	Face(sizePoints int) font.Face
}

// Logger is a minimal structured logging interface.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// Registry maps Format values to codecs and artifact names to exporters.
type Registry interface {
	DecoderFor(format Format) (Decoder, bool)
	EncoderFor(format Format) (Encoder, bool)
	ExporterFor(name string) (Exporter, bool)
	RegisterDecoder(format Format, d Decoder)
	RegisterEncoder(format Format, e Encoder)
	RegisterExporter(e Exporter)
}
