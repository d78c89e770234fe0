package font

import (
	"os"
	"path/filepath"
	"testing"

	xfont "golang.org/x/image/font"
)

func TestNewProvider_EmbeddedDefault(t *testing.T) {
	p := NewProvider("")
	face := p.Face(14)
	if face == nil {
		t.Fatal("Face returned nil")
	}
	if w := xfont.MeasureString(face, "sample.jpg"); w <= 0 {
		t.Errorf("measured width not positive: %v", w)
	}
}

func TestNewProvider_BadPathFallsBack(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "missing.ttf"))
	if p.Face(14) == nil {
		t.Fatal("Face returned nil after fallback")
	}
}

func TestNewProvider_CorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ttf")
	if err := os.WriteFile(path, []byte("definitely not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := NewProvider(path)
	if p.Face(14) == nil {
		t.Fatal("Face returned nil after fallback")
	}
}

func TestFace_SizeClamped(t *testing.T) {
	p := NewProvider("")
	if p.Face(0) == nil || p.Face(-3) == nil {
		t.Fatal("non-positive sizes must still yield a face")
	}
}

func TestFace_SizesDiffer(t *testing.T) {
	p := NewProvider("")
	small := xfont.MeasureString(p.Face(10), "width")
	large := xfont.MeasureString(p.Face(28), "width")
	if large <= small {
		t.Errorf("larger point size should measure wider: %v vs %v", small, large)
	}
}
