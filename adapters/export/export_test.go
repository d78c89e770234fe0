package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"image"
	"image/color"
	"strconv"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/labimaging/imagebatch/adapters/encoder"
	"github.com/labimaging/imagebatch/core"
)

func testRun(t *testing.T) *core.RunResult {
	t.Helper()
	img := imaging.New(40, 30, color.NRGBA{R: 0xFF, A: 0xFF})
	return &core.RunResult{
		Images: []core.ProcessedImage{
			{Name: "first.png", OrigWidth: 80, OrigHeight: 60, Image: img, OutWidth: 40, OutHeight: 30, Scale: 0.5},
			{Name: "second.jpg", OrigWidth: 40, OrigHeight: 30, Image: img, OutWidth: 40, OutHeight: 30, Scale: 1},
		},
	}
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		rc.Close()
		out[f.Name] = buf.Bytes()
	}
	return out
}

func TestArchive(t *testing.T) {
	exp := NewArchive(encoder.NewJPEG(95), 95)
	if exp.Name() != "archive" {
		t.Errorf("Name: got %q", exp.Name())
	}

	var buf bytes.Buffer
	if err := exp.Export(context.Background(), testRun(t), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	entries := readZip(t, buf.Bytes())
	for _, want := range []string{"001_first.jpg", "002_second.jpg"} {
		data, ok := entries[want]
		if !ok {
			t.Fatalf("missing entry %q, have %v", want, keys(entries))
		}
		if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("entry %q is not a decodable image: %v", want, err)
		}
	}
}

func TestArchive_RespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exp := NewArchive(encoder.NewJPEG(95), 95)
	if err := exp.Export(ctx, testRun(t), &bytes.Buffer{}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestMetadata(t *testing.T) {
	exp := NewMetadata()
	var buf bytes.Buffer
	if err := exp.Export(context.Background(), testRun(t), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data := buf.Bytes()
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Fatal("output must start with a UTF-8 BOM")
	}

	rows, err := csv.NewReader(bytes.NewReader(data[len(utf8BOM):])).ReadAll()
	if err != nil {
		t.Fatalf("csv parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want header + 2", len(rows))
	}
	wantHeader := []string{"filename", "orig_w", "orig_h", "out_w", "out_h", "scale"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d]: got %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][0] != "first.png" || rows[1][5] != "0.5000" {
		t.Errorf("row 1 wrong: %v", rows[1])
	}
	if rows[2][5] != "1.0000" {
		t.Errorf("row 2 scale: got %q, want 1.0000", rows[2][5])
	}
}

func TestSheetPNG(t *testing.T) {
	exp := NewSheetPNG(encoder.NewPNG())
	run := testRun(t)

	// No composed sheet means nothing to export.
	if err := exp.Export(context.Background(), run, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error when run has no sheet")
	}

	run.Sheet = imaging.New(200, 100, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	var buf bytes.Buffer
	if err := exp.Export(context.Background(), run, &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	img, format, err := image.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode sheet: %v", err)
	}
	if format != "png" {
		t.Errorf("format: got %q, want png", format)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("sheet size: got %dx%d, want 200x100", b.Dx(), b.Dy())
	}
}

func TestSlides(t *testing.T) {
	exp := NewSlides(encoder.NewPNG())
	var buf bytes.Buffer
	if err := exp.Export(context.Background(), testRun(t), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	entries := readZip(t, buf.Bytes())
	required := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide1.xml.rels",
		"ppt/media/image1.png",
		"ppt/media/image2.png",
	}
	for _, name := range required {
		if _, ok := entries[name]; !ok {
			t.Errorf("missing package part %q", name)
		}
	}

	pres := string(entries["ppt/presentation.xml"])
	if !strings.Contains(pres, `<p:sldId id="256" r:id="rId2"/>`) ||
		!strings.Contains(pres, `<p:sldId id="257" r:id="rId3"/>`) {
		t.Errorf("slide id list wrong:\n%s", pres)
	}

	// Picture geometry: 8in wide at the image aspect ratio, 1in offset.
	slide := string(entries["ppt/slides/slide1.xml"])
	if !strings.Contains(slide, `<a:off x="914400" y="914400"/>`) {
		t.Errorf("picture offset wrong:\n%s", slide)
	}
	wantCy := int64(picWidthEMU) * 30 / 40
	if !strings.Contains(slide, `cx="7315200" cy="`+strconv.FormatInt(wantCy, 10)+`"`) {
		t.Errorf("picture extent wrong (want cy=%d):\n%s", wantCy, slide)
	}
	if !strings.Contains(slide, `name="first.png"`) {
		t.Errorf("picture name missing:\n%s", slide)
	}
}

func TestSlides_EmptyBatch(t *testing.T) {
	exp := NewSlides(encoder.NewPNG())
	if err := exp.Export(context.Background(), &core.RunResult{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestEscapeXML(t *testing.T) {
	if got := escapeXML(`a<b>&"c".png`); strings.ContainsAny(got, "<>") {
		t.Errorf("markup not escaped: %q", got)
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

