package utils

import (
	"net/http"
	"strings"
)

const (
	formatJPEG    = "jpeg"
	formatPNG     = "png"
	formatTIFF    = "tiff"
	formatBMP     = "bmp"
	formatUnknown = "unknown"
)

// DetectFormat sniffs the leading bytes of data and returns the image format.
func DetectFormat(data []byte) string {
	if len(data) < 4 {
		return formatUnknown
	}
	// JPEG: FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return formatJPEG
	}
	// PNG: 89 50 4E 47
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return formatPNG
	}
	// TIFF: II 2A 00 (little-endian) or MM 00 2A (big-endian)
	if (data[0] == 'I' && data[1] == 'I' && data[2] == 0x2A && data[3] == 0x00) ||
		(data[0] == 'M' && data[1] == 'M' && data[2] == 0x00 && data[3] == 0x2A) {
		return formatTIFF
	}
	// BMP: BM
	if data[0] == 'B' && data[1] == 'M' {
		return formatBMP
	}
	// Fallback to net/http sniffing.
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return formatJPEG
	case "image/png":
		return formatPNG
	case "image/bmp":
		return formatBMP
	}
	return formatUnknown
}

// BaseName strips the final extension from a filename, forming the
// original-basename part of archive entry names.  A dotfile like
// ".hidden" has no extension to strip and keeps its full name.
func BaseName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// CloneBytes returns a copy of b (safe for use after the source buffer is released).
func CloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
