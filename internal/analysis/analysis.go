// Package analysis derives document statistics for cost estimation. The
// numbers are size-based heuristics, not a parse of the file contents: the
// estimate only needs to be stable and roughly proportional to the amount of
// translatable text.
package analysis

import (
	"archive/zip"
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// Result describes one analyzed upload.
type Result struct {
	FileName   string `json:"file_name"`
	Format     string `json:"format"`
	SizeBytes  int64  `json:"size_bytes"`
	CharCount  int64  `json:"char_count"`
	WordCount  int64  `json:"word_count"`
	ImageCount int    `json:"image_count"`
}

// bytesPerChar maps a format to the approximate bytes of file payload per
// character of translatable text. Container formats carry markup and media
// overhead, hence the larger divisors.
var bytesPerChar = map[string]float64{
	"txt":  1.1,
	"md":   1.1,
	"srt":  1.4,
	"csv":  1.3,
	"html": 1.8,
	"htm":  1.8,
	"rtf":  4.0,
	"doc":  6.0,
	"odt":  8.5,
	"docx": 9.5,
	"pdf":  12.0,
	"pptx": 14.0,
}

// binary formats may embed images carrying text; text formats never do.
var mayEmbedImages = map[string]bool{
	"doc":  true,
	"docx": true,
	"odt":  true,
	"pdf":  true,
	"pptx": true,
	"rtf":  true,
}

const (
	charsPerWord        = 5
	bytesPerImage int64 = 150 * 1024
	maxImageGuess       = 20

	// maxEntrySize caps the size a ZIP entry may declare. The central
	// directory is attacker-controlled and uploads are bounded far below
	// this, so a larger value can only be a forgery.
	maxEntrySize uint64 = 1 << 30
)

// Supported reports whether the format (extension without dot) is analyzable.
func Supported(format string) bool {
	_, ok := bytesPerChar[strings.ToLower(format)]
	return ok
}

// Analyze produces a size-derived estimate for the named upload. ZIP archives
// are inspected and the first entry with a supported extension stands in for
// the archive itself.
func Analyze(fileName string, data []byte) (*Result, error) {
	format := formatOf(fileName)
	size := int64(len(data))

	if format == "zip" {
		entryName, entrySize, err := firstSupportedEntry(data)
		if err != nil {
			return nil, err
		}
		fileName = entryName
		format = formatOf(entryName)
		size = entrySize
	}

	divisor, ok := bytesPerChar[format]
	if !ok {
		return nil, fmt.Errorf("unsupported file format %q", format)
	}

	chars := int64(math.Round(float64(size) / divisor))
	images := 0
	if mayEmbedImages[format] {
		images = int(size / bytesPerImage)
		if images > maxImageGuess {
			images = maxImageGuess
		}
	}

	return &Result{
		FileName:   fileName,
		Format:     format,
		SizeBytes:  size,
		CharCount:  chars,
		WordCount:  chars / charsPerWord,
		ImageCount: images,
	}, nil
}

// firstSupportedEntry scans a ZIP archive for the first entry whose
// extension is analyzable and returns its name and uncompressed size.
func firstSupportedEntry(data []byte) (string, int64, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("read zip archive: %w", err)
	}
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if Supported(formatOf(f.Name)) {
			if f.UncompressedSize64 > maxEntrySize {
				return "", 0, fmt.Errorf("zip entry %s declares an implausible size", f.Name)
			}
			return filepath.Base(f.Name), int64(f.UncompressedSize64), nil
		}
	}
	return "", 0, fmt.Errorf("zip archive contains no supported documents")
}

func formatOf(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}
