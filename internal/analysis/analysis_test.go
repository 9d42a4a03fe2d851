package analysis

import (
	"archive/zip"
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestAnalyzePlainText(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 1100)
	res, err := Analyze("notes.txt", data)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if res.Format != "txt" {
		t.Fatalf("Format = %q, want txt", res.Format)
	}
	if res.SizeBytes != 1100 {
		t.Fatalf("SizeBytes = %d, want 1100", res.SizeBytes)
	}
	if res.CharCount != 1000 {
		t.Fatalf("CharCount = %d, want 1000", res.CharCount)
	}
	if res.WordCount != 200 {
		t.Fatalf("WordCount = %d, want 200", res.WordCount)
	}
	if res.ImageCount != 0 {
		t.Fatalf("ImageCount = %d, want 0 for text formats", res.ImageCount)
	}
}

func TestAnalyzeBinaryFormatGuessesImages(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 400*1024)
	res, err := Analyze("contract.docx", data)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if res.ImageCount != 2 {
		t.Fatalf("ImageCount = %d, want 2", res.ImageCount)
	}
	if res.CharCount <= 0 {
		t.Fatalf("CharCount = %d, want > 0", res.CharCount)
	}
}

func TestAnalyzeImageGuessCapped(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 10*1024*1024)
	res, err := Analyze("deck.pptx", data)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if res.ImageCount != 20 {
		t.Fatalf("ImageCount = %d, want cap of 20", res.ImageCount)
	}
}

func TestAnalyzeUnsupportedFormat(t *testing.T) {
	if _, err := Analyze("movie.mp4", []byte("data")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := Analyze("noextension", []byte("data")); err == nil {
		t.Fatalf("expected error for missing extension")
	}
}

func TestAnalyzeZipSubstitutesFirstSupportedEntry(t *testing.T) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, entry := range []struct{ name, body string }{
		{"preview.png", "binaryimagedata"},
		{"docs/chapter-one.txt", strings.Repeat("b", 2200)},
		{"docs/chapter-two.txt", "short"},
	} {
		w, err := zw.Create(entry.name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(entry.body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	res, err := Analyze("bundle.zip", buf.Bytes())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if res.FileName != "chapter-one.txt" {
		t.Fatalf("FileName = %q, want chapter-one.txt", res.FileName)
	}
	if res.Format != "txt" {
		t.Fatalf("Format = %q, want txt", res.Format)
	}
	if res.SizeBytes != 2200 {
		t.Fatalf("SizeBytes = %d, want uncompressed 2200", res.SizeBytes)
	}
	if res.CharCount != 2000 {
		t.Fatalf("CharCount = %d, want 2000", res.CharCount)
	}
}

func TestAnalyzeZipWithoutSupportedEntries(t *testing.T) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	w, _ := zw.Create("photo.jpg")
	_, _ = w.Write([]byte("jpegdata"))
	_ = zw.Close()

	if _, err := Analyze("images.zip", buf.Bytes()); err == nil {
		t.Fatalf("expected error for archive without supported documents")
	}
}

func TestAnalyzeZipRejectsForgedEntrySize(t *testing.T) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	// CreateRaw trusts the header, so the central directory can claim any
	// uncompressed size regardless of the bytes actually stored.
	w, err := zw.CreateRaw(&zip.FileHeader{
		Name:               "huge.txt",
		Method:             zip.Store,
		CompressedSize64:   4,
		UncompressedSize64: math.MaxUint64,
	})
	if err != nil {
		t.Fatalf("zip create raw: %v", err)
	}
	if _, err := w.Write([]byte("tiny")); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	if _, err := Analyze("bundle.zip", buf.Bytes()); err == nil {
		t.Fatalf("expected error for forged entry size")
	}
}

func TestAnalyzeCorruptZip(t *testing.T) {
	if _, err := Analyze("broken.zip", []byte("not a zip")); err == nil {
		t.Fatalf("expected error for corrupt archive")
	}
}
