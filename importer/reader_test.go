package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

func TestReaderForPath(t *testing.T) {
	t.Parallel()

	if _, ok := ReaderForPath("export.xlsx").(*ExcelReader); !ok {
		t.Fatalf("xlsx should use the excel reader")
	}
	if _, ok := ReaderForPath("export.csv").(*TextReader); !ok {
		t.Fatalf("csv should use the text reader")
	}
	if _, ok := ReaderForPath("export.txt").(*TextReader); !ok {
		t.Fatalf("unknown text extensions should use the text reader")
	}
}

func TestTextReaderUTF8(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "export.csv")
	content := "timestamp,kwh\n2024-01-01T00:00,1.5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := (&TextReader{}).Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != content {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestTextReaderUTF16WithBOM(t *testing.T) {
	t.Parallel()

	content := "timestamp\tkwh\n2024-01-01T00:00\t1.5\n"
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := encoder.Bytes([]byte(content))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.tsv")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := (&TextReader{}).Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(got, "timestamp\tkwh") {
		t.Fatalf("UTF-16 content not decoded: %q", got)
	}
}
