package importer

import (
	"errors"
	"testing"
)

func TestDetectFormatPlainCSV(t *testing.T) {
	t.Parallel()

	lines := nonEmptyLines("timestamp,kwh\n2024-01-01T00:00,1.5\n")
	det, lines, err := detectFormat(lines)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if det.Delimiter != ',' {
		t.Fatalf("want comma delimiter, got %q", det.Delimiter)
	}
	if det.HeaderRowIndex != 0 {
		t.Fatalf("want header at 0, got %d", det.HeaderRowIndex)
	}
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
}

func TestDetectFormatSemicolonAndBlankLines(t *testing.T) {
	t.Parallel()

	lines := nonEmptyLines("\n  \nDate;Time;kWh\n01/02/2024;00:30;2,5\n")
	det, _, err := detectFormat(lines)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if det.Delimiter != ';' {
		t.Fatalf("want semicolon, got %q", det.Delimiter)
	}
	if det.HeaderRowIndex != 0 {
		t.Fatalf("blank lines must be discarded before scanning, header at %d", det.HeaderRowIndex)
	}
}

func TestDetectFormatSepDirective(t *testing.T) {
	t.Parallel()

	lines := nonEmptyLines("sep=;\nDate;kWh\n2024-01-01;1\n")
	det, lines, err := detectFormat(lines)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if det.Delimiter != ';' {
		t.Fatalf("declared delimiter not adopted, got %q", det.Delimiter)
	}
	if lines[det.HeaderRowIndex] != "Date;kWh" {
		t.Fatalf("sep= line must be consumed, header line is %q", lines[det.HeaderRowIndex])
	}
}

func TestDetectFormatVendorPreamble(t *testing.T) {
	t.Parallel()

	content := "\"METER-1\",2024-01-01,2024-01-31\nrdate,rtime,kwh\n01/01/2024,00:30,1.2\n"
	det, _, err := detectFormat(nonEmptyLines(content))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if det.Preamble == nil {
		t.Fatalf("expected preamble metadata")
	}
	if det.Preamble.MeterName != "METER-1" {
		t.Fatalf("unexpected meter name: %s", det.Preamble.MeterName)
	}
	if det.Preamble.RangeStart != "2024-01-01" || det.Preamble.RangeEnd != "2024-01-31" {
		t.Fatalf("unexpected range: %s .. %s", det.Preamble.RangeStart, det.Preamble.RangeEnd)
	}
	if det.HeaderRowIndex != 1 {
		t.Fatalf("header should be located after preamble, got %d", det.HeaderRowIndex)
	}
}

func TestDetectFormatTabDelimiter(t *testing.T) {
	t.Parallel()

	lines := nonEmptyLines("Timestamp\tkW\n2024-01-01T00:00\t10\n")
	det, _, err := detectFormat(lines)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if det.Delimiter != '\t' {
		t.Fatalf("want tab delimiter, got %q", det.Delimiter)
	}
}

func TestDetectFormatNoHeader(t *testing.T) {
	t.Parallel()

	_, _, err := detectFormat(nonEmptyLines("1,2,3\n4,5,6\n"))
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("want FormatError, got %v", err)
	}
}

func TestDetectFormatHeaderBeyondWindow(t *testing.T) {
	t.Parallel()

	content := ""
	for i := 0; i < 11; i++ {
		content += "noise,noise\n"
	}
	content += "timestamp,kwh\n"

	_, _, err := detectFormat(nonEmptyLines(content))
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("header outside the 10-line window must fail, got %v", err)
	}
}
