package importer

import (
	"regexp"
	"strings"

	"gokwh/profile"
)

// ParseConfig is the inferred shape of one file. Immutable once computed;
// DateColumn and ValueColumn are always distinct, valid indices into the
// header row.
type ParseConfig struct {
	Delimiter      rune
	QuoteChar      rune
	HeaderRowIndex int
	DateColumn     int
	TimeColumn     int // -1 when no separate time column exists
	ValueColumn    int
	Unit           profile.Unit
	Preamble       *PreambleMeta
}

// PreambleMeta is metadata captured from a vendor preamble ahead of the
// real header, e.g. `"METER-1",2024-01-01,2024-01-31`.
type PreambleMeta struct {
	MeterName  string
	RangeStart string
	RangeEnd   string
}

const headerScanWindow = 10

var headerKeywords = []string{"date", "time", "rdate", "rtime", "kwh", "timestamp", "from"}

var preamblePattern = regexp.MustCompile(`^"([^"]+)"\s*,\s*(\d{4}-\d{2}-\d{2})\s*,\s*(\d{4}-\d{2}-\d{2})\s*$`)

// detection is the raw outcome of scanning a file's opening lines.
type detection struct {
	Delimiter      rune
	HeaderRowIndex int
	Preamble       *PreambleMeta
}

// nonEmptyLines drops pure-whitespace lines. Line splitting tolerates both
// LF and CRLF endings.
func nonEmptyLines(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// detectFormat scans up to the first 10 lines for a header row, capturing a
// vendor preamble and an Excel-style "sep=X" directive along the way. The
// sep= line, when present, both declares the delimiter and is consumed.
func detectFormat(lines []string) (detection, []string, error) {
	result := detection{HeaderRowIndex: -1}

	var declaredDelimiter rune
	if len(lines) > 0 {
		if d, ok := sepDirective(lines[0]); ok {
			declaredDelimiter = d
			lines = lines[1:]
		}
	}

	window := len(lines)
	if window > headerScanWindow {
		window = headerScanWindow
	}

	for i := 0; i < window; i++ {
		if meta := matchPreamble(lines, i); meta != nil {
			result.Preamble = meta
			continue
		}
		if isHeaderLine(lines[i]) {
			result.HeaderRowIndex = i
			break
		}
	}

	if result.HeaderRowIndex < 0 {
		return result, lines, &FormatError{Reason: "no header found"}
	}

	if declaredDelimiter != 0 {
		result.Delimiter = declaredDelimiter
	} else {
		result.Delimiter = inferDelimiter(lines[result.HeaderRowIndex])
	}

	return result, lines, nil
}

func sepDirective(line string) (rune, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) == 5 && strings.HasPrefix(strings.ToLower(trimmed), "sep=") {
		return rune(trimmed[4]), true
	}
	return 0, false
}

// matchPreamble recognizes the two-line vendor preamble: a quoted meter
// name with an ISO date range, immediately followed by a line that looks
// like a real header (both a date-like and an energy-like keyword).
func matchPreamble(lines []string, i int) *PreambleMeta {
	m := preamblePattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil || i+1 >= len(lines) {
		return nil
	}
	next := strings.ToLower(lines[i+1])
	dateLike := strings.Contains(next, "date") || strings.Contains(next, "time")
	energyLike := strings.Contains(next, "kwh") || strings.Contains(next, "kw") || strings.Contains(next, "energy")
	if !dateLike || !energyLike {
		return nil
	}
	return &PreambleMeta{MeterName: m[1], RangeStart: m[2], RangeEnd: m[3]}
}

func isHeaderLine(line string) bool {
	lowered := strings.ToLower(line)
	for _, keyword := range headerKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// inferDelimiter counts candidate delimiters in the header line and picks
// the most frequent; ties resolve to comma.
func inferDelimiter(header string) rune {
	tabs := strings.Count(header, "\t")
	semicolons := strings.Count(header, ";")
	commas := strings.Count(header, ",")

	best := ','
	bestCount := commas
	if semicolons > bestCount {
		best = ';'
		bestCount = semicolons
	}
	if tabs > bestCount {
		best = '\t'
	}
	return best
}
