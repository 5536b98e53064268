package importer

import (
	"strings"

	"gokwh/profile"
)

// Diagnostics is the structured parse trace returned alongside every
// result, so callers can surface or suppress it without code changes.
type Diagnostics struct {
	Delimiter       string  `json:"delimiter"`
	HeaderRowIndex  int     `json:"headerRowIndex"`
	DateColumn      int     `json:"dateColumn"`
	TimeColumn      int     `json:"timeColumn"`
	ValueColumn     int     `json:"valueColumn"`
	Unit            string  `json:"unit"`
	RowsRead        int     `json:"rowsRead"`
	RowsDropped     int     `json:"rowsDropped"`
	DroppedFraction float64 `json:"droppedFraction"`
}

// Result is the canonical output record consumed by billing and sizing
// collaborators.
type Result struct {
	Daily           []profile.DailyProfile
	Monthly         []profile.MonthlyProfile
	Profiles        *profile.Set
	IntervalMinutes float64
	DateRangeStart  string
	DateRangeEnd    string
	SampleCount     int
	NeedsReview     bool
	MeterName       string
	Diagnostics     Diagnostics
}

// Parser holds the per-deployment knobs. Zero value is not useful; use
// NewParser for the documented defaults.
type Parser struct {
	// DayFirst picks DD/MM over MM/DD for ambiguous numeric dates. The
	// day-first default is a deliberate locale assumption; see config.
	DayFirst bool
	// ReviewThreshold is the dropped-row fraction above which the result
	// is flagged for human review instead of being rejected.
	ReviewThreshold float64
}

func NewParser() Parser {
	return Parser{DayFirst: true, ReviewThreshold: 0.1}
}

// Parse runs the full single-file pipeline: detect structure, classify
// columns, normalize rows, infer the interval, and aggregate. All state is
// local to the call; parsing the same content twice yields identical
// results.
func (p Parser) Parse(content string) (*Result, error) {
	lines := nonEmptyLines(content)

	det, lines, err := detectFormat(lines)
	if err != nil {
		return nil, err
	}

	quote := '"'
	header := SplitLine(lines[det.HeaderRowIndex], det.Delimiter, quote)
	dataLines := lines[det.HeaderRowIndex+1:]
	if len(dataLines) < minDataRows {
		return nil, &InsufficientDataError{Rows: len(dataLines)}
	}

	samples := make([][]string, 0, sampleRowLimit)
	for _, line := range dataLines {
		if len(samples) == sampleRowLimit {
			break
		}
		samples = append(samples, SplitLine(line, det.Delimiter, quote))
	}

	cols, err := classifyColumns(header, samples)
	if err != nil {
		return nil, err
	}

	rows := make([]RawRow, 0, len(dataLines))
	instants := make([]Instant, 0, len(dataLines))
	values := make([]float64, 0, len(dataLines))
	dropped := 0

	for lineIndex, line := range dataLines {
		fields := SplitLine(line, det.Delimiter, quote)
		row := RawRow{
			LineNumber: det.HeaderRowIndex + lineIndex + 2,
			RawDate:    fieldAt(fields, cols.Date),
			RawValue:   fieldAt(fields, cols.Value),
		}
		if cols.Time >= 0 {
			row.RawTime = fieldAt(fields, cols.Time)
		}
		rows = append(rows, row)

		instant, ok := ParseTimestamp(row.RawDate, row.RawTime, p.DayFirst)
		if !ok {
			dropped++
			continue
		}
		value, valueErr := parseValue(row.RawValue)
		if valueErr != nil {
			dropped++
			continue
		}
		instants = append(instants, instant)
		values = append(values, value)
	}

	intervalHours := resolveIntervalHours(instants)

	builder := profile.NewBuilder(cols.Unit, intervalHours)
	for i, instant := range instants {
		builder.Add(profile.Point{
			Year:   instant.Year,
			Month:  instant.Month,
			Day:    instant.Day,
			Hour:   instant.Hour,
			Minute: instant.Minute,
			Value:  values[i],
		})
	}
	set := builder.Build()

	droppedFraction := 0.0
	if len(rows) > 0 {
		droppedFraction = float64(dropped) / float64(len(rows))
	}

	result := &Result{
		Daily:           set.Daily,
		Monthly:         set.Monthly,
		Profiles:        set,
		IntervalMinutes: intervalHours * 60,
		SampleCount:     len(instants),
		NeedsReview:     droppedFraction > p.ReviewThreshold,
		Diagnostics: Diagnostics{
			Delimiter:       string(det.Delimiter),
			HeaderRowIndex:  det.HeaderRowIndex,
			DateColumn:      cols.Date,
			TimeColumn:      cols.Time,
			ValueColumn:     cols.Value,
			Unit:            cols.Unit.String(),
			RowsRead:        len(rows),
			RowsDropped:     dropped,
			DroppedFraction: droppedFraction,
		},
	}
	if len(set.Daily) > 0 {
		result.DateRangeStart = set.Daily[0].DateKey
		result.DateRangeEnd = set.Daily[len(set.Daily)-1].DateKey
	}
	if det.Preamble != nil {
		result.MeterName = det.Preamble.MeterName
		if result.DateRangeStart == "" {
			result.DateRangeStart = det.Preamble.RangeStart
			result.DateRangeEnd = det.Preamble.RangeEnd
		}
	}

	return result, nil
}

func fieldAt(fields []string, index int) string {
	if index < 0 || index >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[index])
}
