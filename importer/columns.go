package importer

import (
	"strings"

	"gokwh/profile"
)

// Columns is the outcome of header classification: which column carries the
// date, the optional separate time-of-day, and the reading value, plus the
// unit the value column appears to hold.
type Columns struct {
	Date  int
	Time  int // -1 when absent
	Value int
	Unit  profile.Unit
}

const sampleRowLimit = 20

var dateColumnKeywords = []string{"date", "rdate", "datetime", "timestamp", "datum"}
var timeColumnKeywords = []string{"time", "rtime", "hour"}

// classifyColumns picks date/time/value columns from the header row, using
// up to 20 sample data rows to break what keywords alone cannot: a "Time"
// column that actually carries full timestamps, and value columns that are
// only recognizable by being numeric.
func classifyColumns(header []string, samples [][]string) (Columns, error) {
	cols := Columns{Date: -1, Time: -1, Value: -1}

	for i, cell := range header {
		normalized := normalizeHeader(cell)
		if cols.Date < 0 && matchesAny(normalized, dateColumnKeywords) {
			cols.Date = i
			continue
		}
		if matchesAny(normalized, timeColumnKeywords) {
			// Promote a time-named column holding full date+time strings.
			if cols.Date < 0 && samplesAreFullTimestamps(samples, i) {
				cols.Date = i
				continue
			}
			if cols.Time < 0 && i != cols.Date {
				cols.Time = i
			}
		}
	}

	if cols.Date < 0 {
		return cols, &ColumnNotFoundError{Kind: "date", Header: header}
	}

	bestScore := 0
	for i, cell := range header {
		if i == cols.Date || i == cols.Time {
			continue
		}
		score, unit := scoreValueHeader(cell)
		if score > 0 && mostSamplesNumeric(samples, i) {
			score += numericBonus
		}
		if score > bestScore {
			bestScore = score
			cols.Value = i
			cols.Unit = unit
		}
	}

	if cols.Value < 0 {
		// Keyword scoring failed; fall back to the first fully numeric column.
		for i := range header {
			if i == cols.Date || i == cols.Time {
				continue
			}
			if allSamplesNumeric(samples, i) {
				cols.Value = i
				cols.Unit = profile.UnitEnergy
				break
			}
		}
	}

	if cols.Value < 0 {
		return cols, &ColumnNotFoundError{Kind: "value", Header: header}
	}

	return cols, nil
}

const numericBonus = 25

// scoreValueHeader is a pure keyword score for one header cell: exact kwh
// beats embedded kwh beats energy/power words beats generic value/reading.
// The unit rides along with the keyword that matched.
func scoreValueHeader(cell string) (int, profile.Unit) {
	normalized := normalizeHeader(cell)
	switch {
	case normalized == "kwh":
		return 100, profile.UnitEnergy
	case strings.Contains(normalized, "kwh"):
		return 90, profile.UnitEnergy
	case normalized == "kw":
		return 85, profile.UnitPower
	case strings.Contains(normalized, "energy"), strings.Contains(normalized, "consumption"):
		return 70, profile.UnitEnergy
	case strings.Contains(normalized, "demand"), strings.Contains(normalized, "power"):
		return 65, profile.UnitPower
	case strings.Contains(normalized, "kw"):
		return 60, profile.UnitPower
	case strings.Contains(normalized, "value"), strings.Contains(normalized, "reading"):
		return 30, profile.UnitEnergy
	default:
		return 0, profile.UnitEnergy
	}
}

func matchesAny(normalized string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}

func samplesAreFullTimestamps(samples [][]string, column int) bool {
	checked := 0
	for _, row := range samples {
		if column >= len(row) || strings.TrimSpace(row[column]) == "" {
			continue
		}
		if _, ok := ParseTimestamp(row[column], "", true); !ok {
			return false
		}
		checked++
	}
	return checked > 0
}

// mostSamplesNumeric reports whether at least 80% of the non-empty sample
// values in the column parse as finite numbers.
func mostSamplesNumeric(samples [][]string, column int) bool {
	total, numeric := countNumericSamples(samples, column)
	if total == 0 {
		return false
	}
	return float64(numeric)/float64(total) >= 0.8
}

func allSamplesNumeric(samples [][]string, column int) bool {
	total, numeric := countNumericSamples(samples, column)
	return total > 0 && numeric == total
}

func countNumericSamples(samples [][]string, column int) (total, numeric int) {
	for _, row := range samples {
		if column >= len(row) || strings.TrimSpace(row[column]) == "" {
			continue
		}
		total++
		if _, err := parseValue(row[column]); err == nil {
			numeric++
		}
	}
	return total, numeric
}
