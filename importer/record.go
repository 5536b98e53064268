package importer

import "strings"

// RawRow is one tokenized data line plus the raw strings the pipeline cares
// about, pulled out by column index. Ephemeral: built per line and consumed
// immediately by timestamp/value normalization.
type RawRow struct {
	LineNumber int
	RawDate    string
	RawTime    string
	RawValue   string
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
