package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseValue parses a reading value, tolerating decimal commas and
// thousands separators ("1.234,5" and "1234.5" both work). Negative and
// non-finite values are invalid: meter readings are dropped rather than
// clamped when they go negative.
func parseValue(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("empty value")
	}
	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse value %q: %w", raw, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("value %q is not finite", raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("value %q is negative", raw)
	}
	return value, nil
}
