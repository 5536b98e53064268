package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"gokwh/profile"
)

// WriteDailyProfiles writes daily profiles to path, picking the format
// from the explicit format argument or, when empty, the file extension.
func WriteDailyProfiles(path, format string, profiles []profile.DailyProfile) error {
	switch resolveFormat(path, format) {
	case "csv":
		return writeDailyCSV(path, profiles)
	case "excel":
		return writeDailyExcel(path, profiles)
	default:
		return fmt.Errorf("unsupported output format for %s", path)
	}
}

// WriteMonthlyProfiles writes monthly profiles to path.
func WriteMonthlyProfiles(path, format string, profiles []profile.MonthlyProfile) error {
	switch resolveFormat(path, format) {
	case "csv":
		return writeMonthlyCSV(path, profiles)
	case "excel":
		return writeMonthlyExcel(path, profiles)
	default:
		return fmt.Errorf("unsupported output format for %s", path)
	}
}

func resolveFormat(path, format string) string {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == "" {
		normalized = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch normalized {
	case "csv":
		return "csv"
	case "excel", "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return ""
	}
}
