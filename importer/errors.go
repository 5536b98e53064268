package importer

import (
	"fmt"
	"strings"
)

// FormatError means the file's structure could not be inferred at all
// (typically: no header row within the scan window). Fatal for the file,
// never for the batch.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format detection failed: %s", e.Reason)
}

// ColumnNotFoundError names the header row that defeated column
// classification so the operator can see what the file actually looked like.
type ColumnNotFoundError struct {
	Kind   string
	Header []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("no %s column found in header [%s]", e.Kind, strings.Join(e.Header, ", "))
}

// InsufficientDataError is raised for files with too few data rows for
// interval inference and peak detection to mean anything.
type InsufficientDataError struct {
	Rows int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("only %d data rows after header, need at least %d", e.Rows, minDataRows)
}

const minDataRows = 10
