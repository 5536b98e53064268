package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Reader turns a file on disk into the raw text the parse pipeline works
// on. The pipeline itself never touches the filesystem.
type Reader interface {
	Read(path string) (string, error)
}

// ReaderForPath picks a reader from the file extension. Anything that is
// not a spreadsheet is treated as text; format detection handles the rest.
func ReaderForPath(path string) Reader {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "xlsx", "xlsm", "xls":
		return &ExcelReader{}
	default:
		return &TextReader{}
	}
}

// TextReader reads a meter export as text. Vendor tools emit UTF-16LE with
// a BOM often enough that decoding is BOM-aware and falls back to UTF-8.
type TextReader struct{}

func (r *TextReader) Read(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open export file %s: %w", path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, err := io.ReadAll(transform.NewReader(file, decoder))
	if err != nil {
		return "", fmt.Errorf("decode export file %s: %w", path, err)
	}

	return string(decoded), nil
}

// ExcelReader flattens the first sheet of a workbook into CSV text so the
// same detection pipeline applies to spreadsheet exports.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) (string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return "", fmt.Errorf("excel file has no sheets: %s", path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return "", fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}

	var builder strings.Builder
	writer := csv.NewWriter(&builder)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("flatten sheet %s: %w", sheetName, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flatten sheet %s: %w", sheetName, err)
	}

	return builder.String(), nil
}
