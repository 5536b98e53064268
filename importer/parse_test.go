package importer

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
)

func isoDailyCSV() string {
	var builder strings.Builder
	builder.WriteString("timestamp,kwh\n")
	perRow := 100.0 / 48
	for i := 0; i < 48; i++ {
		fmt.Fprintf(&builder, "2024-01-15T%02d:%02d,%v\n", i/2, (i%2)*30, perRow)
	}
	return builder.String()
}

func TestParseISODailyFile(t *testing.T) {
	t.Parallel()

	result, err := NewParser().Parse(isoDailyCSV())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(result.Daily) != 1 {
		t.Fatalf("want 1 daily profile, got %d", len(result.Daily))
	}
	day := result.Daily[0]
	if math.Abs(day.TotalEnergyKwh-100) > 1e-9 {
		t.Fatalf("want 100 kWh, got %f", day.TotalEnergyKwh)
	}
	if day.SampleCount != 48 {
		t.Fatalf("want 48 data points, got %d", day.SampleCount)
	}
	if result.IntervalMinutes != 30 {
		t.Fatalf("want 30-minute interval, got %f", result.IntervalMinutes)
	}
	if result.DateRangeStart != "2024-01-15" || result.DateRangeEnd != "2024-01-15" {
		t.Fatalf("unexpected range: %s .. %s", result.DateRangeStart, result.DateRangeEnd)
	}
	if result.NeedsReview {
		t.Fatalf("clean file must not need review")
	}
}

func TestParseVendorPreamble(t *testing.T) {
	t.Parallel()

	var builder strings.Builder
	builder.WriteString("\"METER-1\",2024-01-01,2024-01-31\n")
	builder.WriteString("rdate,rtime,kwh\n")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&builder, "01/01/2024,%02d:30,1.5\n", i)
	}

	result, err := NewParser().Parse(builder.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.MeterName != "METER-1" {
		t.Fatalf("want meter name from preamble, got %q", result.MeterName)
	}
	if result.Diagnostics.HeaderRowIndex != 1 {
		t.Fatalf("header should be located after preamble, got %d", result.Diagnostics.HeaderRowIndex)
	}
	if result.SampleCount != 12 {
		t.Fatalf("want 12 samples, got %d", result.SampleCount)
	}
}

func TestParsePowerFile(t *testing.T) {
	t.Parallel()

	var builder strings.Builder
	builder.WriteString("Time,kW\n")
	values := []float64{10, 12, 8, 14, 9, 11, 10, 13, 12, 8, 9, 10}
	rawSum := 0.0
	for i, value := range values {
		fmt.Fprintf(&builder, "2024-03-01T%02d:%02d,%g\n", i/4, (i%4)*15, value)
		rawSum += value
	}

	result, err := NewParser().Parse(builder.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.IntervalMinutes != 15 {
		t.Fatalf("want 15-minute interval, got %f", result.IntervalMinutes)
	}
	if result.Diagnostics.Unit != "kW" {
		t.Fatalf("want power unit, got %s", result.Diagnostics.Unit)
	}

	total := 0.0
	for _, day := range result.Daily {
		total += day.TotalEnergyKwh
	}
	want := rawSum * 0.25
	if math.Abs(total-want) > 1e-9 {
		t.Fatalf("power conservation: want %f kWh, got %f", want, total)
	}
}

func TestParseSemicolonDecimalComma(t *testing.T) {
	t.Parallel()

	var builder strings.Builder
	builder.WriteString("Datum;Zeit;kWh\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&builder, "05.03.2024;%02d:00;2,5\n", i)
	}

	result, err := NewParser().Parse(builder.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.SampleCount != 10 {
		t.Fatalf("want 10 samples, got %d", result.SampleCount)
	}
	if math.Abs(result.Daily[0].TotalEnergyKwh-25) > 1e-9 {
		t.Fatalf("want 25 kWh, got %f", result.Daily[0].TotalEnergyKwh)
	}
}

func TestParseDropsBadRowsAndFlagsReview(t *testing.T) {
	t.Parallel()

	var builder strings.Builder
	builder.WriteString("timestamp,kwh\n")
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&builder, "2024-01-15T%02d:00,1\n", i)
	}
	builder.WriteString("not-a-date,1\n")
	builder.WriteString("2024-01-15T09:00,-5\n")
	builder.WriteString("2024-01-15T10:00,abc\n")

	result, err := NewParser().Parse(builder.String())
	if err != nil {
		t.Fatalf("dropped rows must not abort the file: %v", err)
	}
	if result.Diagnostics.RowsDropped != 3 {
		t.Fatalf("want 3 dropped rows, got %d", result.Diagnostics.RowsDropped)
	}
	if !result.NeedsReview {
		t.Fatalf("3/11 dropped should exceed the review threshold")
	}
	if result.SampleCount != 8 {
		t.Fatalf("want 8 valid samples, got %d", result.SampleCount)
	}
}

func TestParseInsufficientData(t *testing.T) {
	t.Parallel()

	content := "timestamp,kwh\n2024-01-01T00:00,1\n2024-01-01T00:30,1\n"
	_, err := NewParser().Parse(content)
	var insufficientErr *InsufficientDataError
	if !errors.As(err, &insufficientErr) {
		t.Fatalf("want InsufficientDataError, got %v", err)
	}
	if insufficientErr.Rows != 2 {
		t.Fatalf("want 2 reported rows, got %d", insufficientErr.Rows)
	}
}

func TestParseIdempotence(t *testing.T) {
	t.Parallel()

	content := isoDailyCSV()
	first, err := NewParser().Parse(content)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := NewParser().Parse(content)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first.Daily, second.Daily) {
		t.Fatalf("daily profiles differ between identical parses")
	}
	if !reflect.DeepEqual(first.Monthly, second.Monthly) {
		t.Fatalf("monthly profiles differ between identical parses")
	}
}
