package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gokwh/profile"
)

func dailyRow(day profile.DailyProfile) []string {
	row := []string{
		day.DateKey,
		strconv.Itoa(day.DayOfWeek),
		strconv.FormatBool(day.IsWeekend),
		fmt.Sprintf("%.3f", day.TotalEnergyKwh),
		fmt.Sprintf("%.3f", day.PeakPower),
		strconv.Itoa(day.PeakHour),
		strconv.Itoa(day.SampleCount),
	}
	for _, value := range day.HourlyProfile {
		row = append(row, fmt.Sprintf("%.3f", value))
	}
	return row
}

func dailyHeaders() []string {
	headers := []string{"Date", "DayOfWeek", "IsWeekend", "TotalEnergyKwh", "PeakPower", "PeakHour", "SampleCount"}
	for hour := 0; hour < 24; hour++ {
		headers = append(headers, fmt.Sprintf("H%02d", hour))
	}
	return headers
}

func writeDailyCSV(path string, profiles []profile.DailyProfile) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(dailyHeaders()); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, day := range profiles {
		if err := writer.Write(dailyRow(day)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

func monthlyHeaders() []string {
	return []string{"Month", "TotalEnergyKwh", "DistinctDays", "AvgDailyKwh", "PeakPower", "SampleCount"}
}

func monthlyRow(month profile.MonthlyProfile) []string {
	return []string{
		month.MonthKey,
		fmt.Sprintf("%.3f", month.TotalEnergyKwh),
		strconv.Itoa(month.DistinctDayCount),
		fmt.Sprintf("%.3f", month.AvgDailyKwh),
		fmt.Sprintf("%.3f", month.PeakPower),
		strconv.Itoa(month.SampleCount),
	}
}

func writeMonthlyCSV(path string, profiles []profile.MonthlyProfile) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(monthlyHeaders()); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, month := range profiles {
		if err := writer.Write(monthlyRow(month)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
