package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gokwh/profile"
)

func writeDailyExcel(path string, profiles []profile.DailyProfile) error {
	rows := make([][]string, 0, len(profiles))
	for _, day := range profiles {
		rows = append(rows, dailyRow(day))
	}
	return writeExcelSheet(path, dailyHeaders(), rows)
}

func writeMonthlyExcel(path string, profiles []profile.MonthlyProfile) error {
	rows := make([][]string, 0, len(profiles))
	for _, month := range profiles {
		rows = append(rows, monthlyRow(month))
	}
	return writeExcelSheet(path, monthlyHeaders(), rows)
}

func writeExcelSheet(path string, headers []string, rows [][]string) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
