package timeutil

import (
	"fmt"
	"time"
)

func DateKey(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// DayOfWeek returns 0 (Sunday) through 6 (Saturday).
func DayOfWeek(year, month, day int) int {
	return int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday())
}

func IsWeekend(year, month, day int) bool {
	weekday := DayOfWeek(year, month, day)
	return weekday == 0 || weekday == 6
}

func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
