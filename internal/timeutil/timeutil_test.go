package timeutil

import "testing"

func TestDateKey(t *testing.T) {
	t.Parallel()

	if got := DateKey(2024, 3, 5); got != "2024-03-05" {
		t.Fatalf("unexpected date key: %s", got)
	}
	if got := MonthKey(2024, 11); got != "2024-11" {
		t.Fatalf("unexpected month key: %s", got)
	}
}

func TestIsWeekend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		year, month, day int
		want             bool
	}{
		{name: "saturday", year: 2024, month: 3, day: 16, want: true},
		{name: "sunday", year: 2024, month: 3, day: 17, want: true},
		{name: "monday", year: 2024, month: 3, day: 18, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsWeekend(tc.year, tc.month, tc.day); got != tc.want {
				t.Fatalf("IsWeekend(%d-%d-%d): want %v, got %v", tc.year, tc.month, tc.day, tc.want, got)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
	}

	for _, tc := range tests {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Fatalf("DaysInMonth(%d, %d): want %d, got %d", tc.year, tc.month, tc.want, got)
		}
	}
}
