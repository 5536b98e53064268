package profile

// Set holds the profiles derived from one parse pass, plus day and month
// cursors for the viewer. Navigation clamps at the ends; there is no
// wraparound. The initial day selection is the most recent day, and the
// initial month selection is the most recent month with at least 20
// covered days, falling back to the most recent month overall.
type Set struct {
	Daily   []DailyProfile
	Monthly []MonthlyProfile

	selectedDay   int
	selectedMonth int
}

// NewSet builds a navigable set from already-derived profiles, e.g. ones
// loaded back from the store. Default cursors follow the same rules as a
// freshly built set.
func NewSet(daily []DailyProfile, monthly []MonthlyProfile) *Set {
	return &Set{
		Daily:         daily,
		Monthly:       monthly,
		selectedDay:   clamp(len(daily)-1, len(daily)),
		selectedMonth: clamp(defaultMonthIndex(monthly), len(monthly)),
	}
}

// SelectedDay returns the day under the cursor, or nil for an empty set.
func (s *Set) SelectedDay() *DailyProfile {
	if len(s.Daily) == 0 {
		return nil
	}
	return &s.Daily[s.selectedDay]
}

// SelectDay moves the cursor to the given date key. Returns false and
// leaves the cursor in place if the key is not in the set.
func (s *Set) SelectDay(dateKey string) bool {
	for i := range s.Daily {
		if s.Daily[i].DateKey == dateKey {
			s.selectedDay = i
			return true
		}
	}
	return false
}

// AdvanceDay moves the cursor by delta positions, clamping at both ends.
func (s *Set) AdvanceDay(delta int) {
	s.selectedDay = clamp(s.selectedDay+delta, len(s.Daily))
}

// SelectedMonth returns the month under the cursor, or nil for an empty set.
func (s *Set) SelectedMonth() *MonthlyProfile {
	if len(s.Monthly) == 0 {
		return nil
	}
	return &s.Monthly[s.selectedMonth]
}

func (s *Set) SelectMonth(monthKey string) bool {
	for i := range s.Monthly {
		if s.Monthly[i].MonthKey == monthKey {
			s.selectedMonth = i
			return true
		}
	}
	return false
}

func (s *Set) AdvanceMonth(delta int) {
	s.selectedMonth = clamp(s.selectedMonth+delta, len(s.Monthly))
}

func clamp(index, length int) int {
	if length == 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	return index
}

func defaultMonthIndex(months []MonthlyProfile) int {
	for i := len(months) - 1; i >= 0; i-- {
		if months[i].DistinctDayCount >= fullMonthDays {
			return i
		}
	}
	return len(months) - 1
}
