package profile

import (
	"sort"

	"gokwh/internal/timeutil"
)

type hourBucket struct {
	sum   float64
	count int
}

func (b hourBucket) average() float64 {
	if b.count == 0 {
		return 0
	}
	return b.sum / float64(b.count)
}

type dayState struct {
	hours       [24]hourBucket
	energyKwh   float64
	peakPower   float64
	peakHour    int
	sampleCount int
}

// Builder accumulates normalized points into daily and monthly profiles.
// It is constructed fresh per file; there is no shared or module-level
// state, so parsing the same content twice yields identical profiles.
type Builder struct {
	unit          Unit
	intervalHours float64
	days          map[string]*dayState
	dayDates      map[string][3]int
}

func NewBuilder(unit Unit, intervalHours float64) *Builder {
	return &Builder{
		unit:          unit,
		intervalHours: intervalHours,
		days:          make(map[string]*dayState),
		dayDates:      make(map[string][3]int),
	}
}

// Add folds one point into the per-day state. The day's peak is tracked
// over running hourly averages rather than instantaneous samples, so a
// single outlier in a well-sampled hour cannot dominate the peak.
func (b *Builder) Add(point Point) {
	key := timeutil.DateKey(point.Year, point.Month, point.Day)
	day, ok := b.days[key]
	if !ok {
		day = &dayState{}
		b.days[key] = day
		b.dayDates[key] = [3]int{point.Year, point.Month, point.Day}
	}

	bucket := &day.hours[point.Hour]
	bucket.sum += point.Value
	bucket.count++
	day.sampleCount++
	day.energyKwh += b.energyContribution(point.Value)

	if avg := bucket.average(); avg > day.peakPower {
		day.peakPower = avg
		day.peakHour = point.Hour
	}
}

func (b *Builder) energyContribution(value float64) float64 {
	if b.unit == UnitPower {
		return value * b.intervalHours
	}
	return value
}

// Build emits days in ascending chronological order (lexicographic on the
// YYYY-MM-DD key) and rolls them up into months, dropping months below the
// coverage floor.
func (b *Builder) Build() *Set {
	keys := make([]string, 0, len(b.days))
	for key := range b.days {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	daily := make([]DailyProfile, 0, len(keys))
	for _, key := range keys {
		state := b.days[key]
		date := b.dayDates[key]

		day := DailyProfile{
			DateKey:        key,
			DayOfWeek:      timeutil.DayOfWeek(date[0], date[1], date[2]),
			IsWeekend:      timeutil.IsWeekend(date[0], date[1], date[2]),
			TotalEnergyKwh: state.energyKwh,
			PeakPower:      state.peakPower,
			PeakHour:       state.peakHour,
			SampleCount:    state.sampleCount,
		}
		for hour := 0; hour < 24; hour++ {
			day.HourlyProfile[hour] = state.hours[hour].average()
		}
		daily = append(daily, day)
	}

	monthly := rollUpMonths(daily)
	return &Set{
		Daily:         daily,
		Monthly:       monthly,
		selectedDay:   clamp(len(daily)-1, len(daily)),
		selectedMonth: clamp(defaultMonthIndex(monthly), len(monthly)),
	}
}

func rollUpMonths(daily []DailyProfile) []MonthlyProfile {
	byMonth := make(map[string]*MonthlyProfile)
	order := make([]string, 0)

	for _, day := range daily {
		key := day.DateKey[:7]
		month, ok := byMonth[key]
		if !ok {
			month = &MonthlyProfile{MonthKey: key}
			byMonth[key] = month
			order = append(order, key)
		}
		month.TotalEnergyKwh += day.TotalEnergyKwh
		month.DistinctDayCount++
		month.SampleCount += day.SampleCount
		if day.PeakPower > month.PeakPower {
			month.PeakPower = day.PeakPower
		}
	}

	months := make([]MonthlyProfile, 0, len(order))
	for _, key := range order {
		month := byMonth[key]
		if month.DistinctDayCount < MinCoveredDays {
			continue
		}
		month.AvgDailyKwh = month.TotalEnergyKwh / float64(month.DistinctDayCount)
		months = append(months, *month)
	}

	return months
}
