package profile

// Unit describes what a reading's value column carries. Power readings are
// instantaneous kW and must be multiplied by the sampling interval (in
// hours) to yield energy; energy readings are already per-interval kWh.
type Unit int

const (
	UnitEnergy Unit = iota
	UnitPower
)

func (u Unit) String() string {
	if u == UnitPower {
		return "kW"
	}
	return "kWh"
}

// Point is one normalized reading. Transient: produced per row during a
// parse pass and discarded once aggregated.
type Point struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Value  float64
}

// DailyProfile is the per-day rollup. HourlyProfile always has 24 entries,
// zero-filled for hours with no samples; each entry is the hour's average
// reading, not its energy, so summing it does not reproduce TotalEnergyKwh
// for power data.
type DailyProfile struct {
	DateKey        string      `json:"dateKey"`
	DayOfWeek      int         `json:"dayOfWeek"`
	IsWeekend      bool        `json:"isWeekend"`
	TotalEnergyKwh float64     `json:"totalEnergyKwh"`
	PeakPower      float64     `json:"peakPower"`
	PeakHour       int         `json:"peakHour"`
	HourlyProfile  [24]float64 `json:"hourlyProfile"`
	SampleCount    int         `json:"sampleCount"`
}

// MonthlyProfile groups daily profiles by month. Months covering fewer than
// MinCoveredDays distinct days are suppressed from the output entirely.
type MonthlyProfile struct {
	MonthKey         string  `json:"monthKey"`
	TotalEnergyKwh   float64 `json:"totalEnergyKwh"`
	DistinctDayCount int     `json:"distinctDayCount"`
	AvgDailyKwh      float64 `json:"avgDailyKwh"`
	PeakPower        float64 `json:"peakPower"`
	SampleCount      int     `json:"sampleCount"`
}

// MinCoveredDays is the coverage floor below which a partial month is
// considered noise rather than data.
const MinCoveredDays = 5

// fullMonthDays is the coverage used to pick the default selected month.
const fullMonthDays = 20
