package importer

import (
	"regexp"
	"strconv"
	"strings"

	"gokwh/internal/timeutil"
)

// Instant is a normalized calendar instant. Validated on construction:
// month/day within the Gregorian calendar, hour 0-23, minute 0-59.
type Instant struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
}

func (i Instant) minutesSinceEpoch() int64 {
	days := int64(0)
	for year := 1970; year < i.Year; year++ {
		days += 365
		if isLeapYear(year) {
			days++
		}
	}
	for month := 1; month < i.Month; month++ {
		days += int64(timeutil.DaysInMonth(i.Year, month))
	}
	days += int64(i.Day - 1)
	return days*24*60 + int64(i.Hour)*60 + int64(i.Minute)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// The date grammars are tried in order; the first match wins. Each entry
// pairs a pattern with an extractor so precedence stays explicit and each
// grammar is testable on its own.
type dateGrammar struct {
	pattern *regexp.Regexp
	extract func(m []string, dayFirst bool) (Instant, bool)
}

var dateGrammars = []dateGrammar{
	{
		// ISO 8601 with a T separator.
		pattern: regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{1,2}):(\d{2})(?::\d{2})?`),
		extract: func(m []string, _ bool) (Instant, bool) {
			return makeInstant(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), atoi(m[5]))
		},
	},
	{
		// DD Mon YYYY with optional time, English month names.
		pattern: regexp.MustCompile(`^(\d{1,2})[ -]([A-Za-z]{3})[ -](\d{4})(?:[ ](\d{1,2}):(\d{2})(?::\d{2})?)?$`),
		extract: func(m []string, _ bool) (Instant, bool) {
			month, ok := monthNames[strings.ToLower(m[2])]
			if !ok {
				return Instant{}, false
			}
			return makeInstant(atoi(m[3]), month, atoi(m[1]), atoi(m[4]), atoi(m[5]))
		},
	},
	{
		// Numeric P1-P2-P3 with optional time; - / . separators.
		pattern: regexp.MustCompile(`^(\d{1,4})[-/.](\d{1,2})[-/.](\d{1,4})(?:[ T](\d{1,2}):(\d{2})(?::\d{2})?)?$`),
		extract: extractNumericDate,
	},
}

// extractNumericDate disambiguates the three numeric parts by magnitude:
// P1 > 31 forces YYYY-MM-DD, P3 > 31 forces a trailing year, and a part
// above 12 can only be the day. When both candidates are <= 12 the
// dayFirst setting decides, a documented locale assumption.
func extractNumericDate(m []string, dayFirst bool) (Instant, bool) {
	p1, p2, p3 := atoi(m[1]), atoi(m[2]), atoi(m[3])

	var year, a, b int
	if p1 > 31 {
		// YYYY-MM-DD: no ambiguity.
		return makeInstant(p1, p2, p3, atoi(m[4]), atoi(m[5]))
	}
	year, a, b = p3, p1, p2

	day, month := a, b
	if !dayFirst {
		day, month = b, a
	}
	// A part above 12 can only be the day, whatever the locale says.
	if month > 12 && day <= 12 {
		day, month = month, day
	}

	return makeInstant(year, month, day, atoi(m[4]), atoi(m[5]))
}

var timeOfDayPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?(?:\s*([AaPp])\.?[Mm]\.?)?$`)

// parseTimeOfDay parses HH:mm[:ss] with an optional 12-hour AM/PM suffix.
func parseTimeOfDay(value string) (hour, minute int, ok bool) {
	m := timeOfDayPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return 0, 0, false
	}
	hour = atoi(m[1])
	minute = atoi(m[2])
	if m[3] != "" {
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		hour %= 12
		if m[3] == "P" || m[3] == "p" {
			hour += 12
		}
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// ParseTimestamp normalizes a raw date string, merging a separate raw time
// string when the date carries no time component of its own. Returns false
// for anything no grammar accepts or whose fields are out of range; such
// rows are dropped, not fatal.
func ParseTimestamp(rawDate, rawTime string, dayFirst bool) (Instant, bool) {
	rawDate = strings.TrimSpace(rawDate)
	if rawDate == "" {
		return Instant{}, false
	}

	for _, grammar := range dateGrammars {
		m := grammar.pattern.FindStringSubmatch(rawDate)
		if m == nil {
			continue
		}
		instant, ok := grammar.extract(m, dayFirst)
		if !ok {
			return Instant{}, false
		}
		if instant.Hour == 0 && instant.Minute == 0 && !dateHasTime(m) && rawTime != "" {
			hour, minute, timeOK := parseTimeOfDay(rawTime)
			if timeOK {
				instant.Hour = hour
				instant.Minute = minute
			}
		}
		return instant, true
	}

	return Instant{}, false
}

// dateHasTime reports whether the matched date string included its own
// time component (capture groups 4/5 across all grammars).
func dateHasTime(m []string) bool {
	return len(m) > 5 && m[4] != ""
}

func makeInstant(year, month, day, hour, minute int) (Instant, bool) {
	if year < 1900 || year > 2200 {
		return Instant{}, false
	}
	if month < 1 || month > 12 {
		return Instant{}, false
	}
	if day < 1 || day > timeutil.DaysInMonth(year, month) {
		return Instant{}, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Instant{}, false
	}
	return Instant{Year: year, Month: month, Day: day, Hour: hour, Minute: minute}, true
}

func atoi(value string) int {
	if value == "" {
		return 0
	}
	n, _ := strconv.Atoi(value)
	return n
}
