package importer

// defaultIntervalHours is the 30-minute cadence most SCADA exports use,
// applied when no usable delta exists between parsed timestamps.
const defaultIntervalHours = 0.5

// resolveIntervalHours infers the sampling interval from the first pair of
// chronologically adjacent points on the same day. Non-positive or
// cross-day deltas are skipped; deltas beyond 24h are discarded. Runs once
// per file.
func resolveIntervalHours(instants []Instant) float64 {
	for i := 1; i < len(instants); i++ {
		previous := instants[i-1]
		current := instants[i]
		if previous.Year != current.Year || previous.Month != current.Month || previous.Day != current.Day {
			continue
		}
		delta := current.minutesSinceEpoch() - previous.minutesSinceEpoch()
		if delta <= 0 {
			continue
		}
		hours := float64(delta) / 60
		if hours > 24 {
			continue
		}
		return hours
	}
	return defaultIntervalHours
}
