package meter

// Identity is a known meter in the registry. Incoming files are routed to an
// Identity by config rules or fuzzy name matching; the registry owns the
// records, the import pipeline only references them.
type Identity struct {
	ID             int64
	DisplayName    string
	NormalizedName string
	Site           string
}
