package fuzzy

import (
	"strings"
	"unicode"

	"gokwh/meter"
)

// Normalize lowercases the input, replaces non-alphanumeric runs with a
// single space, and trims. Two names that normalize equal are considered
// the same meter.
func Normalize(input string) string {
	var builder strings.Builder
	builder.Grow(len(input))
	lastSpace := true
	for _, r := range strings.ToLower(input) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			builder.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(builder.String())
}

// Score rates the similarity of two raw names in [0, 100]. It takes the
// better of a token-overlap score and an edit-distance score, both computed
// on normalized forms, so "Main DB Meter 01" still matches
// "main-db-meter-1.csv" reasonably well.
func Score(a, b string) int {
	normA := Normalize(a)
	normB := Normalize(b)
	if normA == "" || normB == "" {
		return 0
	}
	if normA == normB {
		return 100
	}

	overlap := tokenOverlapScore(normA, normB)
	edit := editDistanceScore(normA, normB)
	if overlap > edit {
		return overlap
	}
	return edit
}

// BestMatch returns the highest-scoring identity at or above floor, or nil
// when nothing clears it. The score of the best candidate is returned either
// way so callers can surface near-misses for manual override.
func BestMatch(candidate string, identities []meter.Identity, floor int) (*meter.Identity, int) {
	bestScore := 0
	bestIndex := -1
	for i, identity := range identities {
		name := identity.NormalizedName
		if name == "" {
			name = identity.DisplayName
		}
		score := Score(candidate, name)
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}
	if bestIndex < 0 || bestScore < floor {
		return nil, bestScore
	}
	return &identities[bestIndex], bestScore
}

func tokenOverlapScore(a, b string) int {
	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(tokensA))
	for _, token := range tokensA {
		setA[token] = struct{}{}
	}
	shared := 0
	seen := make(map[string]struct{}, len(tokensB))
	for _, token := range tokensB {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if _, ok := setA[token]; ok {
			shared++
		}
	}

	total := len(setA) + len(seen)
	return int(float64(2*shared) / float64(total) * 100)
}

func editDistanceScore(a, b string) int {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	distance := levenshtein(a, b)
	return int(float64(longest-distance) / float64(longest) * 100)
}

func levenshtein(a, b string) int {
	runesA := []rune(a)
	runesB := []rune(b)

	previous := make([]int, len(runesB)+1)
	current := make([]int, len(runesB)+1)
	for j := range previous {
		previous[j] = j
	}

	for i := 1; i <= len(runesA); i++ {
		current[0] = i
		for j := 1; j <= len(runesB); j++ {
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
			}
			current[j] = minInt(
				previous[j]+1,
				current[j-1]+1,
				previous[j-1]+cost,
			)
		}
		previous, current = current, previous
	}

	return previous[len(runesB)]
}

func minInt(values ...int) int {
	best := values[0]
	for _, value := range values[1:] {
		if value < best {
			best = value
		}
	}
	return best
}
