package triage

import "strings"

// Similarity score thresholds for LevelFromScore.
const (
	scoreHighFloor   = 0.75
	scoreMediumFloor = 0.60
)

// Keyword groups for LevelFromText, checked in order. Order matters:
// "Contraindicated - major risk" must map to high even though it contains no
// moderate/minor keyword, and a text containing both "major" and "monitor"
// is still high.
var severityKeywords = []struct {
	level    Level
	keywords []string
}{
	{LevelHigh, []string{"high", "contraindicated", "major"}},
	{LevelMedium, []string{"moderate", "monitor"}},
	{LevelLow, []string{"minor", "low"}},
}

// LevelFromText maps a free-text severity vocabulary onto the 3-level
// taxonomy via case-insensitive substring matching. Unrecognized text
// defaults to low; no unmapped value escapes.
func LevelFromText(severity string) Level {
	s := strings.ToLower(severity)
	for _, group := range severityKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(s, kw) {
				return group.level
			}
		}
	}
	return LevelLow
}

// LevelFromScore maps an embedding similarity score in [0,1] onto the
// taxonomy: >= 0.75 high, >= 0.60 medium, otherwise low.
func LevelFromScore(score float64) Level {
	switch {
	case score >= scoreHighFloor:
		return LevelHigh
	case score >= scoreMediumFloor:
		return LevelMedium
	default:
		return LevelLow
	}
}
