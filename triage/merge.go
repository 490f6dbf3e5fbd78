package triage

import "strings"

// pairKey builds the dedupe key for a record. The two names are lowercased
// and sorted so that (X, Pill) and (Pill, X) collapse onto the same pair
// regardless of which side a source reported first.
func pairKey(a, b string) string {
	x, y := strings.ToLower(a), strings.ToLower(b)
	if y < x {
		x, y = y, x
	}
	return x + "|" + y
}

// Merge deduplicates records by drug pair and resolves conflicts by
// precedence: a rulebook record replaces any non-rulebook record for the same
// pair regardless of level; otherwise the higher level wins. Output keeps
// first-insertion order for stable display. The second return value is the
// overall severity: the maximum level across the merged set, low when empty.
func Merge(records []Interaction) ([]Interaction, Level) {
	index := make(map[string]int, len(records))
	merged := make([]Interaction, 0, len(records))

	for _, rec := range records {
		key := pairKey(rec.DrugA, rec.DrugB)
		at, seen := index[key]
		if !seen {
			index[key] = len(merged)
			merged = append(merged, rec)
			continue
		}

		existing := merged[at]
		switch {
		case rec.Source == SourceRulebook && existing.Source != SourceRulebook:
			merged[at] = rec
		case existing.Source == SourceRulebook:
			// Rulebook entries are ground truth; nothing displaces them.
		case rec.Level.Rank() > existing.Level.Rank():
			merged[at] = rec
		}
	}

	overall := LevelLow
	for _, rec := range merged {
		if rec.Level.Rank() > overall.Rank() {
			overall = rec.Level
		}
	}
	return merged, overall
}

// Sources lists the distinct record sources in first-appearance order.
func Sources(records []Interaction) []string {
	seen := make(map[string]bool, len(records))
	out := []string{}
	for _, rec := range records {
		if !seen[rec.Source] {
			seen[rec.Source] = true
			out = append(out, rec.Source)
		}
	}
	return out
}
