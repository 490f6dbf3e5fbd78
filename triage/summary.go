package triage

import (
	"fmt"
	"sort"
	"strings"
)

// BuildSummary renders a deterministic plain-English summary of a triage
// result. Used whenever the LLM summarizer is absent or fails.
func BuildSummary(result *TriageResult) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Overall interaction level: %s.", strings.ToUpper(string(result.Overall))))

	var keyPairs []string
	for _, rec := range result.Interactions {
		if rec.Level == result.Overall && len(keyPairs) < 3 {
			keyPairs = append(keyPairs, fmt.Sprintf("%s vs %s", rec.DrugA, rec.DrugB))
		}
	}
	if len(keyPairs) > 0 {
		lines = append(lines, fmt.Sprintf("Key pairs: %s.", strings.Join(keyPairs, ", ")))
	}

	if len(result.PillComponents) > 0 {
		lines = append(lines, fmt.Sprintf("Pill type: %s (%s).", result.PillType, strings.Join(result.PillComponents, " + ")))
	}
	if len(result.Meds) > 0 {
		lines = append(lines, fmt.Sprintf("Other medicines: %s.", strings.Join(result.Meds, ", ")))
	}
	if result.Symptoms != "" {
		lines = append(lines, fmt.Sprintf("Reported symptoms: %s.", result.Symptoms))
	}

	if links := topAttributionLinks(result.Attribution); len(links) > 0 {
		lines = append(lines, fmt.Sprintf("Likely symptom links: %s.", strings.Join(links, "; ")))
	}

	lines = append(lines, "This information is informational only and not medical advice.")
	return strings.Join(lines, " ")
}

// topAttributionLinks picks the best-scoring snippet per drug and keeps the
// top three drugs overall.
func topAttributionLinks(attribution map[string][]Attribution) []string {
	type link struct {
		drug string
		item Attribution
	}
	var links []link
	for drug, items := range attribution {
		if len(items) > 0 {
			links = append(links, link{drug: drug, item: items[0]})
		}
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].item.Score != links[j].item.Score {
			return links[i].item.Score > links[j].item.Score
		}
		return links[i].drug < links[j].drug
	})
	if len(links) > 3 {
		links = links[:3]
	}

	var out []string
	for _, l := range links {
		out = append(out, fmt.Sprintf("%s (%s, score %.2f)", l.drug, l.item.Section, l.item.Score))
	}
	return out
}
