package triage

import (
	"fmt"
	"strings"
)

// BuildAssistantMessage renders the deterministic interaction-assistant
// answer from a check result. No LLM involved; the frontend shows this when
// the AI explainer is unavailable or not wanted.
func BuildAssistantMessage(check *CheckResult, symptoms string) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Overall interaction level: %s.", strings.ToUpper(string(check.Overall))))

	medsStr := strings.Join(check.Meds, ", ")
	if medsStr == "" {
		medsStr = "none"
	}
	lines = append(lines, fmt.Sprintf("Pill: %s. Other medicines: %s.",
		strings.Join(check.PillComponents, " + "), medsStr))

	if len(check.Interactions) > 0 {
		var pairs []string
		for _, rec := range check.Interactions {
			pairs = append(pairs, fmt.Sprintf("%s vs %s (%s)", rec.DrugA, rec.DrugB, rec.Level))
		}
		lines = append(lines, fmt.Sprintf("Pairs: %s.", strings.Join(pairs, "; ")))
	} else {
		lines = append(lines, "No interactions were returned for the drugs checked.")
	}

	if symptoms != "" {
		lines = append(lines, "Note: symptom analysis is informational only and does not alter the level.")
	}

	sources := strings.Join(check.Sources, ", ")
	if sources == "" {
		sources = "RxNav"
	}
	lines = append(lines, fmt.Sprintf("Sources: %s. Informational only, not medical advice.", sources))

	return strings.Join(lines, " ")
}
