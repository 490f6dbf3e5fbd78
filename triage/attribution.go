package triage

import (
	"sort"

	"github.com/pillsync/pillsync-api/interfaces"
)

// Caps for the symptom attribution assembler.
const (
	maxSymptomLen      = 800
	attributionPerDrug = 3
	evidenceTopK       = 10
)

// TruncateSymptoms bounds free-text symptom input before it reaches any
// collaborator.
func TruncateSymptoms(symptoms string) string {
	if len(symptoms) > maxSymptomLen {
		return symptoms[:maxSymptomLen]
	}
	return symptoms
}

// AssembleAttribution groups evidence hits by drug, keeps the top entries per
// drug ranked by descending score, and maps each score onto the severity
// taxonomy. Drugs without hits are absent from the map entirely.
func AssembleAttribution(hits []interfaces.EvidenceHit) map[string][]Attribution {
	byDrug := make(map[string][]Attribution)
	for _, hit := range hits {
		byDrug[hit.Drug] = append(byDrug[hit.Drug], Attribution{
			Section: hit.Section,
			Score:   hit.Score,
			Level:   LevelFromScore(hit.Score),
			Text:    hit.Text,
		})
	}

	for drug, items := range byDrug {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Score > items[j].Score
		})
		if len(items) > attributionPerDrug {
			items = items[:attributionPerDrug]
		}
		byDrug[drug] = items
	}
	return byDrug
}
