package triage

import "fmt"

// SynthesizeFallback produces one neutral low-level record per medication so
// the result is never a bare empty list when the user supplied input. Only
// called when the merged set is empty and meds is not. The provider name
// marks provenance, e.g. "RxNav (no pairs)".
func SynthesizeFallback(meds []string, pillLabel, providerName string) []Interaction {
	records := make([]Interaction, 0, len(meds))
	for _, med := range meds {
		records = append(records, Interaction{
			DrugA:  Display(med),
			DrugB:  pillLabel,
			Level:  LevelLow,
			Source: fmt.Sprintf("%s (no pairs)", providerName),
			Description: fmt.Sprintf("%s returned no interacting pairs for %s against %s; treating the combination as low risk.",
				providerName, Display(med), pillLabel),
		})
	}
	return records
}
