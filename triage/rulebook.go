package triage

import (
	"fmt"
	"strings"
)

// forcedLevels is the custom rulebook: normalized drug name to forced
// severity. Highest precedence in the merge; a rulebook low still overrides
// a provider high for the same pair. Non-exhaustive on purpose.
var forcedLevels = map[string]Level{
	"rifampin":          LevelHigh,
	"topiramate":        LevelMedium,
	"ibuprofen":         LevelLow,
	"ferrous sulfate":   LevelMedium,
	"ferrous gluconate": LevelMedium,
	"ferrous fumarate":  LevelMedium,
	"iron":              LevelMedium,
}

// RulebookResult carries the forced pair records plus the forced level per
// normalized medication, which the advice builder needs separately.
type RulebookResult struct {
	Pairs        []Interaction
	ForcedLevels map[string]Level
}

// ApplyRulebook emits one forced record per pill component for every
// medication whose normalized form is a rulebook key. Deterministic, no I/O.
func ApplyRulebook(pillComponents, meds []string) RulebookResult {
	result := RulebookResult{ForcedLevels: make(map[string]Level)}

	for _, raw := range meds {
		norm := Normalize(raw)
		level, ok := forcedLevels[norm]
		if !ok {
			continue
		}
		result.ForcedLevels[norm] = level
		for _, pc := range pillComponents {
			result.Pairs = append(result.Pairs, Interaction{
				DrugA:  Display(raw),
				DrugB:  Display(pc),
				Level:  level,
				Source: SourceRulebook,
				Description: fmt.Sprintf("Set by rulebook for demo purposes: %s vs %s is %s.",
					Display(raw), Display(pc), strings.ToUpper(string(level))),
			})
		}
	}
	return result
}
