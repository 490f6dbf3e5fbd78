package triage

import "strings"

// adviceEntry holds the deterministic guidance text for one rulebook drug.
// Keywords gate inclusion against the reported symptom text.
type adviceEntry struct {
	reason   string
	keywords []string
	tips     []string
}

var adviceBook = map[string]adviceEntry{
	"rifampin": {
		reason:   "Rifampin induces liver enzymes and can lower contraceptive hormone levels.",
		keywords: []string{"spotting", "breakthrough", "bleeding", "breast", "tenderness", "nausea", "headache"},
		tips: []string{
			"Use a backup method (e.g., condoms) while on rifampin; confirm timing with your clinician.",
			"Track unexpected bleeding or cycle changes.",
			"If you miss pills or have GI illness, follow your pill's missed-dose instructions.",
		},
	},
	"topiramate": {
		reason:   "Topiramate can reduce hormone exposure at higher doses and can cause headache or dizziness.",
		keywords: []string{"headache", "dizzy", "dizziness", "fatigue", "nausea", "mood"},
		tips: []string{
			"Hydrate regularly and avoid alcohol when symptomatic.",
			"Taking in the evening may help; confirm dose/timing with your prescriber.",
			"If symptoms persist or dose is 100 mg/day or more, consider backup contraception and consult your clinician.",
		},
	},
	"ferrous sulfate":   ironAdvice(),
	"ferrous gluconate": ironAdvice(),
	"ferrous fumarate":  ironAdvice(),
	"iron":              ironAdvice(),
}

func ironAdvice() adviceEntry {
	return adviceEntry{
		reason:   "Iron salts often cause GI upset and can affect absorption of other medicines.",
		keywords: []string{"nausea", "constipation", "stomach", "cramp", "abdominal", "pain"},
		tips: []string{
			"Take with food if your stomach is upset (unless told otherwise).",
			"Separate iron from other medicines by ~2 hours to reduce absorption issues.",
			"Increase fluids and fiber if constipated.",
		},
	}
}

// BuildSymptomAdvice assembles the deterministic, no-LLM guidance list. An
// entry is included when the medication is in the rulebook with a forced
// level other than low, and either the symptom text matches one of its
// keywords or no symptom text was given (generic guidance mode). Never calls
// the embedding provider.
func BuildSymptomAdvice(symptoms string, meds []string, forced map[string]Level, pillComponents []string) []Advice {
	text := strings.ToLower(symptoms)

	displayed := make([]string, 0, len(pillComponents))
	for _, pc := range pillComponents {
		displayed = append(displayed, Display(pc))
	}
	pill := strings.Join(displayed, " + ")

	var out []Advice
	for _, raw := range meds {
		norm := Normalize(raw)
		level, ok := forced[norm]
		if !ok || level == LevelLow {
			// Low forced levels surface in the interaction list but never
			// attribute symptoms.
			continue
		}
		entry, ok := adviceBook[norm]
		if !ok {
			continue
		}

		// Relaxed gate: when symptoms were given but none of the keywords
		// matched, generic guidance is still shown for high/medium drugs.
		matched := []string{}
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				matched = append(matched, kw)
			}
		}

		out = append(out, Advice{
			Drug:    Display(raw),
			Level:   level,
			Reason:  entry.reason,
			Matches: matched,
			Tips:    entry.tips,
			Pill:    pill,
		})
	}
	return out
}
