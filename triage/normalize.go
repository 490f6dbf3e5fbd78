package triage

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// aliases maps brand names, misspellings, and alternate spellings to their
// canonical normalized form. Keys and values are already lowercase.
var aliases = map[string]string{
	"advil":            "ibuprofen",
	"motrin":           "ibuprofen",
	"ibuprofine":       "ibuprofen",
	"rifampicin":       "rifampin",
	"ferrous sulphate": "ferrous sulfate",
}

// Normalize canonicalizes a raw drug name: trim, lowercase, then resolve
// through the alias table. Empty or whitespace input normalizes to the empty
// string; callers filter those out before any lookup. Normalization is
// idempotent.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[s]; ok {
		return canonical
	}
	return s
}

// Display capitalizes each word of a drug name for user-facing records.
func Display(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}
	// cases.Caser carries internal state, so build one per call.
	return cases.Title(language.English).String(s)
}

// lowerSet builds a set of normalized names, dropping empties.
func lowerSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if norm := Normalize(n); norm != "" {
			set[norm] = true
		}
	}
	return set
}
