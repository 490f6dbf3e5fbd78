// Package validation provides request validation for the interaction and
// triage endpoints. Malformed input is rejected here before any engine runs.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pillsync/pillsync-api/pills"
)

// Request limits.
const (
	MaxMeds       = 16
	MaxMedLength  = 80
	MaxSymptomLen = 800
)

// Drug names: letters, digits, spaces, and the punctuation that appears in
// real names ("st. john's wort", "ferrous sulfate", "co-codamol").
var medNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+']+$`)

// ValidationError carries per-field details for the 400 response body.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidatePillType checks the pill type, returning the default combined type
// for empty input and an error for unknown values.
func ValidatePillType(pillType string) (string, error) {
	pillType = strings.ToLower(strings.TrimSpace(pillType))
	if pillType == "" {
		return pills.Combined, nil
	}
	if !pills.KnownType(pillType) {
		return "", &ValidationError{Field: "pillType", Message: fmt.Sprintf("unknown pill type %q", pillType)}
	}
	return pillType, nil
}

// ValidateMeds checks the medication list. The list is capped at MaxMeds
// entries; individual names must be non-empty after trimming and contain
// only expected characters.
func ValidateMeds(meds []string) ([]string, error) {
	if len(meds) > MaxMeds {
		meds = meds[:MaxMeds]
	}

	out := make([]string, 0, len(meds))
	for i, med := range meds {
		med = strings.TrimSpace(med)
		if med == "" {
			continue
		}
		if len(med) > MaxMedLength {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("meds[%d]", i),
				Message: fmt.Sprintf("medication name exceeds %d characters", MaxMedLength),
			}
		}
		if !medNamePattern.MatchString(med) {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("meds[%d]", i),
				Message: "medication name contains unexpected characters",
			}
		}
		out = append(out, med)
	}
	return out, nil
}

// ValidateSymptoms trims and bounds free-text symptom input.
func ValidateSymptoms(symptoms string) string {
	symptoms = strings.TrimSpace(symptoms)
	if len(symptoms) > MaxSymptomLen {
		symptoms = symptoms[:MaxSymptomLen]
	}
	return symptoms
}
