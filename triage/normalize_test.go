package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims and lowercases", "  Rifampin  ", "rifampin"},
		{"brand alias advil", "Advil", "ibuprofen"},
		{"brand alias motrin", "MOTRIN", "ibuprofen"},
		{"misspelling ibuprofine", "ibuprofine", "ibuprofen"},
		{"alternate spelling rifampicin", "Rifampicin", "rifampin"},
		{"british sulphate", "Ferrous Sulphate", "ferrous sulfate"},
		{"unknown passes through", "warfarin", "warfarin"},
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Advil", "rifampicin", "Ferrous Sulphate", "warfarin", "  Topiramate "}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", in)
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "Ethinyl Estradiol", Display("ethinyl estradiol"))
	assert.Equal(t, "Rifampin", Display("  RIFAMPIN "))
	assert.Equal(t, "", Display("   "))
}
