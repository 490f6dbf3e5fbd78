package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromText(t *testing.T) {
	tests := []struct {
		severity string
		expected Level
	}{
		{"high", LevelHigh},
		{"Contraindicated - major risk", LevelHigh},
		{"MAJOR", LevelHigh},
		{"moderate", LevelMedium},
		{"Monitor therapy", LevelMedium},
		{"minor", LevelLow},
		{"Low risk", LevelLow},
		{"N/A", LevelLow},
		{"", LevelLow},
		{"unknown vocabulary", LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevelFromText(tt.severity))
		})
	}
}

// A text matching both a high and a medium keyword maps high; groups are
// checked in severity order.
func TestLevelFromTextPrecedence(t *testing.T) {
	assert.Equal(t, LevelHigh, LevelFromText("major interaction, monitor closely"))
}

func TestLevelFromScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected Level
	}{
		{0.80, LevelHigh},
		{0.75, LevelHigh},
		{0.7499, LevelMedium},
		{0.65, LevelMedium},
		{0.60, LevelMedium},
		{0.5999, LevelLow},
		{0.30, LevelLow},
		{0.0, LevelLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LevelFromScore(tt.score), "score %v", tt.score)
	}
}

func TestMaxLevel(t *testing.T) {
	assert.Equal(t, LevelLow, MaxLevel(nil))
	assert.Equal(t, LevelLow, MaxLevel([]Level{}))
	assert.Equal(t, LevelMedium, MaxLevel([]Level{LevelLow, LevelMedium}))
	assert.Equal(t, LevelHigh, MaxLevel([]Level{LevelMedium, LevelHigh, LevelLow}))
}

func TestLevelRankOrder(t *testing.T) {
	assert.Greater(t, LevelHigh.Rank(), LevelMedium.Rank())
	assert.Greater(t, LevelMedium.Rank(), LevelLow.Rank())
	assert.Greater(t, LevelLow.Rank(), Level("bogus").Rank())
}
