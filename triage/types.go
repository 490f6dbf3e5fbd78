// Package triage implements the interaction resolution and triage pipeline:
// drug name normalization, severity mapping, the deterministic rule overlay
// and custom rulebook engines, the merge and ranking engine that combines
// provider records with rule-derived records, the zero-result fallback, and
// symptom attribution. All engines are pure functions over immutable static
// tables and are safe for concurrent use.
package triage

import "github.com/pillsync/pillsync-api/interfaces"

// Level is the fixed 3-level severity taxonomy. Every heterogeneous upstream
// vocabulary maps onto exactly one of these; unknown inputs map to LevelLow.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

var levelRank = map[Level]int{
	LevelLow:    1,
	LevelMedium: 2,
	LevelHigh:   3,
}

// Rank returns the position of the level in the total order low < medium < high.
// Unknown levels rank below low.
func (l Level) Rank() int {
	return levelRank[l]
}

// MaxLevel returns the worst severity across levels, or LevelLow when the
// slice is empty.
func MaxLevel(levels []Level) Level {
	best := LevelLow
	for _, l := range levels {
		if l.Rank() > best.Rank() {
			best = l
		}
	}
	return best
}

// Record sources. Rulebook records outrank every other source during merge.
const (
	SourceRule     = "Rule"
	SourceRulebook = "CustomRule"
)

// Interaction is one interaction finding between two drug names.
type Interaction struct {
	DrugA       string                    `json:"a"`
	DrugB       string                    `json:"b"`
	Level       Level                     `json:"level"`
	Source      string                    `json:"source"`
	Description string                    `json:"desc"`
	LabelNotes  *interfaces.LabelSnippets `json:"labelNotes,omitempty"`
}

// Attribution links a reported symptom to one evidence snippet for a drug.
type Attribution struct {
	Section string  `json:"section"`
	Score   float64 `json:"score"`
	Level   Level   `json:"level"`
	Text    string  `json:"text"`
}

// Advice is one entry of the deterministic, no-LLM symptom guidance list.
type Advice struct {
	Drug    string   `json:"drug"`
	Level   Level    `json:"level"`
	Reason  string   `json:"reason"`
	Matches []string `json:"matches"`
	Tips    []string `json:"tips"`
	Pill    string   `json:"pill"`
}

// CheckResult is the outcome of an interaction check.
type CheckResult struct {
	PillType       string        `json:"pillType"`
	PillComponents []string      `json:"pillComponents"`
	Meds           []string      `json:"meds"`
	Interactions   []Interaction `json:"interactions"`
	Overall        Level         `json:"overall"`
	Sources        []string      `json:"sources"`
}

// TriageResult extends a check result with symptom attribution and advice.
type TriageResult struct {
	CheckResult
	Symptoms    string                   `json:"symptoms"`
	Attribution map[string][]Attribution `json:"attribution"`
	Advice      []Advice                 `json:"advice"`
	Summary     string                   `json:"summary,omitempty"`
}
