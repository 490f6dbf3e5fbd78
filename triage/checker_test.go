package triage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pillsync/pillsync-api/interfaces"
)

type stubResolver struct {
	ids map[string]string
	err error
}

func (s stubResolver) Resolve(_ context.Context, name string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.ids[Normalize(name)], nil
}

type stubProvider struct {
	records []interfaces.RawInteraction
	err     error
}

func (s stubProvider) Interactions(_ context.Context, ids []string) ([]interfaces.RawInteraction, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.records, nil
}

func (s stubProvider) Name() string { return "RxNav" }

type stubPills struct{}

func (stubPills) Ingredients(pillType string) []string {
	if pillType == "progestin_only" {
		return []string{"norethindrone"}
	}
	return []string{"ethinyl estradiol", "levonorgestrel"}
}

func (stubPills) Label(string) string { return "Combined pill" }

type stubEvidence struct {
	hits []interfaces.EvidenceHit
	err  error
}

func (s stubEvidence) Search(_ context.Context, _ string, _ int) ([]interfaces.EvidenceHit, error) {
	return s.hits, s.err
}

type stubSummarizer struct {
	summary string
	err     error
}

func (s stubSummarizer) Summarize(_ context.Context, _ any) (string, error) {
	return s.summary, s.err
}

func resolverForCombined() stubResolver {
	return stubResolver{ids: map[string]string{
		"ethinyl estradiol": "748800",
		"levonorgestrel":    "6373",
		"ibuprofen":         "5640",
		"rifampin":          "9384",
	}}
}

func TestCheckEnzymeInducer(t *testing.T) {
	c := NewChecker(resolverForCombined(), stubProvider{}, stubPills{})

	result := c.Check(context.Background(), "combined", []string{"rifampin"})

	assert.Equal(t, LevelHigh, result.Overall)
	require.Len(t, result.Interactions, 2)
	for _, rec := range result.Interactions {
		assert.Equal(t, "Rifampin", rec.DrugA)
		assert.Equal(t, LevelHigh, rec.Level)
		// rulebook replaces the overlay record for the same pair
		assert.Equal(t, SourceRulebook, rec.Source)
	}
	assert.Equal(t, []string{SourceRulebook}, result.Sources)
}

// A rulebook low beats a provider high for the same pair.
func TestCheckRulebookOverridesProvider(t *testing.T) {
	provider := stubProvider{records: []interfaces.RawInteraction{
		{DrugA: "ibuprofen", DrugB: "ethinyl estradiol", Severity: "major", Description: "d"},
	}}
	c := NewChecker(resolverForCombined(), provider, stubPills{})

	result := c.Check(context.Background(), "combined", []string{"Advil"})

	assert.Equal(t, LevelLow, result.Overall)
	require.Len(t, result.Interactions, 2)
	for _, rec := range result.Interactions {
		assert.Equal(t, LevelLow, rec.Level)
		assert.Equal(t, SourceRulebook, rec.Source)
	}
}

func TestCheckEmptyMeds(t *testing.T) {
	c := NewChecker(resolverForCombined(), stubProvider{}, stubPills{})

	result := c.Check(context.Background(), "combined", nil)

	assert.Equal(t, LevelLow, result.Overall)
	assert.NotNil(t, result.Interactions)
	assert.Empty(t, result.Interactions)
	assert.NotNil(t, result.Sources)
	assert.Empty(t, result.Sources)
	assert.NotNil(t, result.Meds)
	assert.Empty(t, result.Meds)
}

func TestCheckFallbackWhenNothingMatches(t *testing.T) {
	c := NewChecker(stubResolver{}, stubProvider{}, stubPills{})

	result := c.Check(context.Background(), "combined", []string{"metformin"})

	require.Len(t, result.Interactions, 1)
	rec := result.Interactions[0]
	assert.Equal(t, "Metformin", rec.DrugA)
	assert.Equal(t, "Combined pill", rec.DrugB)
	assert.Equal(t, LevelLow, rec.Level)
	assert.Equal(t, "RxNav (no pairs)", rec.Source)
	assert.Equal(t, LevelLow, result.Overall)
	assert.Equal(t, []string{"RxNav (no pairs)"}, result.Sources)
}

// Upstream failures degrade to the deterministic engines, never to an error.
func TestCheckProviderFailureDegrades(t *testing.T) {
	c := NewChecker(resolverForCombined(), stubProvider{err: errors.New("upstream down")}, stubPills{})

	result := c.Check(context.Background(), "combined", []string{"rifampin"})

	assert.Equal(t, LevelHigh, result.Overall)
	assert.NotEmpty(t, result.Interactions)
}

func TestCheckResolverFailureDegrades(t *testing.T) {
	c := NewChecker(stubResolver{err: errors.New("timeout")}, stubProvider{}, stubPills{})

	result := c.Check(context.Background(), "combined", []string{"rifampin"})

	assert.Equal(t, LevelHigh, result.Overall)
}

func TestCheckFiltersPairsNotInvolvingThePill(t *testing.T) {
	provider := stubProvider{records: []interfaces.RawInteraction{
		// neither side is a pill component
		{DrugA: "warfarin", DrugB: "aspirin", Severity: "major"},
		// both sides are pill components
		{DrugA: "ethinyl estradiol", DrugB: "levonorgestrel", Severity: "major"},
		// relevant, reported pill-first: orientation must flip
		{DrugA: "levonorgestrel", DrugB: "ibuprofen", Severity: "moderate", Description: "d"},
	}}
	c := NewChecker(resolverForCombined(), provider, stubPills{})

	result := c.Check(context.Background(), "combined", []string{"warfarin", "aspirin"})

	var fromProvider []Interaction
	for _, rec := range result.Interactions {
		if rec.Source == "RxNav" {
			fromProvider = append(fromProvider, rec)
		}
	}
	require.Len(t, fromProvider, 1)
	assert.Equal(t, "ibuprofen", fromProvider[0].DrugA)
	assert.Equal(t, "levonorgestrel", fromProvider[0].DrugB)
	assert.Equal(t, LevelMedium, fromProvider[0].Level)
}

func TestCheckTruncatesLongDescriptions(t *testing.T) {
	provider := stubProvider{records: []interfaces.RawInteraction{
		{DrugA: "ibuprofen", DrugB: "ethinyl estradiol", Severity: "moderate",
			Description: strings.Repeat("x", maxDescriptionLen+50)},
	}}
	c := NewChecker(resolverForCombined(), provider, stubPills{})

	result := c.Check(context.Background(), "combined", []string{"warfarin"})

	var found bool
	for _, rec := range result.Interactions {
		if rec.Source == "RxNav" {
			found = true
			assert.Len(t, rec.Description, maxDescriptionLen)
		}
	}
	assert.True(t, found)
}

func TestCheckDedupesMeds(t *testing.T) {
	c := NewChecker(stubResolver{}, stubProvider{}, stubPills{})

	result := c.Check(context.Background(), "combined", []string{"metformin", " Metformin ", ""})

	assert.Len(t, result.Meds, 2) // raw list keeps both spellings, empty dropped
	assert.Len(t, result.Interactions, 2)
}

func TestTriageAttributionAndAdvice(t *testing.T) {
	evidence := stubEvidence{hits: []interfaces.EvidenceHit{
		{Drug: "rifampin", Section: "interactions", Text: "breakthrough bleeding", Score: 0.82},
	}}
	c := NewChecker(resolverForCombined(), stubProvider{}, stubPills{},
		WithEvidenceSearch(evidence))

	result := c.Triage(context.Background(), "combined", []string{"rifampin"}, "spotting and nausea")

	require.Contains(t, result.Attribution, "rifampin")
	assert.Equal(t, LevelHigh, result.Attribution["rifampin"][0].Level)

	require.Len(t, result.Advice, 1)
	assert.Equal(t, "Rifampin", result.Advice[0].Drug)
	assert.Contains(t, result.Advice[0].Matches, "spotting")

	assert.NotEmpty(t, result.Summary)
	assert.Contains(t, result.Summary, "HIGH")
}

func TestTriageWithoutSymptoms(t *testing.T) {
	c := NewChecker(resolverForCombined(), stubProvider{}, stubPills{},
		WithEvidenceSearch(stubEvidence{err: errors.New("must not be called")}))

	result := c.Triage(context.Background(), "combined", []string{"rifampin"}, "   ")

	assert.Empty(t, result.Attribution)
	assert.NotNil(t, result.Attribution)
	// generic guidance still appears for rulebook drugs above low
	require.Len(t, result.Advice, 1)
	assert.Empty(t, result.Advice[0].Matches)
}

func TestTriageEvidenceFailureDegrades(t *testing.T) {
	c := NewChecker(resolverForCombined(), stubProvider{}, stubPills{},
		WithEvidenceSearch(stubEvidence{err: errors.New("index not built")}))

	result := c.Triage(context.Background(), "combined", []string{"rifampin"}, "spotting")

	assert.Empty(t, result.Attribution)
	assert.NotEmpty(t, result.Advice)
	assert.NotEmpty(t, result.Summary)
}

func TestTriageSummarizerPreferred(t *testing.T) {
	c := NewChecker(resolverForCombined(), stubProvider{}, stubPills{},
		WithSummarizer(stubSummarizer{summary: "llm summary"}))

	result := c.Triage(context.Background(), "combined", []string{"rifampin"}, "")
	assert.Equal(t, "llm summary", result.Summary)
}

func TestTriageSummarizerFailureFallsBack(t *testing.T) {
	c := NewChecker(resolverForCombined(), stubProvider{}, stubPills{},
		WithSummarizer(stubSummarizer{err: errors.New("rate limited")}))

	result := c.Triage(context.Background(), "combined", []string{"rifampin"}, "")
	assert.Contains(t, result.Summary, "Overall interaction level")
}

func TestBuildAssistantMessage(t *testing.T) {
	c := NewChecker(resolverForCombined(), stubProvider{}, stubPills{})
	check := c.Check(context.Background(), "combined", []string{"rifampin"})

	msg := BuildAssistantMessage(check, "headache")

	assert.Contains(t, msg, "Overall interaction level: HIGH.")
	assert.Contains(t, msg, "Rifampin vs Ethinyl Estradiol")
	assert.Contains(t, msg, "not medical advice")
	assert.Contains(t, msg, "symptom analysis is informational only")
}
