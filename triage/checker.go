package triage

import (
	"context"
	"strings"
	"sync"

	"github.com/pillsync/pillsync-api/interfaces"
	"github.com/pillsync/pillsync-api/logging"
)

// Upper bound on provider descriptions carried into findings.
const maxDescriptionLen = 240

// Checker orchestrates the pipeline: identity resolution, provider query,
// severity mapping, rule overlay, rulebook, merge, and fallback. External
// collaborators are individually fault-isolated; a failing provider degrades
// to rule-and-rulebook-only results instead of failing the request.
type Checker struct {
	resolver   interfaces.NameResolver
	provider   interfaces.InteractionProvider
	labels     interfaces.LabelSource
	evidence   interfaces.EvidenceSearcher
	summarizer interfaces.Summarizer
	pills      interfaces.PillLookup
	workers    int
}

// CheckerOption configures optional collaborators.
type CheckerOption func(*Checker)

// WithLabelSource enables label-snippet enrichment of findings.
func WithLabelSource(labels interfaces.LabelSource) CheckerOption {
	return func(c *Checker) { c.labels = labels }
}

// WithEvidenceSearch enables embedding-based symptom attribution.
func WithEvidenceSearch(evidence interfaces.EvidenceSearcher) CheckerOption {
	return func(c *Checker) { c.evidence = evidence }
}

// WithSummarizer enables the best-effort LLM summary on triage responses.
func WithSummarizer(summarizer interfaces.Summarizer) CheckerOption {
	return func(c *Checker) { c.summarizer = summarizer }
}

// WithResolverWorkers bounds the identity-resolution fan-out.
func WithResolverWorkers(n int) CheckerOption {
	return func(c *Checker) {
		if n > 0 {
			c.workers = n
		}
	}
}

// NewChecker creates a checker over the mandatory collaborators.
func NewChecker(resolver interfaces.NameResolver, provider interfaces.InteractionProvider,
	pills interfaces.PillLookup, opts ...CheckerOption) *Checker {
	c := &Checker{
		resolver: resolver,
		provider: provider,
		pills:    pills,
		workers:  4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs the interaction pipeline for a pill type and medication list.
// It never fails on upstream errors; the deterministic engines guarantee a
// usable result.
func (c *Checker) Check(ctx context.Context, pillType string, meds []string) *CheckResult {
	components := c.pills.Ingredients(pillType)

	meds = cleanNames(meds)
	providerRecords := c.providerRecords(ctx, components, meds)
	overlay := OverlayRules(components, meds)
	rulebook := ApplyRulebook(components, meds)

	combined := make([]Interaction, 0, len(providerRecords)+len(overlay)+len(rulebook.Pairs))
	combined = append(combined, providerRecords...)
	combined = append(combined, overlay...)
	combined = append(combined, rulebook.Pairs...)

	merged, overall := Merge(combined)
	if len(merged) == 0 && len(meds) > 0 {
		merged = SynthesizeFallback(meds, c.pills.Label(pillType), c.provider.Name())
		overall = LevelLow
	}

	return &CheckResult{
		PillType:       pillType,
		PillComponents: components,
		Meds:           meds,
		Interactions:   merged,
		Overall:        overall,
		Sources:        Sources(merged),
	}
}

// Triage runs Check and then the symptom path: label enrichment, embedding
// attribution when available, the deterministic advice list, and a
// best-effort summary. Every enrichment failure is swallowed and logged.
func (c *Checker) Triage(ctx context.Context, pillType string, meds []string, symptoms string) *TriageResult {
	check := c.Check(ctx, pillType, meds)
	symptoms = TruncateSymptoms(strings.TrimSpace(symptoms))

	result := &TriageResult{
		CheckResult: *check,
		Symptoms:    symptoms,
		Attribution: map[string][]Attribution{},
	}

	c.enrichWithLabels(ctx, result.Interactions)

	if c.evidence != nil && symptoms != "" {
		hits, err := c.evidence.Search(ctx, symptoms, evidenceTopK)
		if err != nil {
			logging.Warn("Evidence search failed, attribution degrades to advice only", "error", err)
		} else {
			result.Attribution = AssembleAttribution(hits)
		}
	}

	rulebook := ApplyRulebook(check.PillComponents, check.Meds)
	result.Advice = BuildSymptomAdvice(symptoms, check.Meds, rulebook.ForcedLevels, check.PillComponents)

	result.Summary = c.summarize(ctx, result)
	return result
}

// providerRecords resolves names, queries the interaction provider, maps
// severities, and keeps only the user-relevant pairs where exactly one side
// is a pill component.
func (c *Checker) providerRecords(ctx context.Context, components, meds []string) []Interaction {
	names := dedupeNames(append(append([]string{}, components...), meds...))
	ids := c.resolveAll(ctx, names)
	if len(ids) == 0 {
		return nil
	}

	raw, err := c.provider.Interactions(ctx, ids)
	if err != nil {
		logging.Warn("Interaction provider failed, continuing with rule engines only",
			"provider", c.provider.Name(), "error", err)
		return nil
	}

	return c.filterUserRelevant(raw, components)
}

// resolveAll fans out identity resolution over a bounded worker pool and
// returns the identifiers that resolved, in input order. Unresolved names
// are skipped; they still participate in the name-based engines.
func (c *Checker) resolveAll(ctx context.Context, names []string) []string {
	type slot struct {
		id string
		ok bool
	}
	results := make([]slot, len(names))

	var wg sync.WaitGroup
	sem := make(chan struct{}, c.workers)
	for i, name := range names {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, name string) {
			defer wg.Done()
			defer func() { <-sem }()
			id, err := c.resolver.Resolve(ctx, name)
			if err != nil {
				logging.Warn("Name resolution failed, treating as unresolved", "name", name, "error", err)
				return
			}
			results[i] = slot{id: id, ok: id != ""}
		}(i, name)
	}
	wg.Wait()

	var ids []string
	for _, r := range results {
		if r.ok {
			ids = append(ids, r.id)
		}
	}
	return ids
}

// filterUserRelevant keeps provider pairs where exactly one side matches a
// pill component, orients them as (medication, component), and deduplicates
// near-duplicates by (medication, level) before the merge stage.
func (c *Checker) filterUserRelevant(raw []interfaces.RawInteraction, components []string) []Interaction {
	seen := make(map[string]bool)
	var records []Interaction
	for _, r := range raw {
		aIsPill := matchesComponent(r.DrugA, components)
		bIsPill := matchesComponent(r.DrugB, components)
		if aIsPill == bIsPill {
			continue
		}

		med, pill := r.DrugA, r.DrugB
		if aIsPill {
			med, pill = r.DrugB, r.DrugA
		}

		level := LevelFromText(r.Severity)
		dedupeKey := strings.ToLower(med) + "|" + string(level)
		if seen[dedupeKey] {
			continue
		}
		seen[dedupeKey] = true

		source := r.Source
		if source == "" {
			source = c.provider.Name()
		}
		desc := r.Description
		if len(desc) > maxDescriptionLen {
			desc = desc[:maxDescriptionLen]
		}
		records = append(records, Interaction{
			DrugA:       med,
			DrugB:       pill,
			Level:       level,
			Source:      source,
			Description: desc,
		})
	}
	return records
}

// enrichWithLabels attaches label snippets to findings, best effort.
func (c *Checker) enrichWithLabels(ctx context.Context, records []Interaction) {
	if c.labels == nil {
		return
	}
	for i := range records {
		snippets, err := c.labels.Snippets(ctx, records[i].DrugA)
		if err != nil {
			logging.Debug("Label snippet lookup failed", "drug", records[i].DrugA, "error", err)
			continue
		}
		if snippets != nil {
			records[i].LabelNotes = snippets
		}
	}
}

// summarize asks the LLM summarizer when configured and falls back to the
// deterministic summary on failure or absence.
func (c *Checker) summarize(ctx context.Context, result *TriageResult) string {
	if c.summarizer != nil {
		summary, err := c.summarizer.Summarize(ctx, result)
		if err == nil && summary != "" {
			return summary
		}
		if err != nil {
			logging.Warn("Summarizer failed, using deterministic summary", "error", err)
		}
	}
	return BuildSummary(result)
}

func matchesComponent(drug string, components []string) bool {
	d := strings.ToLower(drug)
	for _, comp := range components {
		if strings.Contains(d, strings.ToLower(comp)) {
			return true
		}
	}
	return false
}

// cleanNames trims entries and drops the ones that normalize to empty.
func cleanNames(names []string) []string {
	out := []string{}
	for _, n := range names {
		if Normalize(n) == "" {
			continue
		}
		out = append(out, strings.TrimSpace(n))
	}
	return out
}

// dedupeNames removes duplicates by normalized form, keeping first spelling.
func dedupeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		norm := Normalize(n)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, n)
	}
	return out
}
