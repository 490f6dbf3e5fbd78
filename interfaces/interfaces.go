// Package interfaces defines the collaborator contracts consumed by the
// triage pipeline: drug identity resolution, interaction data, label snippets,
// evidence search, and summarization. Concrete implementations live in their
// own packages so the core stays testable without any network access.
package interfaces

import (
	"context"
	"time"
)

// RawInteraction is one pairwise interaction record exactly as an upstream
// provider reports it, before severity mapping or deduplication.
type RawInteraction struct {
	DrugA       string
	DrugB       string
	Severity    string
	Description string
	Source      string
}

// NameResolver maps a free-text drug name to an external canonical identifier.
// A name the provider does not know resolves to the empty string with a nil
// error; a non-nil error means the provider itself was unreachable.
type NameResolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// InteractionProvider returns raw pairwise interaction records for a set of
// canonical identifiers. An empty identifier list must yield an empty slice,
// not an error.
type InteractionProvider interface {
	Interactions(ctx context.Context, ids []string) ([]RawInteraction, error)

	// Name identifies the provider in record sources and fallback labels.
	Name() string
}

// LabelSnippets holds the short label extracts used to enrich interaction
// findings. Empty fields mean the label had no such section.
type LabelSnippets struct {
	Warnings     string `json:"warnings,omitempty"`
	Interactions string `json:"interactions,omitempty"`
	PatientInfo  string `json:"patientInfo,omitempty"`
}

// LabelSource fetches label snippets for a drug name. Returns (nil, nil) when
// no label is found; errors are advisory and callers must degrade gracefully.
type LabelSource interface {
	Snippets(ctx context.Context, drug string) (*LabelSnippets, error)
}

// EvidenceHit is one scored snippet from the evidence corpus.
type EvidenceHit struct {
	Drug    string
	Section string
	Text    string
	Score   float64
}

// EvidenceSearcher performs similarity search over the label-snippet corpus.
type EvidenceSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]EvidenceHit, error)
}

// Embedder turns texts into vectors for the evidence index.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Summarizer produces a best-effort natural-language summary of a triage
// payload. Its absence or failure must never block the triage result.
type Summarizer interface {
	Summarize(ctx context.Context, payload any) (string, error)
}

// PillLookup expands a pill type into its canonical ingredient names and a
// display label. It is static configuration and always succeeds.
type PillLookup interface {
	Ingredients(pillType string) []string
	Label(pillType string) string
}

// IndexStats reports the state of the evidence index for health checks.
type IndexStats struct {
	Snippets int
	BuiltAt  time.Time
	Ready    bool
}

// HealthChecker reports service health for the /health endpoint.
type HealthChecker interface {
	HealthCheck() (status string, data map[string]any, httpStatus int)
}
