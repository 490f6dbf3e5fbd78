package evidence

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/pillsync/pillsync-api/interfaces"
	"github.com/pillsync/pillsync-api/logging"
	"github.com/pillsync/pillsync-api/metrics"
)

// ErrUnavailable is returned by Search when no embedder is configured or the
// index has not been built yet. Callers fall back to the deterministic
// advice path.
var ErrUnavailable = errors.New("evidence index unavailable")

// Hits below this similarity are noise and are dropped.
const similarityFloor = 0.30

type indexedSnippet struct {
	Snippet
	embedding []float32
}

// Index holds the embedded corpus. The snippet slice is replaced atomically
// on rebuild; readers always see either the previous or the new complete
// index.
type Index struct {
	embedder interfaces.Embedder
	entries  atomic.Value // []indexedSnippet
	builtAt  atomic.Value // time.Time
	building atomic.Bool
}

// NewIndex creates an index over the static corpus. The embedder may be nil;
// the index then reports unavailable and Search always errors.
func NewIndex(embedder interfaces.Embedder) *Index {
	ix := &Index{embedder: embedder}
	ix.entries.Store([]indexedSnippet{})
	ix.builtAt.Store(time.Time{})
	return ix
}

// Rebuild embeds the corpus and swaps the new index in. Concurrent rebuilds
// are coalesced: a second caller returns immediately.
func (ix *Index) Rebuild(ctx context.Context) error {
	if ix.embedder == nil {
		return ErrUnavailable
	}
	if !ix.building.CompareAndSwap(false, true) {
		logging.Info("Evidence index rebuild already in progress, skipping")
		return nil
	}
	defer ix.building.Store(false)

	start := time.Now()
	snippets := Corpus()
	texts := make([]string, len(snippets))
	for i, s := range snippets {
		texts[i] = s.Text
	}

	vectors, err := ix.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed corpus: %w", err)
	}
	if len(vectors) != len(snippets) {
		return fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(snippets))
	}

	entries := make([]indexedSnippet, len(snippets))
	for i, s := range snippets {
		entries[i] = indexedSnippet{Snippet: s, embedding: vectors[i]}
	}

	ix.entries.Store(entries)
	ix.builtAt.Store(time.Now())
	metrics.EvidenceIndexSnippets.Set(float64(len(entries)))

	logging.Info("Evidence index rebuilt", "snippets", len(entries), "duration", time.Since(start).String())
	return nil
}

// Search embeds the query and returns the topK most similar snippets above
// the similarity floor, best first.
func (ix *Index) Search(ctx context.Context, query string, topK int) ([]interfaces.EvidenceHit, error) {
	if ix.embedder == nil {
		return nil, ErrUnavailable
	}
	entries, _ := ix.entries.Load().([]indexedSnippet)
	if len(entries) == 0 {
		return nil, ErrUnavailable
	}

	vectors, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}
	queryVec := vectors[0]

	hits := make([]interfaces.EvidenceHit, 0, len(entries))
	for _, entry := range entries {
		score := cosine(queryVec, entry.embedding)
		if score < similarityFloor {
			continue
		}
		hits = append(hits, interfaces.EvidenceHit{
			Drug:    entry.Drug,
			Section: entry.Section,
			Text:    entry.Text,
			Score:   score,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// Stats reports index state for health checks.
func (ix *Index) Stats() interfaces.IndexStats {
	entries, _ := ix.entries.Load().([]indexedSnippet)
	builtAt, _ := ix.builtAt.Load().(time.Time)
	return interfaces.IndexStats{
		Snippets: len(entries),
		BuiltAt:  builtAt,
		Ready:    len(entries) > 0,
	}
}

// Enabled reports whether an embedder is configured at all.
func (ix *Index) Enabled() bool { return ix.embedder != nil }

// cosine computes cosine similarity between two vectors. Mismatched or
// zero-length vectors score 0.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
