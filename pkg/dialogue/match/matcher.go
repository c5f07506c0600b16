package match

import (
	"context"
	"fmt"
	"math"
	"sort"

	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/pkg/embedding"

	"github.com/google/uuid"
)

// ScoredScheme pairs a scheme with its embedding and similarity to the query.
// Derived per turn, never persisted.
type ScoredScheme struct {
	Scheme *entity.Scheme
	Vector []float32
	Score  float64
}

// VectorCache resolves a scheme's summary vector without calling the
// embedding provider. Implementations hide their own errors: a miss just
// means the provider gets called.
type VectorCache interface {
	Get(ctx context.Context, scheme *entity.Scheme) ([]float32, bool)
	Put(ctx context.Context, scheme *entity.Scheme, vector []float32)
}

// BatchVectorCache is an optional VectorCache extension that resolves vectors
// for a whole scheme set in one round trip. Schemes missing from the result
// fall back to the per-scheme path.
type BatchVectorCache interface {
	GetBatch(ctx context.Context, schemes []*entity.Scheme) map[uuid.UUID][]float32
}

// Matcher ranks schemes against a user query by cosine similarity of
// embeddings.
type Matcher struct {
	provider embedding.EmbeddingProvider
	cache    VectorCache // optional
}

func NewMatcher(provider embedding.EmbeddingProvider, cache VectorCache) *Matcher {
	return &Matcher{
		provider: provider,
		cache:    cache,
	}
}

// Match embeds the query once, resolves each scheme's summary vector
// (cache first), scores by cosine similarity and sorts descending. The sort
// is stable so ties keep their input order. An empty scheme set returns an
// empty ranking without touching the provider.
func (m *Matcher) Match(ctx context.Context, query string, schemes []*entity.Scheme) ([]ScoredScheme, error) {
	if len(schemes) == 0 {
		return []ScoredScheme{}, nil
	}

	queryRes, err := m.provider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVec := queryRes.Embedding.Values

	var prefetched map[uuid.UUID][]float32
	if batch, ok := m.cache.(BatchVectorCache); ok {
		prefetched = batch.GetBatch(ctx, schemes)
	}

	scored := make([]ScoredScheme, 0, len(schemes))
	for _, s := range schemes {
		vec, err := m.schemeVector(ctx, s, prefetched)
		if err != nil {
			return nil, fmt.Errorf("embed scheme %s: %w", s.Id, err)
		}
		scored = append(scored, ScoredScheme{
			Scheme: s,
			Vector: vec,
			Score:  CosineSimilarity(queryVec, vec),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}

func (m *Matcher) schemeVector(ctx context.Context, s *entity.Scheme, prefetched map[uuid.UUID][]float32) ([]float32, error) {
	if vec, ok := prefetched[s.Id]; ok {
		return vec, nil
	}
	if m.cache != nil {
		if vec, ok := m.cache.Get(ctx, s); ok {
			return vec, nil
		}
	}

	res, err := m.provider.Generate(s.SummaryText(), "RETRIEVAL_DOCUMENT")
	if err != nil {
		return nil, err
	}
	vec := res.Embedding.Values

	if m.cache != nil {
		m.cache.Put(ctx, s, vec)
	}
	return vec, nil
}

// CosineSimilarity computes dot(a,b) / (|a||b|). Zero vectors or mismatched
// lengths score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
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
