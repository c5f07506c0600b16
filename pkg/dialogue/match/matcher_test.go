package match

import (
	"context"
	"errors"
	"math"
	"testing"

	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/pkg/embedding"

	"github.com/google/uuid"
)

// fakeEmbedder returns a fixed vector per text, falling back to a default.
type fakeEmbedder struct {
	vectors map[string][]float32
	def     []float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	vec, ok := f.vectors[text]
	if !ok {
		vec = f.def
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: vec},
	}, nil
}

func scheme(title string) *entity.Scheme {
	return &entity.Scheme{Id: uuid.New(), Title: title}
}

func TestMatchSingleSchemeScoreIsCosine(t *testing.T) {
	s := scheme("Housing")
	f := &fakeEmbedder{
		vectors: map[string][]float32{
			"query":          {1, 0},
			s.SummaryText(): {1, 1},
		},
	}
	m := NewMatcher(f, nil)

	scored, err := m.Match(context.Background(), "query", []*entity.Scheme{s})
	if err != nil {
		t.Fatal(err)
	}
	if len(scored) != 1 {
		t.Fatalf("expected 1 scored scheme, got %d", len(scored))
	}

	want := CosineSimilarity([]float32{1, 0}, []float32{1, 1})
	if math.Abs(scored[0].Score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", scored[0].Score, want)
	}
}

func TestMatchOrdersByScoreDescending(t *testing.T) {
	near := scheme("Near")
	far := scheme("Far")
	f := &fakeEmbedder{
		vectors: map[string][]float32{
			"q":                {1, 0},
			near.SummaryText(): {1, 0.1},
			far.SummaryText():  {0, 1},
		},
	}
	m := NewMatcher(f, nil)

	scored, err := m.Match(context.Background(), "q", []*entity.Scheme{far, near})
	if err != nil {
		t.Fatal(err)
	}
	if scored[0].Scheme.Title != "Near" || scored[1].Scheme.Title != "Far" {
		t.Errorf("order = [%s, %s]", scored[0].Scheme.Title, scored[1].Scheme.Title)
	}
}

func TestMatchTiesKeepInsertionOrder(t *testing.T) {
	first := scheme("First")
	second := scheme("Second")
	// identical vectors produce identical scores
	f := &fakeEmbedder{def: []float32{1, 1}, vectors: map[string][]float32{}}
	m := NewMatcher(f, nil)

	scored, err := m.Match(context.Background(), "q", []*entity.Scheme{first, second})
	if err != nil {
		t.Fatal(err)
	}
	if scored[0].Scheme.Title != "First" || scored[1].Scheme.Title != "Second" {
		t.Errorf("tie order = [%s, %s], want insertion order", scored[0].Scheme.Title, scored[1].Scheme.Title)
	}
}

func TestMatchEmptySchemesSkipsProvider(t *testing.T) {
	f := &fakeEmbedder{def: []float32{1}}
	m := NewMatcher(f, nil)

	scored, err := m.Match(context.Background(), "q", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(scored) != 0 {
		t.Errorf("expected empty ranking, got %d", len(scored))
	}
	if f.calls != 0 {
		t.Errorf("provider should not be called for an empty corpus, got %d calls", f.calls)
	}
}

func TestMatchPropagatesProviderFailure(t *testing.T) {
	f := &fakeEmbedder{err: errors.New("boom")}
	m := NewMatcher(f, nil)

	if _, err := m.Match(context.Background(), "q", []*entity.Scheme{scheme("S")}); err == nil {
		t.Error("expected provider failure to propagate")
	}
}

type mapCache struct {
	vectors map[uuid.UUID][]float32
	puts    int
}

func (c *mapCache) Get(ctx context.Context, s *entity.Scheme) ([]float32, bool) {
	v, ok := c.vectors[s.Id]
	return v, ok
}

func (c *mapCache) Put(ctx context.Context, s *entity.Scheme, vec []float32) {
	c.puts++
	c.vectors[s.Id] = vec
}

func TestMatchUsesCacheBeforeProvider(t *testing.T) {
	s := scheme("Cached")
	cache := &mapCache{vectors: map[uuid.UUID][]float32{s.Id: {1, 0}}}
	f := &fakeEmbedder{vectors: map[string][]float32{"q": {1, 0}}}
	m := NewMatcher(f, cache)

	scored, err := m.Match(context.Background(), "q", []*entity.Scheme{s})
	if err != nil {
		t.Fatal(err)
	}
	if f.calls != 1 { // query embedding only
		t.Errorf("expected 1 provider call, got %d", f.calls)
	}
	if math.Abs(scored[0].Score-1) > 1e-6 {
		t.Errorf("cached vector score = %v, want 1", scored[0].Score)
	}
}

func TestMatchFillsCacheOnMiss(t *testing.T) {
	s := scheme("Fresh")
	cache := &mapCache{vectors: map[uuid.UUID][]float32{}}
	f := &fakeEmbedder{def: []float32{1, 0}}
	m := NewMatcher(f, cache)

	if _, err := m.Match(context.Background(), "q", []*entity.Scheme{s}); err != nil {
		t.Fatal(err)
	}
	if cache.puts != 1 {
		t.Errorf("expected one cache put, got %d", cache.puts)
	}
}

type batchMapCache struct {
	mapCache
	batchCalls int
	gets       int
}

func (c *batchMapCache) Get(ctx context.Context, s *entity.Scheme) ([]float32, bool) {
	c.gets++
	return c.mapCache.Get(ctx, s)
}

func (c *batchMapCache) GetBatch(ctx context.Context, schemes []*entity.Scheme) map[uuid.UUID][]float32 {
	c.batchCalls++
	out := make(map[uuid.UUID][]float32, len(schemes))
	for _, s := range schemes {
		if v, ok := c.vectors[s.Id]; ok {
			out[s.Id] = v
		}
	}
	return out
}

func TestMatchPrefetchesBatchInsteadOfPerSchemeReads(t *testing.T) {
	a := scheme("A")
	b := scheme("B")
	cache := &batchMapCache{mapCache: mapCache{vectors: map[uuid.UUID][]float32{
		a.Id: {1, 0},
		b.Id: {0, 1},
	}}}
	f := &fakeEmbedder{vectors: map[string][]float32{"q": {1, 0}}}
	m := NewMatcher(f, cache)

	scored, err := m.Match(context.Background(), "q", []*entity.Scheme{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if cache.batchCalls != 1 {
		t.Errorf("expected one batch read, got %d", cache.batchCalls)
	}
	if cache.gets != 0 {
		t.Errorf("expected no per-scheme reads when batch covers everything, got %d", cache.gets)
	}
	if f.calls != 1 { // query embedding only
		t.Errorf("expected 1 provider call, got %d", f.calls)
	}
	if scored[0].Scheme.Title != "A" {
		t.Errorf("top scheme = %s, want A", scored[0].Scheme.Title)
	}
}

func TestMatchBatchMissFallsBackToProvider(t *testing.T) {
	hit := scheme("Hit")
	miss := scheme("Miss")
	cache := &batchMapCache{mapCache: mapCache{vectors: map[uuid.UUID][]float32{
		hit.Id: {1, 0},
	}}}
	f := &fakeEmbedder{vectors: map[string][]float32{"q": {1, 0}}, def: []float32{0, 1}}
	m := NewMatcher(f, cache)

	if _, err := m.Match(context.Background(), "q", []*entity.Scheme{hit, miss}); err != nil {
		t.Fatal(err)
	}
	if f.calls != 2 { // query plus the uncached scheme
		t.Errorf("expected 2 provider calls, got %d", f.calls)
	}
	if cache.puts != 1 {
		t.Errorf("expected the uncached vector written back, got %d puts", cache.puts)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2}, []float32{1, 2}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1}, []float32{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}
