package ranking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/barekit/cohort/pkg/embedding"
)

// ErrNoCandidates means there was nothing to rank against.
var ErrNoCandidates = errors.New("no candidates to rank")

// DefaultTopK is how many matches a ranking returns by default.
const DefaultTopK = 5

// Match is one ranked candidate: its position in the input slice and its
// cosine similarity to the query.
type Match struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Engine ranks candidate texts against a query text by embedding all of
// them in one batch and comparing cosine similarity. One batch keeps the
// vectors in a consistent space and is the minimum number of provider
// calls.
type Engine struct {
	embedder embedding.Embedder
	topK     int
}

// Option is a function that configures an Engine.
type Option func(*Engine)

// NewEngine creates a new Engine.
func NewEngine(emb embedding.Embedder, opts ...Option) *Engine {
	e := &Engine{
		embedder: emb,
		topK:     DefaultTopK,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// WithTopK sets the default ranking size.
func WithTopK(k int) Option {
	return func(e *Engine) {
		e.topK = k
	}
}

// Rank embeds [query]+candidates in one batch, scores every candidate by
// cosine similarity and returns at most k matches with strictly positive
// scores, descending, ties keeping their input order. A whitespace-only
// query yields an empty ranking without calling the provider: "no good
// match" is a valid outcome, not a fault. k <= 0 falls back to the
// engine's default.
func (e *Engine) Rank(ctx context.Context, query string, candidates []string, k int) ([]Match, error) {
	if strings.TrimSpace(query) == "" {
		return []Match{}, nil
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if k <= 0 {
		k = e.topK
	}

	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, query)
	texts = append(texts, candidates...)

	vectors, err := e.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidates: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	queryVec := vectors[0]
	matches := make([]Match, len(candidates))
	for i := range candidates {
		matches[i] = Match{
			Index: i,
			Score: Cosine(queryVec, vectors[i+1]),
		}
	}

	// Stable: equal scores keep their insertion order.
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	ranked := make([]Match, 0, k)
	for _, m := range matches {
		if m.Score <= 0 {
			break
		}
		ranked = append(ranked, m)
		if len(ranked) == k {
			break
		}
	}
	return ranked, nil
}

// Cosine returns the cosine similarity dot(a,b)/(|a|*|b|), in [-1, 1].
// A zero vector scores 0 against everything.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
