package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/barekit/cohort/pkg/chunker"
	"github.com/barekit/cohort/pkg/index"
)

type point struct {
	text   string
	vector []float32
}

// InMemory implements index.Index with brute-force cosine similarity.
// Unlike the remote backends it is immediately consistent; it is meant
// for local development and tests.
type InMemory struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]point
}

// New creates a new InMemory index.
func New() *InMemory {
	return &InMemory{
		namespaces: make(map[string]map[string]point),
	}
}

func (m *InMemory) Status(ctx context.Context, namespace string) (index.Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ns, ok := m.namespaces[namespace]
	if !ok {
		return index.Status{}, nil
	}
	return index.Status{Exists: true, VectorCount: uint64(len(ns))}, nil
}

func (m *InMemory) Upsert(ctx context.Context, namespace string, chunks []chunker.Chunk, vectors [][]float32) error {
	if len(vectors) != len(chunks) {
		return fmt.Errorf("number of vectors and chunks must match")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.namespaces[namespace]
	if !ok {
		ns = make(map[string]point)
		m.namespaces[namespace] = ns
	}

	for i, chunk := range chunks {
		// Keyed by chunk id: duplicate ids overwrite.
		ns[chunk.ID()] = point{text: chunk.Text, vector: vectors[i]}
	}
	return nil
}

func (m *InMemory) Query(ctx context.Context, namespace string, vector []float32, limit int) ([]index.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ns := m.namespaces[namespace]
	matches := make([]index.Match, 0, len(ns))
	for _, p := range ns {
		matches = append(matches, index.Match{
			Text:  p.text,
			Score: cosine(vector, p.vector),
		})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}

func cosine(a, b []float32) float32 {
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
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
