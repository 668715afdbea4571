package ingest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/barekit/cohort/pkg/chunker"
	"github.com/barekit/cohort/pkg/document"
	"github.com/barekit/cohort/pkg/index"
)

type fakeSource struct {
	docs map[string][]document.Document
}

func (f *fakeSource) ListDocuments(ctx context.Context, sessionID string) ([]document.Document, error) {
	return f.docs[sessionID], nil
}

type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (f *fakeEmbedder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeIndex simulates an eventually consistent backend: upserted vectors
// become visible to Status only after visibleAfter further polls.
type fakeIndex struct {
	mu           sync.Mutex
	points       map[string]map[string][]float32
	visibleAfter int
	neverVisible bool
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{points: make(map[string]map[string][]float32)}
}

func (f *fakeIndex) Status(ctx context.Context, namespace string) (index.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ns, ok := f.points[namespace]
	if !ok || f.neverVisible {
		return index.Status{}, nil
	}
	if f.visibleAfter > 0 {
		f.visibleAfter--
		return index.Status{}, nil
	}
	return index.Status{Exists: true, VectorCount: uint64(len(ns))}, nil
}

func (f *fakeIndex) Upsert(ctx context.Context, namespace string, chunks []chunker.Chunk, vectors [][]float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ns, ok := f.points[namespace]
	if !ok {
		ns = make(map[string][]float32)
		f.points[namespace] = ns
	}
	for i, c := range chunks {
		ns[c.ID()] = vectors[i]
	}
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, namespace string, vector []float32, limit int) ([]index.Match, error) {
	return nil, nil
}

func (f *fakeIndex) vectorCount(namespace string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.points[namespace])
}

func newTestPipeline(src *fakeSource, emb *fakeEmbedder, idx *fakeIndex) *Pipeline {
	return New(src, emb, idx,
		WithVerifyInterval(time.Millisecond),
		WithVerifyAttempts(5),
	)
}

func sessionDocs(text string) map[string][]document.Document {
	return map[string][]document.Document{
		"s1": {{ID: "d1", Name: "doc.txt", Text: text}},
	}
}

func TestPipeline_Run_Ingests(t *testing.T) {
	src := &fakeSource{docs: sessionDocs(strings.Repeat("x", 1200))}
	emb := &fakeEmbedder{}
	idx := newFakeIndex()

	p := newTestPipeline(src, emb, idx)
	result, err := p.Run(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Status != StatusIngested {
		t.Errorf("expected StatusIngested, got %s", result.Status)
	}
	if result.Chunks != 3 {
		t.Errorf("expected 3 chunks, got %d", result.Chunks)
	}
	if idx.vectorCount("s1") != 3 {
		t.Errorf("expected 3 vectors in index, got %d", idx.vectorCount("s1"))
	}
	if emb.callCount() != 1 {
		t.Errorf("expected one batch embed call, got %d", emb.callCount())
	}
}

func TestPipeline_Run_Idempotent(t *testing.T) {
	src := &fakeSource{docs: sessionDocs(strings.Repeat("x", 1200))}
	emb := &fakeEmbedder{}
	idx := newFakeIndex()

	p := newTestPipeline(src, emb, idx)
	if _, err := p.Run(context.Background(), "s1"); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	countAfterFirst := idx.vectorCount("s1")

	result, err := p.Run(context.Background(), "s1")
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	if result.Status != StatusAlreadyPopulated {
		t.Errorf("expected StatusAlreadyPopulated, got %s", result.Status)
	}
	if idx.vectorCount("s1") != countAfterFirst {
		t.Errorf("vector count grew on second run: %d -> %d", countAfterFirst, idx.vectorCount("s1"))
	}
	if emb.callCount() != 1 {
		t.Errorf("expected no further embed calls, got %d total", emb.callCount())
	}
}

func TestPipeline_Run_NoDocuments(t *testing.T) {
	src := &fakeSource{docs: map[string][]document.Document{}}
	p := newTestPipeline(src, &fakeEmbedder{}, newFakeIndex())

	_, err := p.Run(context.Background(), "missing")
	if !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestPipeline_Run_WhitespaceOnlyDocuments(t *testing.T) {
	src := &fakeSource{docs: sessionDocs("   \n\t  ")}
	p := newTestPipeline(src, &fakeEmbedder{}, newFakeIndex())

	_, err := p.Run(context.Background(), "s1")
	if !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestPipeline_Run_EventuallyConsistentIndex(t *testing.T) {
	src := &fakeSource{docs: sessionDocs("some document text")}
	idx := newFakeIndex()
	idx.visibleAfter = 3 // vectors appear only on the fourth poll

	p := newTestPipeline(src, &fakeEmbedder{}, idx)
	result, err := p.Run(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Status != StatusIngested {
		t.Errorf("expected StatusIngested, got %s", result.Status)
	}
}

func TestPipeline_Run_VerifyTimeout(t *testing.T) {
	src := &fakeSource{docs: sessionDocs("some document text")}
	idx := newFakeIndex()
	idx.neverVisible = true

	p := newTestPipeline(src, &fakeEmbedder{}, idx)
	_, err := p.Run(context.Background(), "s1")
	if !errors.Is(err, ErrVerifyTimeout) {
		t.Fatalf("expected ErrVerifyTimeout, got %v", err)
	}
	if errors.Is(err, ErrNoDocuments) {
		t.Error("timeout must be distinct from the no-documents failure")
	}
}

func TestPipeline_Run_ConcurrentSameSession(t *testing.T) {
	src := &fakeSource{docs: sessionDocs(strings.Repeat("x", 1200))}
	emb := &fakeEmbedder{}
	idx := newFakeIndex()

	p := newTestPipeline(src, emb, idx)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Run(context.Background(), "s1"); err != nil {
				t.Errorf("Run failed: %v", err)
			}
		}()
	}
	wg.Wait()

	// The per-session lock means exactly one caller ingests.
	if emb.callCount() != 1 {
		t.Errorf("expected one embed call across concurrent runs, got %d", emb.callCount())
	}
	if idx.vectorCount("s1") != 3 {
		t.Errorf("expected 3 vectors, got %d", idx.vectorCount("s1"))
	}
}
