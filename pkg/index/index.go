package index

import (
	"context"

	"github.com/barekit/cohort/pkg/chunker"
)

// Status is the externally observable state of a namespace. The backend
// is eventually consistent: a just-completed Upsert is not guaranteed to
// be reflected here yet.
type Status struct {
	Exists      bool   `json:"exists"`
	VectorCount uint64 `json:"vector_count"`
}

// Match is one retrieved chunk with its similarity score.
type Match struct {
	Text  string  `json:"text"`
	Score float32 `json:"score"`
}

// Index is a namespace-scoped vector store. A namespace maps 1:1 to a
// document-chat session.
type Index interface {
	// Status reports whether the namespace exists and how many vectors it holds.
	Status(ctx context.Context, namespace string) (Status, error)
	// Upsert adds chunks and their vectors; duplicate chunk ids overwrite.
	Upsert(ctx context.Context, namespace string, chunks []chunker.Chunk, vectors [][]float32) error
	// Query returns up to limit nearest chunks, descending similarity.
	Query(ctx context.Context, namespace string, vector []float32, limit int) ([]Match, error)
}
