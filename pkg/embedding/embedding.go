package embedding

import (
	"context"
)

// Embedder turns texts into fixed-dimension vectors. Implementations
// return exactly one vector per input, in input order, and fail as a
// whole: no partial results.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
