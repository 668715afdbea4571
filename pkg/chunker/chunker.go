package chunker

import (
	"fmt"
	"strings"

	"github.com/barekit/cohort/pkg/document"
)

const (
	// DefaultSize is the target chunk length in runes.
	DefaultSize = 500
	// DefaultOverlap is the number of runes shared with the previous chunk.
	DefaultOverlap = 50
)

// Chunk is a text fragment with provenance. Chunks exist only during
// ingestion; only their embeddings are persisted.
type Chunk struct {
	DocID string `json:"doc_id"`
	Seq   int    `json:"seq"`
	Text  string `json:"text"`
}

// ID returns a stable identifier for the chunk, used as the upsert key
// so re-ingesting the same documents overwrites instead of duplicating.
func (c Chunk) ID() string {
	return fmt.Sprintf("%s:%d", c.DocID, c.Seq)
}

// Chunker splits document text into overlapping fixed-size segments.
// The overlap prevents context loss at a chunk boundary.
type Chunker struct {
	size    int
	overlap int
}

// New creates a new Chunker. Non-positive size falls back to DefaultSize;
// an overlap that is negative or not smaller than size falls back to
// DefaultOverlap.
func New(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultOverlap
		if overlap >= size {
			overlap = size / 10
		}
	}
	return &Chunker{size: size, overlap: overlap}
}

// Split splits a single text into chunks of at most size runes, each
// sharing overlap runes with its predecessor. Whitespace-only input
// yields no chunks.
func (c *Chunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= c.size {
		return []string{text}
	}

	step := c.size - c.overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// SplitDocuments chunks every document in order, preserving provenance.
func (c *Chunker) SplitDocuments(docs []document.Document) []Chunk {
	var chunks []Chunk
	for _, doc := range docs {
		for seq, text := range c.Split(doc.Text) {
			chunks = append(chunks, Chunk{
				DocID: doc.ID,
				Seq:   seq,
				Text:  text,
			})
		}
	}
	return chunks
}
