package chunker

import (
	"strings"
	"testing"

	"github.com/barekit/cohort/pkg/document"
)

func TestChunker_Split_OverlapAndCoverage(t *testing.T) {
	text := strings.Repeat("abcdefghij", 120) // 1200 chars
	c := New(500, 50)

	chunks := c.Split(text)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if len(chunk) == 0 {
			t.Fatalf("chunk %d is empty", i)
		}
		if len(chunk) > 500 {
			t.Errorf("chunk %d exceeds size: %d", i, len(chunk))
		}
	}

	// Neighboring chunks share exactly the overlap at the boundary.
	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-50:]
		curHead := chunks[i][:50]
		if prevTail != curHead {
			t.Errorf("chunks %d and %d do not share 50 chars at the boundary", i-1, i)
		}
	}

	// Concatenating the non-overlapping portions reconstructs the text.
	rebuilt := chunks[0]
	for i := 1; i < len(chunks); i++ {
		rebuilt += chunks[i][50:]
	}
	if rebuilt != text {
		t.Error("chunks do not reconstruct the original text")
	}
}

func TestChunker_Split_ShortText(t *testing.T) {
	c := New(500, 50)
	chunks := c.Split("hello world")
	if len(chunks) != 1 || chunks[0] != "hello world" {
		t.Fatalf("expected one chunk with the full text, got %v", chunks)
	}
}

func TestChunker_Split_EmptyInput(t *testing.T) {
	c := New(500, 50)
	if chunks := c.Split(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(chunks))
	}
	if chunks := c.Split("   \n\t"); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace input, got %d", len(chunks))
	}
}

func TestChunker_Split_Deterministic(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 100)
	c := New(500, 50)

	first := c.Split(text)
	second := c.Split(text)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("chunk %d differs between runs", i)
		}
	}
}

func TestChunker_SplitDocuments_Provenance(t *testing.T) {
	docs := []document.Document{
		{ID: "a", Text: strings.Repeat("x", 600)},
		{ID: "b", Text: "short"},
	}

	c := New(500, 50)
	chunks := c.SplitDocuments(docs)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0].DocID != "a" || chunks[0].Seq != 0 {
		t.Errorf("unexpected provenance for first chunk: %+v", chunks[0])
	}
	if chunks[1].DocID != "a" || chunks[1].Seq != 1 {
		t.Errorf("unexpected provenance for second chunk: %+v", chunks[1])
	}
	if chunks[2].DocID != "b" || chunks[2].Seq != 0 {
		t.Errorf("unexpected provenance for third chunk: %+v", chunks[2])
	}
	if chunks[0].ID() == chunks[1].ID() {
		t.Error("chunk ids must be unique per document sequence")
	}
}

func TestChunker_SplitDocuments_EmptyDocuments(t *testing.T) {
	c := New(500, 50)
	chunks := c.SplitDocuments([]document.Document{{ID: "a", Text: ""}})
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
}
