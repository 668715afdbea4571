package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSource_ListDocuments(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "s1")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"b.txt":      "second",
		"a.txt":      "first",
		"notes.md":   "third",
		"ignore.pdf": "binary",
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s := New(root)
	docs, err := s.ListDocuments(context.Background(), "s1")
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	// Sorted by file name for a stable order.
	if docs[0].Name != "a.txt" || docs[1].Name != "b.txt" || docs[2].Name != "notes.md" {
		t.Errorf("unexpected order: %s, %s, %s", docs[0].Name, docs[1].Name, docs[2].Name)
	}
	if docs[0].Text != "first" {
		t.Errorf("unexpected text: %q", docs[0].Text)
	}
}

func TestSource_ListDocuments_UnknownSession(t *testing.T) {
	s := New(t.TempDir())
	docs, err := s.ListDocuments(context.Background(), "nope")
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
}
