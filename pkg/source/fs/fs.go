package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/barekit/cohort/pkg/document"
)

// Source implements source.DocumentSource over a directory tree.
// Each session owns the files under "<root>/<sessionID>/".
type Source struct {
	root string
	exts map[string]struct{}
}

// New creates a new filesystem Source rooted at dir.
func New(dir string) *Source {
	return &Source{
		root: dir,
		exts: map[string]struct{}{".txt": {}, ".md": {}},
	}
}

// ListDocuments reads every text file in the session's directory,
// sorted by file name so the order is stable across calls.
func (s *Source) ListDocuments(ctx context.Context, sessionID string) ([]document.Document, error) {
	dir := filepath.Join(s.root, sessionID)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := s.exts[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	docs := make([]document.Document, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		docs = append(docs, document.Document{
			ID:   sessionID + "/" + name,
			Name: name,
			Text: string(data),
		})
	}

	return docs, nil
}
