package source

import (
	"context"

	"github.com/barekit/cohort/pkg/document"
)

// DocumentSource lists the documents owned by a session. The result must
// be stable for the duration of one ingestion call.
type DocumentSource interface {
	ListDocuments(ctx context.Context, sessionID string) ([]document.Document, error)
}
