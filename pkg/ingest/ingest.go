package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/barekit/cohort/pkg/chunker"
	"github.com/barekit/cohort/pkg/embedding"
	"github.com/barekit/cohort/pkg/index"
	"github.com/barekit/cohort/pkg/lock"
	"github.com/barekit/cohort/pkg/source"
)

var (
	// ErrNoDocuments means the session owns nothing to embed.
	ErrNoDocuments = errors.New("no documents found for session")
	// ErrVerifyTimeout means the index never confirmed the upsert within
	// the verification budget. Distinct from ErrNoDocuments on purpose.
	ErrVerifyTimeout = errors.New("timed out waiting for index to confirm vectors")
)

const (
	// DefaultVerifyInterval is the wait between verification polls.
	DefaultVerifyInterval = time.Second
	// DefaultVerifyAttempts bounds the verification loop.
	DefaultVerifyAttempts = 30
)

// StatusKind tells the caller which path the pipeline took.
type StatusKind string

const (
	// StatusAlreadyPopulated means the namespace existed and nothing was done.
	StatusAlreadyPopulated StatusKind = "already_populated"
	// StatusIngested means documents were chunked, embedded and verified.
	StatusIngested StatusKind = "ingested"
)

// Result is the outcome of a pipeline run.
type Result struct {
	Status StatusKind `json:"status"`
	Chunks int        `json:"chunks"`
}

// Pipeline orchestrates ingestion for a session: check the namespace,
// load documents, chunk, embed, upsert, then verify with retry. It holds
// no mutable state between runs; everything it produces lives in the
// remote index.
type Pipeline struct {
	Source   source.DocumentSource
	Chunker  *chunker.Chunker
	Embedder embedding.Embedder
	Index    index.Index
	Locker   lock.SessionLocker

	VerifyInterval time.Duration
	VerifyAttempts int
	Debug          bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// New creates a new Pipeline.
func New(src source.DocumentSource, emb embedding.Embedder, idx index.Index, opts ...Option) *Pipeline {
	p := &Pipeline{
		Source:         src,
		Chunker:        chunker.New(chunker.DefaultSize, chunker.DefaultOverlap),
		Embedder:       emb,
		Index:          idx,
		Locker:         lock.NewKeyedMutex(),
		VerifyInterval: DefaultVerifyInterval,
		VerifyAttempts: DefaultVerifyAttempts,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithChunker sets the chunker.
func WithChunker(c *chunker.Chunker) Option {
	return func(p *Pipeline) {
		p.Chunker = c
	}
}

// WithLocker sets the per-session locker. Use the Redis locker when
// several processes can ingest the same session.
func WithLocker(l lock.SessionLocker) Option {
	return func(p *Pipeline) {
		p.Locker = l
	}
}

// WithVerifyInterval sets the wait between verification polls.
func WithVerifyInterval(d time.Duration) Option {
	return func(p *Pipeline) {
		p.VerifyInterval = d
	}
}

// WithVerifyAttempts sets the verification attempt budget.
func WithVerifyAttempts(n int) Option {
	return func(p *Pipeline) {
		p.VerifyAttempts = n
	}
}

// WithDebug enables debug logging.
func WithDebug(enable bool) Option {
	return func(p *Pipeline) {
		p.Debug = enable
	}
}

// Run ingests the session's documents into its namespace. It is
// idempotent: if the namespace is already populated it does nothing, so
// callers can invoke it on every question. The idempotency check runs
// under a per-session lock so two concurrent first-questions do not both
// ingest.
func (p *Pipeline) Run(ctx context.Context, sessionID string) (*Result, error) {
	release, err := p.Locker.Lock(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	defer release()

	if p.Debug {
		slog.Info("Ingestion started", "session_id", sessionID)
	}

	status, err := p.Index.Status(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check namespace: %w", err)
	}
	if status.Exists {
		if p.Debug {
			slog.Info("Namespace already populated, skipping", "session_id", sessionID, "vector_count", status.VectorCount)
		}
		return &Result{Status: StatusAlreadyPopulated}, nil
	}

	docs, err := p.Source.ListDocuments(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	// One combined chunk set across all of the session's documents.
	chunks := p.Chunker.SplitDocuments(docs)
	if len(chunks) == 0 {
		return nil, ErrNoDocuments
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := p.Embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}

	if err := p.Index.Upsert(ctx, sessionID, chunks, vectors); err != nil {
		return nil, fmt.Errorf("upsert failed: %w", err)
	}

	if p.Debug {
		slog.Info("Upsert complete, verifying", "session_id", sessionID, "chunks", len(chunks))
	}

	if err := p.verify(ctx, sessionID); err != nil {
		return nil, err
	}

	if p.Debug {
		slog.Info("Ingestion complete", "session_id", sessionID, "chunks", len(chunks))
	}
	return &Result{Status: StatusIngested, Chunks: len(chunks)}, nil
}

// verify polls the index until the namespace reports vectors. The index
// is eventually consistent, so the upsert having returned does not mean
// the vectors are visible yet.
func (p *Pipeline) verify(ctx context.Context, sessionID string) error {
	for attempt := 0; attempt < p.VerifyAttempts; attempt++ {
		status, err := p.Index.Status(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to verify namespace: %w", err)
		}
		if status.Exists && status.VectorCount > 0 {
			return nil
		}

		select {
		case <-time.After(p.VerifyInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w: namespace %q after %d attempts", ErrVerifyTimeout, sessionID, p.VerifyAttempts)
}
