package docchat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/barekit/cohort/pkg/answer"
	"github.com/barekit/cohort/pkg/ingest"
)

// Service answers questions about a session's uploaded documents. Each
// question first runs the ingestion pipeline, which is a no-op once the
// session's namespace is populated, then the answering chain.
type Service struct {
	Pipeline *ingest.Pipeline
	Chain    *answer.Chain
	Debug    bool
}

// Option is a function that configures a Service.
type Option func(*Service)

// New creates a new Service.
func New(pipeline *ingest.Pipeline, chain *answer.Chain, opts ...Option) *Service {
	s := &Service{
		Pipeline: pipeline,
		Chain:    chain,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithDebug enables debug logging.
func WithDebug(enable bool) Option {
	return func(s *Service) {
		s.Debug = enable
	}
}

// Ask ingests the session if needed and answers the question.
func (s *Service) Ask(ctx context.Context, sessionID, question string) (*answer.Result, error) {
	result, err := s.Pipeline.Run(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("ingestion failed: %w", err)
	}

	if s.Debug {
		slog.Info("Session ready", "session_id", sessionID, "status", result.Status, "chunks", result.Chunks)
	}

	return s.Chain.Answer(ctx, sessionID, question)
}
