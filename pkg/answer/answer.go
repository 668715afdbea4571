package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/barekit/cohort/pkg/embedding"
	"github.com/barekit/cohort/pkg/index"
	"github.com/barekit/cohort/pkg/llm"
)

const (
	// DefaultTopK is how many chunks are retrieved per question.
	DefaultTopK = 15

	// systemPrompt keeps the model grounded in the retrieved context.
	systemPrompt = "You are an assistant for question-answering tasks. " +
		"Use the following pieces of retrieved context to answer the question. " +
		"If you don't know the answer, say that you don't know. " +
		"Use three sentences maximum and keep the answer concise."

	// FallbackAnswer is returned when the model produced no answer.
	FallbackAnswer = "I'm sorry, I could not find an answer in the provided documents."
)

// Result is the outcome of answering one question.
type Result struct {
	Text      string `json:"text"`
	Retrieved int    `json:"retrieved"`
}

// Chain answers questions against a session's namespace: embed the
// question, retrieve the nearest chunks, stuff them into a fixed prompt
// and call the model once. Each question is independent; no chat history
// accumulates.
type Chain struct {
	Embedder embedding.Embedder
	Index    index.Index
	LLM      llm.Provider
	TopK     int
	Debug    bool
}

// Option is a function that configures a Chain.
type Option func(*Chain)

// New creates a new Chain.
func New(emb embedding.Embedder, idx index.Index, provider llm.Provider, opts ...Option) *Chain {
	c := &Chain{
		Embedder: emb,
		Index:    idx,
		LLM:      provider,
		TopK:     DefaultTopK,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTopK sets how many chunks are retrieved per question.
func WithTopK(k int) Option {
	return func(c *Chain) {
		c.TopK = k
	}
}

// WithDebug enables debug logging.
func WithDebug(enable bool) Option {
	return func(c *Chain) {
		c.Debug = enable
	}
}

// Answer runs the chain for one question against the session's namespace.
// The session must already be ingested.
func (c *Chain) Answer(ctx context.Context, sessionID, question string) (*Result, error) {
	vectors, err := c.Embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for question")
	}

	matches, err := c.Index.Query(ctx, sessionID, vectors[0], c.TopK)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve context: %w", err)
	}

	if c.Debug {
		slog.Info("Context retrieved", "session_id", sessionID, "matches", len(matches))
	}

	var contextText strings.Builder
	for _, m := range matches {
		contextText.WriteString(m.Text)
		contextText.WriteString("\n\n")
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt + "\n\n" + contextText.String()},
		{Role: llm.RoleUser, Content: question},
	}

	response, err := c.LLM.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	text := ""
	if response != nil {
		text = strings.TrimSpace(response.Content)
	}
	if text == "" {
		// The model gave us nothing usable; degrade instead of failing.
		text = FallbackAnswer
	}

	return &Result{Text: text, Retrieved: len(matches)}, nil
}
