package llm

import "context"

// Role represents the role of the message sender (system, user, assistant).
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a prompt.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Provider defines the interface for a generative model. The answering
// chain is single-shot: one prompt in, one message out, no streaming.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (*Message, error)
}
