// Package llm provides interfaces and implementations for chat-completion
// language model clients.
package llm

import (
	"context"
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

// Options configures a completion request.
type Options struct {
	// Model specifies the model to use (e.g., "gpt-4o").
	Model string

	// Temperature controls randomness in generation (0.0 = deterministic).
	Temperature float64

	// MaxTokens limits the maximum number of tokens in the response.
	MaxTokens int

	// TopP sets the nucleus sampling width.
	TopP float64
}

// StreamChunk represents a single chunk of streamed response from the model.
type StreamChunk struct {
	// Token contains the generated text fragment.
	Token string

	// Done indicates whether this is the final chunk in the stream.
	Done bool

	// Error contains any error that occurred during streaming.
	Error error
}

// LLM defines the interface for chat-completion model clients.
type LLM interface {
	// Complete sends the messages to the model and returns the full response.
	// It blocks until the response is received or an error occurs.
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)

	// CompleteStream sends the messages and returns a channel that streams
	// response chunks as they are generated. The channel is closed when
	// generation completes or an error occurs. Callers should check
	// StreamChunk.Error and StreamChunk.Done to detect completion and errors.
	CompleteStream(ctx context.Context, messages []Message, opts Options) (<-chan StreamChunk, error)

	// ModelName returns the default model used by the client.
	ModelName() string
}
