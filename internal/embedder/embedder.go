// Package embedder provides interfaces and implementations for text embedding.
package embedder

import (
	"context"
	"strings"
	"unicode/utf8"
)

// MaxInputChars is the character budget applied to every text before it is
// submitted to the provider. Keeps requests under provider-side size limits.
const MaxInputChars = 8000

// Embedder defines the interface for text embedding services.
type Embedder interface {
	// Embed generates an embedding vector for a single text input.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embedding vectors for multiple text inputs.
	// Returns a slice of embeddings in the same order as the input texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the dimensionality of the embedding vectors.
	Dimension() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}

// NormalizeInput collapses newlines to spaces, trims surrounding whitespace,
// and truncates to MaxInputChars. The budget counts runes so multi-byte text
// is never cut mid-character.
func NormalizeInput(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > MaxInputChars {
		text = string([]rune(text)[:MaxInputChars])
	}
	return text
}
