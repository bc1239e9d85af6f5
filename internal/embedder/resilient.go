package embedder

import (
	"context"
	"log/slog"
)

// Resilient wraps an Embedder so that provider failures never surface as
// errors. Any failure is logged at warning level and replaced with a zero
// vector of the configured dimensionality. Zero vectors have near-zero
// similarity to everything, so a failed embedding degrades relevance instead
// of aborting the request.
type Resilient struct {
	inner  Embedder
	logger *slog.Logger
}

// NewResilient wraps the given embedder. A nil logger uses slog.Default.
func NewResilient(inner Embedder, logger *slog.Logger) *Resilient {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resilient{inner: inner, logger: logger}
}

// Embed returns the inner embedding, or a zero vector on failure.
func (r *Resilient) Embed(ctx context.Context, text string) ([]float32, error) {
	vector, err := r.inner.Embed(ctx, text)
	if err != nil {
		r.logger.Warn("embedding failed, substituting zero vector",
			"model", r.inner.ModelName(),
			"error", err,
		)
		return r.zeroVector(), nil
	}
	return vector, nil
}

// EmbedBatch returns the inner embeddings, or one zero vector per input on failure.
func (r *Resilient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := r.inner.EmbedBatch(ctx, texts)
	if err != nil {
		r.logger.Warn("batch embedding failed, substituting zero vectors",
			"model", r.inner.ModelName(),
			"count", len(texts),
			"error", err,
		)
		vectors = make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = r.zeroVector()
		}
		return vectors, nil
	}
	return vectors, nil
}

// Dimension returns the dimensionality of the embedding vectors.
func (r *Resilient) Dimension() int {
	return r.inner.Dimension()
}

// ModelName returns the name of the embedding model being used.
func (r *Resilient) ModelName() string {
	return r.inner.ModelName()
}

func (r *Resilient) zeroVector() []float32 {
	return make([]float32, r.inner.Dimension())
}

// Ensure Resilient implements Embedder interface.
var _ Embedder = (*Resilient)(nil)
