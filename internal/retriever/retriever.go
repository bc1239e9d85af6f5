package retriever

import (
	"context"
	"log/slog"
	"sync"

	"github.com/medassist/medassist/internal/embedder"
	"github.com/medassist/medassist/internal/vectorstore"
)

// StoreFactory establishes a connection to the configured vector backend.
// The retriever calls it lazily, exactly once.
type StoreFactory func(ctx context.Context) (vectorstore.VectorStore, error)

// Retriever performs vector similarity search over the medical corpus. The
// backend connection is established on first use; if it cannot be reached,
// retrieval degrades to the built-in demonstration corpus so the service
// stays answerable offline.
type Retriever struct {
	embedder embedder.Embedder
	factory  StoreFactory
	logger   *slog.Logger

	initOnce sync.Once
	store    vectorstore.VectorStore
}

// New creates a retriever. The store factory is not invoked until the first
// Retrieve call. A nil logger uses slog.Default.
func New(emb embedder.Embedder, factory StoreFactory, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		embedder: emb,
		factory:  factory,
		logger:   logger,
	}
}

// Retrieve returns up to k documents relevant to the query, ordered by
// descending similarity. Backend failures are absorbed: the caller always
// receives a document list, possibly the fallback corpus.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int, filters map[string]string) []Source {
	r.init(ctx)

	if r.store == nil {
		return r.fallbackSources()
	}

	// Embedding never fails here; the resilient wrapper substitutes a zero
	// vector on provider errors.
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		r.logger.Warn("query embedding failed", "error", err)
		return r.fallbackSources()
	}

	results, err := r.store.Query(ctx, vector, k, filters)
	if err != nil {
		r.logger.Warn("vector search failed, serving fallback corpus", "error", err)
		return r.fallbackSources()
	}

	sources := make([]Source, 0, len(results))
	for _, res := range results {
		sources = append(sources, Source{
			Content: res.Content,
			Meta:    MetadataFromMap(res.Metadata),
			Score:   res.Score,
		})
	}

	return sources
}

// init lazily connects to the vector backend. A connection failure is
// non-fatal: the retriever stays in degraded mode for the process lifetime.
func (r *Retriever) init(ctx context.Context) {
	r.initOnce.Do(func() {
		store, err := r.factory(ctx)
		if err != nil {
			r.logger.Warn("vector store unavailable, entering degraded retrieval mode", "error", err)
			return
		}
		r.store = store
	})
}

// Degraded reports whether the retriever is serving the fallback corpus.
// Meaningful only after the first Retrieve call.
func (r *Retriever) Degraded() bool {
	return r.store == nil
}

func (r *Retriever) fallbackSources() []Source {
	r.logger.Warn("degraded retrieval: serving built-in demonstration corpus")
	return DemoCorpus()
}
