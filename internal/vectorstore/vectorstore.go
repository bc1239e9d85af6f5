// Package vectorstore provides interfaces and implementations for vector similarity search.
package vectorstore

import (
	"context"
)

// Document represents a corpus document with its embedding, as stored in the index.
type Document struct {
	ID       string
	Content  string
	Vector   []float32
	Metadata map[string]string
}

// SearchResult represents a search result from the vector store. Score is a
// similarity in a roughly [0,1] range; backends that natively return distances
// convert before returning.
type SearchResult struct {
	ID       string
	Content  string
	Score    float64
	Metadata map[string]string
}

// VectorStore defines the interface for vector storage backends. The backend
// is chosen at deployment time; both implementations must satisfy the same
// similarity convention.
type VectorStore interface {
	// EnsureCollection creates the collection if it does not exist.
	EnsureCollection(ctx context.Context, dimension int) error

	// Upsert inserts or updates documents in the vector store.
	Upsert(ctx context.Context, docs []Document) error

	// Query performs similarity search, returning up to k results ordered by
	// descending similarity. filter is an opaque metadata equality filter
	// passed through to the backend; nil means no filter.
	Query(ctx context.Context, vector []float32, k int, filter map[string]string) ([]SearchResult, error)

	// Close releases the backend connection.
	Close() error
}
