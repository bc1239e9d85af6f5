package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
)

// ChromaStore implements VectorStore using a Chroma server, the local
// development alternative to Qdrant. Chroma returns cosine distances, which
// are converted to similarities via 1 - distance.
type ChromaStore struct {
	client     chromago.Client
	collection chromago.Collection
	name       string
}

// NewChromaStore creates a new Chroma vector store client.
func NewChromaStore(ctx context.Context, baseURL, collection string) (*ChromaStore, error) {
	client, err := chromago.NewHTTPClient(chromago.WithBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create chroma client: %w", err)
	}

	return &ChromaStore{client: client, name: collection}, nil
}

// Close closes the Chroma client connection
func (s *ChromaStore) Close() error {
	return s.client.Close()
}

// EnsureCollection creates the collection if it does not exist. The dimension
// parameter is unused: Chroma infers it from the first upserted embedding.
func (s *ChromaStore) EnsureCollection(ctx context.Context, _ int) error {
	collection, err := s.client.GetOrCreateCollection(
		ctx,
		s.name,
		chromago.WithCollectionMetadataCreate(
			chromago.NewMetadata(
				chromago.NewStringAttribute("hnsw:space", "cosine"),
			),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to get or create collection: %w", err)
	}

	s.collection = collection
	return nil
}

// Upsert inserts or updates documents in the vector store
func (s *ChromaStore) Upsert(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	if s.collection == nil {
		if err := s.EnsureCollection(ctx, 0); err != nil {
			return err
		}
	}

	for _, doc := range docs {
		attrs := make([]*chromago.MetaAttribute, 0, len(doc.Metadata))
		for k, v := range doc.Metadata {
			attrs = append(attrs, chromago.NewStringAttribute(k, v))
		}

		err := s.collection.Add(ctx,
			chromago.WithIDs(chromago.DocumentID(doc.ID)),
			chromago.WithTexts(doc.Content),
			chromago.WithEmbeddings(embeddings.NewEmbeddingFromFloat32(doc.Vector)),
			chromago.WithMetadatas(chromago.NewDocumentMetadata(attrs...)),
		)
		if err != nil {
			return fmt.Errorf("failed to add document %s to chroma: %w", doc.ID, err)
		}
	}

	return nil
}

// Query performs similarity search with an optional metadata equality filter
func (s *ChromaStore) Query(ctx context.Context, vector []float32, k int, filter map[string]string) ([]SearchResult, error) {
	if s.collection == nil {
		if err := s.EnsureCollection(ctx, 0); err != nil {
			return nil, err
		}
	}

	opts := []chromago.CollectionQueryOption{
		chromago.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(vector)),
		chromago.WithNResults(k),
	}
	if where := buildChromaWhere(filter); where != nil {
		opts = append(opts, chromago.WithWhereQuery(where))
	}

	result, err := s.collection.Query(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chroma: %w", err)
	}

	documentGroups := result.GetDocumentsGroups()
	metadataGroups := result.GetMetadatasGroups()
	distanceGroups := result.GetDistancesGroups()

	if len(documentGroups) == 0 {
		return []SearchResult{}, nil
	}

	docs := documentGroups[0]
	results := make([]SearchResult, 0, len(docs))
	for i, doc := range docs {
		if doc.ContentString() == "" {
			continue
		}

		sr := SearchResult{
			Content:  doc.ContentString(),
			Metadata: make(map[string]string),
		}

		// Chroma reports distance; convert to similarity.
		if len(distanceGroups) > 0 && i < len(distanceGroups[0]) {
			sr.Score = 1 - float64(distanceGroups[0][i])
		}

		if len(metadataGroups) > 0 && i < len(metadataGroups[0]) && metadataGroups[0][i] != nil {
			sr.Metadata = flattenChromaMetadata(metadataGroups[0][i])
		}

		results = append(results, sr)
	}

	return results, nil
}

// buildChromaWhere converts an equality-filter map to a chroma where clause.
func buildChromaWhere(filter map[string]string) chromago.WhereFilter {
	if len(filter) == 0 {
		return nil
	}

	clauses := make([]chromago.WhereClause, 0, len(filter))
	for k, v := range filter {
		clauses = append(clauses, chromago.EqString(k, v))
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return chromago.And(clauses...)
}

// flattenChromaMetadata converts DocumentMetadata to a plain string map.
// The metadata type exposes no direct accessor for all values, so it goes
// through a JSON round-trip, the same way the attribute values were written.
func flattenChromaMetadata(md chromago.DocumentMetadata) map[string]string {
	out := make(map[string]string)

	raw, err := json.Marshal(md)
	if err != nil {
		return out
	}

	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return out
	}

	for k, v := range values {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = fmt.Sprintf("%v", val)
		case bool:
			out[k] = fmt.Sprintf("%t", val)
		}
	}

	return out
}

// Ensure ChromaStore implements VectorStore
var _ VectorStore = (*ChromaStore)(nil)
