package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/medassist/medassist/internal/embedder"
	"github.com/medassist/medassist/internal/ingestion"
	"github.com/medassist/medassist/internal/retriever"
	"github.com/medassist/medassist/internal/vectorstore"
)

var (
	seedBatchSize int
	seedChunkSize int
)

var seedCmd = &cobra.Command{
	Use:   "seed [corpus.yaml]",
	Short: "Seed the vector index with medical documents",
	Long: `Seed the configured vector backend with medical documents.

Without arguments the built-in sample corpus is used. A YAML corpus file
has the shape:

  documents:
    - content: "..."
      metadata:
        title: "..."
        authors: ["..."]
        journal: "..."
        year: 2024
        doi: "..."
        source_type: guideline`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedBatchSize, "batch-size", 16, "embedding batch size")
	seedCmd.Flags().IntVar(&seedChunkSize, "chunk-size", 512, "target chunk size in words")
	rootCmd.AddCommand(seedCmd)
}

// corpusFile is the YAML shape of a seedable corpus.
type corpusFile struct {
	Documents []corpusDocument `yaml:"documents"`
}

type corpusDocument struct {
	Content  string         `yaml:"content"`
	Metadata corpusMetadata `yaml:"metadata"`
}

type corpusMetadata struct {
	Title      string   `yaml:"title"`
	Authors    []string `yaml:"authors"`
	Journal    string   `yaml:"journal"`
	Year       int      `yaml:"year"`
	DOI        string   `yaml:"doi"`
	PMID       string   `yaml:"pmid"`
	URL        string   `yaml:"url"`
	SourceType string   `yaml:"source_type"`
}

func (m corpusMetadata) toMetadata() retriever.Metadata {
	return retriever.Metadata{
		Title:      m.Title,
		Authors:    m.Authors,
		Journal:    m.Journal,
		Year:       m.Year,
		DOI:        m.DOI,
		PMID:       m.PMID,
		URL:        m.URL,
		SourceType: m.SourceType,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	corpus := sampleCorpus()
	if len(args) > 0 {
		loaded, err := loadCorpus(args[0])
		if err != nil {
			return err
		}
		corpus = loaded
		fmt.Printf("Loaded %d documents from %s\n", len(corpus), args[0])
	} else {
		fmt.Printf("Using built-in sample corpus (%d documents)\n", len(corpus))
	}
	if len(corpus) == 0 {
		return fmt.Errorf("corpus contains no documents")
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureCollection(ctx, cfg.EmbeddingDimension); err != nil {
		return fmt.Errorf("failed to prepare collection: %w", err)
	}

	// Seeding should fail loudly, so the raw embedder is used here rather
	// than the degrading wrapper the service runs with
	embed := embedder.NewOpenAIEmbedder(embedder.OpenAIConfig{
		APIKey:    cfg.OpenAIAPIKey,
		BaseURL:   cfg.OpenAIBaseURL,
		Model:     cfg.OpenAIEmbeddingModel,
		Dimension: cfg.EmbeddingDimension,
	})

	chunker := ingestion.NewChunker(ingestion.ChunkerConfig{
		TargetSize: seedChunkSize,
	})

	docs := prepareDocuments(corpus, chunker)
	fmt.Printf("Prepared %d chunks for embedding\n", len(docs))

	bar := progressbar.NewOptions(len(docs),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Embedding"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	seeded := 0
	for i := 0; i < len(docs); i += seedBatchSize {
		end := i + seedBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[i:end]

		texts := make([]string, len(batch))
		for j, d := range batch {
			texts[j] = d.Content
		}

		vectors, err := embed.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}
		for j := range batch {
			batch[j].Vector = vectors[j]
		}

		if err := store.Upsert(ctx, batch); err != nil {
			return fmt.Errorf("failed to upsert batch: %w", err)
		}

		seeded += len(batch)
		bar.Set(seeded)
	}

	fmt.Printf("Seeded %d chunks into %q (%s backend)\n", seeded, cfg.CollectionName, cfg.VectorBackend)
	return nil
}

func loadCorpus(path string) ([]corpusDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}
	return file.Documents, nil
}

func openStore(ctx context.Context) (vectorstore.VectorStore, error) {
	switch cfg.VectorBackend {
	case "chroma":
		return vectorstore.NewChromaStore(ctx, cfg.ChromaURL, cfg.CollectionName)
	case "qdrant":
		return vectorstore.NewQdrantStore(ctx, cfg.QdrantGRPCURL, cfg.CollectionName)
	default:
		return nil, fmt.Errorf("unknown vector backend %q", cfg.VectorBackend)
	}
}

// prepareDocuments chunks oversized documents and assigns stable metadata to
// every chunk.
func prepareDocuments(corpus []corpusDocument, chunker *ingestion.Chunker) []vectorstore.Document {
	var docs []vectorstore.Document

	for _, source := range corpus {
		meta := source.Metadata.toMetadata().ToMap()

		chunks := chunker.Chunk(source.Content)
		for _, chunk := range chunks {
			chunkMeta := make(map[string]string, len(meta)+len(chunk.Metadata))
			for k, v := range meta {
				chunkMeta[k] = v
			}
			for k, v := range chunk.Metadata {
				chunkMeta[k] = v
			}

			docs = append(docs, vectorstore.Document{
				ID:       uuid.New().String(),
				Content:  chunk.Content,
				Metadata: chunkMeta,
			})
		}
	}

	return docs
}
