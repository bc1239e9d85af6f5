package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medassist/medassist/internal/auth"
	"github.com/medassist/medassist/internal/config"
	"github.com/medassist/medassist/internal/embedder"
	"github.com/medassist/medassist/internal/generator"
	"github.com/medassist/medassist/internal/llm"
	"github.com/medassist/medassist/internal/pipeline"
	"github.com/medassist/medassist/internal/reranker"
	"github.com/medassist/medassist/internal/retriever"
	"github.com/medassist/medassist/internal/server"
	"github.com/medassist/medassist/internal/validation"
	"github.com/medassist/medassist/internal/vectorstore"
)

func main() {
	// Set up structured logging
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("failed to run server", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("starting MedAssist service",
		"http_port", cfg.HTTPPort,
		"environment", cfg.Environment,
		"vector_backend", cfg.VectorBackend,
	)

	// Initialize OpenAI embedder, wrapped so embedding failures degrade to
	// zero vectors instead of failing queries
	embed := embedder.NewResilient(embedder.NewOpenAIEmbedder(embedder.OpenAIConfig{
		APIKey:    cfg.OpenAIAPIKey,
		BaseURL:   cfg.OpenAIBaseURL,
		Model:     cfg.OpenAIEmbeddingModel,
		Dimension: cfg.EmbeddingDimension,
	}), slog.Default())
	slog.Info("initialized embedder", "model", cfg.OpenAIEmbeddingModel)

	// The vector store is dialed lazily so the service stays up when the
	// backend is down; retrieval degrades to the built-in corpus
	storeFactory := newStoreFactory(cfg)
	ret := retriever.New(embed, storeFactory, slog.Default())

	rer := reranker.New()

	// Initialize OpenAI chat client
	llmClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey,
		llm.WithBaseURL(cfg.OpenAIBaseURL),
		llm.WithModel(cfg.OpenAIModel),
	)
	slog.Info("initialized LLM", "model", cfg.OpenAIModel)

	gen := generator.New(llmClient, slog.Default())

	pipe := pipeline.New(ret, rer, gen, slog.Default(),
		pipeline.WithDefaults(cfg.RetrieveK, cfg.RerankTop),
	)

	validator := validation.NewValidator(cfg.MaxQueryLength)

	jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtConfig.Expiry = cfg.JWTExpiry
	jwtManager := auth.NewJWTManager(jwtConfig)

	httpServer := server.New(server.Config{
		Port:               cfg.HTTPPort,
		AllowedOrigins:     cfg.AllowedOriginsList(),
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Production:         cfg.IsProduction(),
		Logger:             slog.Default(),
	}, pipe, validator, jwtManager, gen.ModelName())

	// Start server
	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown HTTP server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}

// newStoreFactory returns a factory for the configured vector backend.
func newStoreFactory(cfg *config.Config) retriever.StoreFactory {
	return func(ctx context.Context) (vectorstore.VectorStore, error) {
		switch cfg.VectorBackend {
		case "chroma":
			return vectorstore.NewChromaStore(ctx, cfg.ChromaURL, cfg.CollectionName)
		case "qdrant":
			return vectorstore.NewQdrantStore(ctx, cfg.QdrantGRPCURL, cfg.CollectionName)
		default:
			return nil, fmt.Errorf("unknown vector backend %q", cfg.VectorBackend)
		}
	}
}

// Ensure interfaces are satisfied at compile time
var (
	_ vectorstore.VectorStore    = (*vectorstore.QdrantStore)(nil)
	_ vectorstore.VectorStore    = (*vectorstore.ChromaStore)(nil)
	_ embedder.Embedder          = (*embedder.OpenAIEmbedder)(nil)
	_ embedder.Embedder          = (*embedder.Resilient)(nil)
	_ llm.LLM                    = (*llm.OpenAIClient)(nil)
	_ pipeline.DocumentRetriever = (*retriever.Retriever)(nil)
	_ pipeline.AnswerGenerator   = (*generator.Generator)(nil)
	_ server.QueryPipeline       = (*pipeline.Pipeline)(nil)
)
