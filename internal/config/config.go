// Package config loads configuration from environment variables and .env files.
package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the MedAssist service
type Config struct {
	// Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// CORS; comma-separated list, empty means allow-all in development
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:""`

	// OpenAI
	OpenAIAPIKey         string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL        string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	OpenAIModel          string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	OpenAIEmbeddingModel string `env:"OPENAI_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	EmbeddingDimension   int    `env:"EMBEDDING_DIMENSION" envDefault:"1536"`

	// Vector store: "qdrant" or "chroma"
	VectorBackend  string `env:"VECTOR_BACKEND" envDefault:"qdrant"`
	QdrantGRPCURL  string `env:"QDRANT_GRPC_URL" envDefault:"localhost:6334"`
	ChromaURL      string `env:"CHROMA_URL" envDefault:"http://localhost:8001"`
	CollectionName string `env:"COLLECTION_NAME" envDefault:"medassist"`

	// Retrieval
	RetrieveK int `env:"RETRIEVE_K" envDefault:"10"`
	RerankTop int `env:"RERANK_TOP_K" envDefault:"5"`

	// Auth
	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-this-in-production"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`

	// Security
	MaxQueryLength     int `env:"MAX_QUERY_LENGTH" envDefault:"2000"`
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
}

// Load loads configuration from .env file (if present) and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// AllowedOriginsList parses the comma-separated origins string.
func (c *Config) AllowedOriginsList() []string {
	if c.AllowedOrigins == "" {
		return nil
	}
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
