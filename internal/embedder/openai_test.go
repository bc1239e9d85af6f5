package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses newlines", "line one\nline two", "line one line two"},
		{"trims whitespace", "  padded  ", "padded"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeInput(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeInputTruncates(t *testing.T) {
	long := strings.Repeat("a", MaxInputChars+500)
	got := NormalizeInput(long)
	if len(got) != MaxInputChars {
		t.Fatalf("expected %d chars, got %d", MaxInputChars, len(got))
	}
}

func TestNormalizeInputTruncatesByRune(t *testing.T) {
	long := strings.Repeat("糖", MaxInputChars+1)
	got := NormalizeInput(long)
	if utf8.RuneCountInString(got) != MaxInputChars {
		t.Fatalf("expected %d runes, got %d", MaxInputChars, utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncated input is not valid UTF-8")
	}

	// At exactly the budget the text passes through untouched even though
	// its byte length is three times the limit.
	exact := strings.Repeat("糖", MaxInputChars)
	if NormalizeInput(exact) != exact {
		t.Fatal("text at the rune budget should not be truncated")
	}
}

func TestEmbedBatchRestoresProviderOrder(t *testing.T) {
	// The provider is allowed to return embeddings out of order as long as
	// each entry carries its input index.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Input) != 2 {
			t.Fatalf("expected 2 inputs, got %d", len(req.Input))
		}

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float32{2, 2}},
				{"index": 0, "embedding": []float32{1, 1}},
			},
		})
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:    "test-key",
		BaseURL:   srv.URL,
		Dimension: 2,
	})

	vectors, err := e.EmbedBatch(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vectors[0][0] != 1 || vectors[1][0] != 2 {
		t.Fatalf("order not restored: %v", vectors)
	}
}

func TestEmbedBatchEmptyInput(t *testing.T) {
	e := NewOpenAIEmbedder(OpenAIConfig{APIKey: "key"})
	vectors, err := e.EmbedBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 0 {
		t.Fatalf("expected no vectors, got %d", len(vectors))
	}
}

func TestEmbedBatchErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(OpenAIConfig{APIKey: "key", BaseURL: srv.URL})
	if _, err := e.EmbedBatch(context.Background(), []string{"text"}); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestEmbedBatchCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float32{1}},
			},
		})
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(OpenAIConfig{APIKey: "key", BaseURL: srv.URL})
	if _, err := e.EmbedBatch(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error when provider returns fewer embeddings than inputs")
	}
}
