// Package generator turns a question plus formatted literature context into a
// model-generated answer. Provider failures never escape this package: both
// paths degrade to a pre-composed, language-matched apology.
package generator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/medassist/medassist/internal/llm"
)

// Language selects the answer language.
type Language string

// Supported languages.
const (
	LanguageEnglish  Language = "en"
	LanguageJapanese Language = "ja"
)

// Generation parameters are fixed, not user-configurable: low temperature
// biases toward factual determinism.
const (
	generationTemperature = 0.1
	generationMaxTokens   = 2000
	generationTopP        = 0.95
)

// japaneseDirective is appended to the system prompt for Japanese answers.
const japaneseDirective = "\n\nPlease respond in Japanese (日本語で回答してください)."

// Generator produces answers from a chat-completion model.
type Generator struct {
	client llm.LLM
	logger *slog.Logger
}

// New creates a generator. A nil logger uses slog.Default.
func New(client llm.LLM, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, logger: logger}
}

// Generate returns the model's answer to the question given the formatted
// context. Any provider error is absorbed and replaced with the fallback
// apology for the requested language.
func (g *Generator) Generate(ctx context.Context, question, contextText, systemPrompt string, lang Language) string {
	messages := buildMessages(question, contextText, systemPrompt, lang)

	answer, err := g.client.Complete(ctx, messages, g.options())
	if err != nil {
		g.logger.Warn("generation failed, returning fallback response", "error", err)
		return FallbackMessage(lang)
	}

	return answer
}

// GenerateStream streams the model's answer chunk by chunk. If the stream
// fails at any point, the language-matched fallback is emitted as the final
// chunk and the channel closes; chunks already delivered are not retracted.
func (g *Generator) GenerateStream(ctx context.Context, question, contextText, systemPrompt string, lang Language) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		messages := buildMessages(question, contextText, systemPrompt, lang)

		chunks, err := g.client.CompleteStream(ctx, messages, g.options())
		if err != nil {
			g.logger.Warn("streaming generation failed to start", "error", err)
			emit(ctx, out, FallbackMessage(lang))
			return
		}

		for chunk := range chunks {
			if chunk.Error != nil {
				g.logger.Warn("streaming generation failed", "error", chunk.Error)
				emit(ctx, out, FallbackMessage(lang))
				return
			}
			if chunk.Token != "" {
				if !emit(ctx, out, chunk.Token) {
					return
				}
			}
			if chunk.Done {
				return
			}
		}
	}()

	return out
}

// ModelName returns the model used for generation.
func (g *Generator) ModelName() string {
	return g.client.ModelName()
}

func (g *Generator) options() llm.Options {
	return llm.Options{
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
		TopP:        generationTopP,
	}
}

// buildMessages constructs exactly two messages: the system prompt with the
// context substituted (plus a language directive when answering in Japanese),
// and the raw user question.
func buildMessages(question, contextText, systemPrompt string, lang Language) []llm.Message {
	system := strings.ReplaceAll(systemPrompt, "{context}", contextText)
	if lang == LanguageJapanese {
		system += japaneseDirective
	}

	return []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: question},
	}
}

// emit sends a chunk unless the consumer has gone away. Returns false when
// the context is done.
func emit(ctx context.Context, out chan<- string, s string) bool {
	select {
	case out <- s:
		return true
	case <-ctx.Done():
		return false
	}
}

// FallbackMessage returns the pre-composed apology for the given language.
func FallbackMessage(lang Language) string {
	if lang == LanguageJapanese {
		return "申し訳ございません。回答の生成中にエラーが発生しました。" +
			"しばらくしてから再度お試しください。" +
			"緊急の場合は、医療専門家に直接ご相談ください。"
	}
	return "I apologize, but an error occurred while generating the response. " +
		"Please try again in a moment. " +
		"For urgent matters, please consult a healthcare professional directly."
}
