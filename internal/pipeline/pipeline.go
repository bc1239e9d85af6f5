package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/medassist/medassist/internal/generator"
	"github.com/medassist/medassist/internal/reranker"
	"github.com/medassist/medassist/internal/retriever"
)

// Default retrieval and rerank breadths when the request leaves them unset.
const (
	DefaultRetrieveK = 10
	DefaultTopK      = 5
)

// DocumentRetriever fetches candidate documents for a query. Failures are
// absorbed inside the retriever; it always returns a list.
type DocumentRetriever interface {
	Retrieve(ctx context.Context, query string, k int, filters map[string]string) []retriever.Source
}

// AnswerGenerator produces the final answer from question and context.
type AnswerGenerator interface {
	Generate(ctx context.Context, question, contextText, systemPrompt string, lang generator.Language) string
	GenerateStream(ctx context.Context, question, contextText, systemPrompt string, lang generator.Language) <-chan string
	ModelName() string
}

// Pipeline sequences retrieval, reranking, context formatting, and
// generation. It holds no per-request state; concurrent invocations share
// only the long-lived provider clients behind the retriever and generator.
type Pipeline struct {
	retriever DocumentRetriever
	reranker  *reranker.Reranker
	generator AnswerGenerator
	logger    *slog.Logger

	defaultK    int
	defaultTopK int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDefaults overrides the default retrieval and rerank breadths.
func WithDefaults(k, topK int) Option {
	return func(p *Pipeline) {
		if k > 0 {
			p.defaultK = k
		}
		if topK > 0 {
			p.defaultTopK = topK
		}
	}
}

// New creates a pipeline. A nil logger uses slog.Default.
func New(ret DocumentRetriever, rer *reranker.Reranker, gen AnswerGenerator, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		retriever:   ret,
		reranker:    rer,
		generator:   gen,
		logger:      logger,
		defaultK:    DefaultRetrieveK,
		defaultTopK: DefaultTopK,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Query runs the full pipeline synchronously and returns the assembled
// response. Component-level failures have already been degraded to fallback
// values by the time they reach this method; only unanticipated failures
// propagate as errors.
func (p *Pipeline) Query(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	queryID := uuid.New().String()
	convID := req.ConversationID
	if convID == "" {
		convID = uuid.New().String()
	}

	k, topK := p.breadths(req)

	p.logger.Info("retrieving documents", "query_id", queryID, "k", k)
	docs := p.retriever.Retrieve(ctx, req.Question, k, nil)

	if len(docs) == 0 {
		p.logger.Warn("no documents retrieved, using fallback response", "query_id", queryID)
		return &Response{
			Answer:           noResultsAnswer,
			Sources:          []Citation{},
			ConversationID:   convID,
			QueryID:          queryID,
			ProcessingTimeMS: time.Since(start).Milliseconds(),
			ModelUsed:        p.generator.ModelName(),
		}, nil
	}

	p.logger.Info("reranking documents", "query_id", queryID, "count", len(docs), "top_k", topK)
	reranked := p.reranker.Rerank(docs, req.Question, topK)

	contextText, citations := FormatContext(reranked)

	p.logger.Info("generating answer", "query_id", queryID)
	answer := p.generator.Generate(ctx, req.Question, contextText, systemPrompt, req.Language)

	sources := citations
	if !req.IncludeSources {
		sources = []Citation{}
	}

	return &Response{
		Answer:           answer,
		Sources:          sources,
		ConversationID:   convID,
		QueryID:          queryID,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
		ModelUsed:        p.generator.ModelName(),
	}, nil
}

// QueryStream runs retrieval, reranking, and formatting eagerly, then streams
// the generation as typed events: content chunks, one source event per
// citation after generation completes, and a terminal done event. Any
// unanticipated failure surfaces as a terminal error event rather than a
// panic reaching the transport.
func (p *Pipeline) QueryStream(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("streaming query panicked", "panic", r)
				send(ctx, events, Event{
					Type:  EventError,
					Error: "An error occurred while processing your query",
				})
			}
		}()

		queryID := uuid.New().String()
		convID := req.ConversationID
		if convID == "" {
			convID = uuid.New().String()
		}
		done := Event{Type: EventDone, QueryID: queryID, ConversationID: convID}

		k, topK := p.breadths(req)

		docs := p.retriever.Retrieve(ctx, req.Question, k, nil)

		if len(docs) == 0 {
			send(ctx, events, Event{Type: EventContent, Content: noResultsStreamMessage})
			send(ctx, events, done)
			return
		}

		reranked := p.reranker.Rerank(docs, req.Question, topK)
		contextText, citations := FormatContext(reranked)

		for chunk := range p.generator.GenerateStream(ctx, req.Question, contextText, systemPrompt, req.Language) {
			if !send(ctx, events, Event{Type: EventContent, Content: chunk}) {
				return
			}
		}

		for i := range citations {
			if !send(ctx, events, Event{Type: EventSource, Source: &citations[i]}) {
				return
			}
		}

		send(ctx, events, done)
	}()

	return events
}

// breadths resolves the retrieval and rerank breadths for a request.
func (p *Pipeline) breadths(req Request) (int, int) {
	k := req.K
	if k <= 0 {
		k = p.defaultK
	}
	topK := req.TopK
	if topK <= 0 {
		topK = p.defaultTopK
	}
	return k, topK
}

// send delivers an event unless the consumer has gone away.
func send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// String implements fmt.Stringer for log-friendly event display.
func (e Event) String() string {
	switch e.Type {
	case EventContent:
		return fmt.Sprintf("content(%d bytes)", len(e.Content))
	case EventSource:
		if e.Source != nil {
			return fmt.Sprintf("source[%d]", e.Source.ID)
		}
		return "source"
	case EventDone:
		return "done"
	case EventError:
		return "error: " + e.Error
	}
	return string(e.Type)
}
