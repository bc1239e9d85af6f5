package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/medassist/medassist/internal/generator"
	"github.com/medassist/medassist/internal/reranker"
	"github.com/medassist/medassist/internal/retriever"
)

// fakeRetriever returns a fixed document list.
type fakeRetriever struct {
	docs []retriever.Source
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, k int, filters map[string]string) []retriever.Source {
	return f.docs
}

// fakeGenerator echoes a canned answer, optionally as a chunk stream.
type fakeGenerator struct {
	answer string
	chunks []string
}

func (f *fakeGenerator) Generate(ctx context.Context, question, contextText, systemPrompt string, lang generator.Language) string {
	return f.answer
}

func (f *fakeGenerator) GenerateStream(ctx context.Context, question, contextText, systemPrompt string, lang generator.Language) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for _, c := range f.chunks {
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (f *fakeGenerator) ModelName() string { return "fake-model" }

func testDocs() []retriever.Source {
	return []retriever.Source{
		{
			Content: "hypertension guideline content",
			Meta:    retriever.Metadata{Title: "Hypertension Guidelines"},
			Score:   0.9,
		},
		{
			Content: "diabetes guideline content",
			Meta:    retriever.Metadata{Title: "Diabetes Guidelines"},
			Score:   0.8,
		},
	}
}

func newTestPipeline(docs []retriever.Source, gen *fakeGenerator) *Pipeline {
	return New(&fakeRetriever{docs: docs}, reranker.New(), gen, nil)
}

func TestQueryReturnsAnswerAndSources(t *testing.T) {
	p := newTestPipeline(testDocs(), &fakeGenerator{answer: "cited answer [1]"})

	resp, err := p.Query(context.Background(), Request{
		Question:       "how to treat hypertension",
		Language:       generator.LanguageEnglish,
		IncludeSources: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Answer != "cited answer [1]" {
		t.Errorf("unexpected answer %q", resp.Answer)
	}
	if len(resp.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(resp.Sources))
	}
	if resp.Sources[0].ID != 1 || resp.Sources[1].ID != 2 {
		t.Errorf("citation ids should be 1-based sequential: %+v", resp.Sources)
	}
	if resp.QueryID == "" || resp.ConversationID == "" {
		t.Error("expected generated query and conversation ids")
	}
	if resp.ModelUsed != "fake-model" {
		t.Errorf("unexpected model name %q", resp.ModelUsed)
	}
	if resp.ProcessingTimeMS < 0 {
		t.Errorf("negative processing time %d", resp.ProcessingTimeMS)
	}
}

func TestQueryConversationIDPassthrough(t *testing.T) {
	p := newTestPipeline(testDocs(), &fakeGenerator{answer: "answer"})

	resp, err := p.Query(context.Background(), Request{
		Question:       "query",
		ConversationID: "conv-123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ConversationID != "conv-123" {
		t.Errorf("expected conversation id passthrough, got %q", resp.ConversationID)
	}
}

func TestQueryExcludesSourcesWhenNotRequested(t *testing.T) {
	p := newTestPipeline(testDocs(), &fakeGenerator{answer: "answer"})

	resp, err := p.Query(context.Background(), Request{
		Question:       "query",
		IncludeSources: false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Sources == nil {
		t.Fatal("sources should be an empty slice, not nil")
	}
	if len(resp.Sources) != 0 {
		t.Errorf("expected no sources, got %d", len(resp.Sources))
	}
}

func TestQueryEmptyRetrievalUsesFallbackAnswer(t *testing.T) {
	p := newTestPipeline(nil, &fakeGenerator{answer: "should not be used"})

	resp, err := p.Query(context.Background(), Request{Question: "query", IncludeSources: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Answer, "couldn't find") {
		t.Errorf("expected no-results answer, got %q", resp.Answer)
	}
	if len(resp.Sources) != 0 {
		t.Errorf("expected no sources, got %d", len(resp.Sources))
	}
	if resp.QueryID == "" || resp.ConversationID == "" {
		t.Error("fallback response still needs real ids")
	}
}

func TestQueryTopKLimitsSources(t *testing.T) {
	p := newTestPipeline(testDocs(), &fakeGenerator{answer: "answer"})

	resp, err := p.Query(context.Background(), Request{
		Question:       "query",
		IncludeSources: true,
		TopK:           1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Sources) != 1 {
		t.Fatalf("expected 1 source after rerank truncation, got %d", len(resp.Sources))
	}
}

func collectEvents(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var got []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatal("timed out waiting for events")
		}
	}
}

func TestQueryStreamEventOrder(t *testing.T) {
	gen := &fakeGenerator{chunks: []string{"Hello", " world"}}
	p := newTestPipeline(testDocs(), gen)

	events := collectEvents(t, p.QueryStream(context.Background(), Request{
		Question: "query",
	}))

	if len(events) != 5 {
		t.Fatalf("expected 5 events (2 content, 2 source, 1 done), got %d: %v", len(events), events)
	}

	wantTypes := []EventType{EventContent, EventContent, EventSource, EventSource, EventDone}
	for i, want := range wantTypes {
		if events[i].Type != want {
			t.Fatalf("event %d: expected type %q, got %q", i, want, events[i].Type)
		}
	}

	if events[0].Content != "Hello" || events[1].Content != " world" {
		t.Errorf("unexpected content chunks: %v", events[:2])
	}
	if events[2].Source == nil || events[2].Source.ID != 1 {
		t.Errorf("first source event should carry citation 1: %+v", events[2])
	}

	done := events[4]
	if done.QueryID == "" || done.ConversationID == "" {
		t.Error("done event must carry query and conversation ids")
	}
}

func TestQueryStreamEmptyRetrieval(t *testing.T) {
	p := newTestPipeline(nil, &fakeGenerator{})

	events := collectEvents(t, p.QueryStream(context.Background(), Request{Question: "query"}))

	if len(events) != 2 {
		t.Fatalf("expected content + done, got %d events", len(events))
	}
	if events[0].Type != EventContent || events[0].Content == "" {
		t.Errorf("expected fallback content event, got %+v", events[0])
	}
	if events[1].Type != EventDone {
		t.Errorf("expected done event, got %+v", events[1])
	}
}

func TestQueryStreamConversationIDPassthrough(t *testing.T) {
	p := newTestPipeline(testDocs(), &fakeGenerator{chunks: []string{"hi"}})

	events := collectEvents(t, p.QueryStream(context.Background(), Request{
		Question:       "query",
		ConversationID: "conv-xyz",
	}))

	last := events[len(events)-1]
	if last.Type != EventDone {
		t.Fatalf("expected terminal done event, got %+v", last)
	}
	if last.ConversationID != "conv-xyz" {
		t.Errorf("expected conversation id passthrough, got %q", last.ConversationID)
	}
}

func TestQueryStreamContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	gen := &fakeGenerator{chunks: []string{"a", "b", "c", "d"}}
	p := newTestPipeline(testDocs(), gen)

	events := p.QueryStream(ctx, Request{Question: "query"})

	// Read one event, then abandon the stream.
	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("no first event")
	}
	cancel()

	// The channel must close soon after cancellation.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream did not close after context cancellation")
		}
	}
}
