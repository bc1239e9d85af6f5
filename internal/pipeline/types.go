// Package pipeline orchestrates the retrieve, rerank, and generate stages
// for medical queries and assembles cited responses.
package pipeline

import (
	"github.com/medassist/medassist/internal/generator"
)

// Request is a single query through the pipeline.
type Request struct {
	// Question is the sanitized medical question.
	Question string

	// Language selects the answer language.
	Language generator.Language

	// ConversationID, when set by the caller, is passed through unchanged.
	// The pipeline keeps no conversation state.
	ConversationID string

	// IncludeSources controls whether citations appear in the response.
	IncludeSources bool

	// K is the retrieval breadth; TopK the final breadth after reranking.
	// Zero values fall back to the pipeline defaults.
	K    int
	TopK int
}

// Citation is a render-ready projection of a retrieved source, 1-indexed to
// match the [n] markers in the generated answer.
type Citation struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Authors        []string `json:"authors,omitempty"`
	Journal        string   `json:"journal,omitempty"`
	Year           int      `json:"year,omitempty"`
	DOI            string   `json:"doi,omitempty"`
	PMID           string   `json:"pmid,omitempty"`
	URL            string   `json:"url,omitempty"`
	Snippet        string   `json:"snippet"`
	RelevanceScore float64  `json:"relevance_score"`
}

// Response is the assembled answer for a non-streaming query.
type Response struct {
	Answer           string     `json:"answer"`
	Sources          []Citation `json:"sources"`
	ConversationID   string     `json:"conversation_id"`
	QueryID          string     `json:"query_id"`
	ProcessingTimeMS int64      `json:"processing_time_ms"`
	ModelUsed        string     `json:"model_used"`
}

// EventType discriminates streaming events.
type EventType string

// Streaming event types, in emission order: content chunks, then one source
// per citation, then a single terminal done (or error).
const (
	EventContent EventType = "content"
	EventSource  EventType = "source"
	EventDone    EventType = "done"
	EventError   EventType = "error"
)

// Event is one typed streaming event. Only the fields relevant to its type
// are populated; the zero fields are omitted from the wire encoding.
type Event struct {
	Type           EventType `json:"type"`
	Content        string    `json:"content,omitempty"`
	Source         *Citation `json:"source,omitempty"`
	QueryID        string    `json:"query_id,omitempty"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Error          string    `json:"error,omitempty"`
}
