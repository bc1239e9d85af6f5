package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medassist/medassist/internal/auth"
	"github.com/medassist/medassist/internal/generator"
	"github.com/medassist/medassist/internal/pipeline"
	"github.com/medassist/medassist/internal/validation"
)

// ChatRequest is the wire format for chat queries.
type ChatRequest struct {
	Query          string `json:"query"`
	Language       string `json:"language,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	// IncludeSources defaults to true when omitted.
	IncludeSources *bool `json:"include_sources,omitempty"`
}

// toPipelineRequest converts the wire request to a pipeline request using
// the already-sanitized query.
func (c *ChatRequest) toPipelineRequest(sanitized string) pipeline.Request {
	lang := generator.LanguageEnglish
	if c.Language == string(generator.LanguageJapanese) {
		lang = generator.LanguageJapanese
	}

	includeSources := true
	if c.IncludeSources != nil {
		includeSources = *c.IncludeSources
	}

	return pipeline.Request{
		Question:       sanitized,
		Language:       lang,
		ConversationID: c.ConversationID,
		IncludeSources: includeSources,
	}
}

// decodeChatRequest parses and validates the request body, returning the
// sanitized query. A nil error means the request is safe to process.
func (s *Server) decodeChatRequest(w http.ResponseWriter, r *http.Request) (*ChatRequest, string, bool) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, "", false
	}

	sanitized, err := s.validator.ValidateAndSanitize(req.Query)
	if err != nil {
		s.logger.Warn("invalid query rejected", "error", err)
		status := http.StatusBadRequest
		if errors.Is(err, validation.ErrPromptInjection) || errors.Is(err, validation.ErrInvalidPatterns) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return nil, "", false
	}

	return &req, sanitized, true
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	req, sanitized, ok := s.decodeChatRequest(w, r)
	if !ok {
		return
	}

	userEmail := "anonymous"
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		userEmail = claims.Email
	}
	s.logger.Info("chat request", "user", userEmail, "query_length", len(sanitized))

	resp, err := s.pipeline.Query(r.Context(), req.toPipelineRequest(sanitized))
	if err != nil {
		s.logger.Error("chat query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while processing your query")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	req, sanitized, ok := s.decodeChatRequest(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	userEmail := "anonymous"
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		userEmail = claims.Email
	}
	s.logger.Info("streaming chat request", "user", userEmail, "query_length", len(sanitized))

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	enc := json.NewEncoder(w)
	for event := range s.pipeline.QueryStream(r.Context(), req.toPipelineRequest(sanitized)) {
		if _, err := w.Write([]byte("data: ")); err != nil {
			return
		}
		if err := enc.Encode(event); err != nil {
			return
		}
		// Encoder already wrote one newline; SSE frames end with a blank line
		if _, err := w.Write([]byte("\n")); err != nil {
			return
		}
		flusher.Flush()
	}
}

// suggestionCategory groups starter queries for the chat interface.
type suggestionCategory struct {
	Category string   `json:"category"`
	Queries  []string `json:"queries"`
}

var chatSuggestions = []suggestionCategory{
	{
		Category: "Treatment Guidelines",
		Queries: []string{
			"What are the first-line treatments for hypertension?",
			"What is the treatment algorithm for type 2 diabetes?",
			"How should community-acquired pneumonia be treated?",
			"What are the current guidelines for anticoagulation in atrial fibrillation?",
		},
	},
	{
		Category: "Drug Information",
		Queries: []string{
			"What are the common side effects of metformin?",
			"What is the mechanism of action of ACE inhibitors?",
			"What are the contraindications for aspirin use?",
			"How should warfarin dosing be adjusted?",
		},
	},
	{
		Category: "Clinical Presentation",
		Queries: []string{
			"What are the symptoms of acute myocardial infarction?",
			"How does diabetic ketoacidosis present clinically?",
			"What are the red flags for headache?",
			"What are the diagnostic criteria for sepsis?",
		},
	},
	{
		Category: "Differential Diagnosis",
		Queries: []string{
			"What is the differential diagnosis for chest pain?",
			"What causes elevated liver enzymes?",
			"What are the causes of acute kidney injury?",
			"What conditions cause generalized lymphadenopathy?",
		},
	},
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]suggestionCategory{
		"suggestions": chatSuggestions,
	})
}
