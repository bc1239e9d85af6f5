package pipeline

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/medassist/medassist/internal/retriever"
)

const (
	// untitledSource labels documents with no title metadata.
	untitledSource = "Untitled Source"

	// snippetLimit caps citation snippets in characters.
	snippetLimit = 300
)

// FormatContext turns reranked documents into the prompt context string and
// the parallel citation list. Citation ids are 1-based and follow the input
// order, which is authoritative post-rerank.
func FormatContext(docs []retriever.Source) (string, []Citation) {
	parts := make([]string, 0, len(docs))
	citations := make([]Citation, 0, len(docs))

	for i, doc := range docs {
		id := i + 1

		title := doc.Meta.Title
		if title == "" {
			title = untitledSource
		}

		parts = append(parts, fmt.Sprintf("[%d] %s\n%s\n", id, title, doc.Content))

		citations = append(citations, Citation{
			ID:             id,
			Title:          title,
			Authors:        doc.Meta.Authors,
			Journal:        doc.Meta.Journal,
			Year:           doc.Meta.Year,
			DOI:            doc.Meta.DOI,
			PMID:           doc.Meta.PMID,
			URL:            doc.Meta.URL,
			Snippet:        snippet(doc.Content),
			RelevanceScore: doc.Score,
		})
	}

	return strings.Join(parts, "\n"), citations
}

// snippet truncates content to snippetLimit characters, appending an ellipsis
// marker when truncated. The limit counts runes, not bytes, so multi-byte
// content is never split mid-character.
func snippet(content string) string {
	if utf8.RuneCountInString(content) > snippetLimit {
		return string([]rune(content)[:snippetLimit]) + "..."
	}
	return content
}
