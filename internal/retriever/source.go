// Package retriever provides vector-search retrieval of medical literature
// with a built-in demonstration corpus as a degraded-mode fallback.
package retriever

import (
	"strconv"
	"strings"
)

// Source is a retrieved document: content, provenance metadata, and a
// similarity score in a roughly [0,1] range.
type Source struct {
	Content string
	Meta    Metadata
	Score   float64
}

// Metadata carries the known provenance fields used for citation formatting.
// Every field is optional. Extra holds any backend payload keys that do not
// map to a known field.
type Metadata struct {
	Title      string
	Authors    []string
	Journal    string
	Year       int
	DOI        string
	PMID       string
	URL        string
	SourceType string

	// Fallback marks documents served from the built-in demo corpus rather
	// than a live vector index, so degraded answers are distinguishable.
	Fallback bool

	Extra map[string]string
}

// authorSeparator joins multiple authors in flat string payloads.
const authorSeparator = "; "

// MetadataFromMap parses a flat string payload (as stored in the vector
// backends) into a Metadata record.
func MetadataFromMap(m map[string]string) Metadata {
	meta := Metadata{}
	for k, v := range m {
		switch k {
		case "title":
			meta.Title = v
		case "authors":
			meta.Authors = splitAuthors(v)
		case "journal":
			meta.Journal = v
		case "year":
			if year, err := strconv.Atoi(v); err == nil {
				meta.Year = year
			}
		case "doi":
			meta.DOI = v
		case "pmid":
			meta.PMID = v
		case "url":
			meta.URL = v
		case "source_type":
			meta.SourceType = v
		case "is_fallback":
			meta.Fallback = v == "true"
		default:
			if meta.Extra == nil {
				meta.Extra = make(map[string]string)
			}
			meta.Extra[k] = v
		}
	}
	return meta
}

// ToMap flattens the metadata record back into a string payload for storage.
func (m Metadata) ToMap() map[string]string {
	out := make(map[string]string)
	if m.Title != "" {
		out["title"] = m.Title
	}
	if len(m.Authors) > 0 {
		out["authors"] = strings.Join(m.Authors, authorSeparator)
	}
	if m.Journal != "" {
		out["journal"] = m.Journal
	}
	if m.Year != 0 {
		out["year"] = strconv.Itoa(m.Year)
	}
	if m.DOI != "" {
		out["doi"] = m.DOI
	}
	if m.PMID != "" {
		out["pmid"] = m.PMID
	}
	if m.URL != "" {
		out["url"] = m.URL
	}
	if m.SourceType != "" {
		out["source_type"] = m.SourceType
	}
	if m.Fallback {
		out["is_fallback"] = "true"
	}
	for k, v := range m.Extra {
		out[k] = v
	}
	return out
}

func splitAuthors(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ";")
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if a := strings.TrimSpace(p); a != "" {
			authors = append(authors, a)
		}
	}
	if len(authors) == 0 {
		return nil
	}
	return authors
}
