// Package reranker reorders retrieved documents with a weighted hybrid score.
//
// The combined score blends the original vector similarity with lexical
// overlap signals that vector search alone misses:
//
//   - 60% original similarity score
//   - 25% query keyword overlap
//   - 15% clinical term overlap
//   - a title-match boost capped at 0.10
//
// Scoring is deterministic and cheap (no model calls), so reranking adds no
// latency beyond the token set construction.
package reranker

import (
	"regexp"
	"sort"
	"strings"

	"github.com/medassist/medassist/internal/retriever"
)

// Score weights for the hybrid blend.
const (
	similarityWeight = 0.60
	keywordWeight    = 0.25
	domainWeight     = 0.15

	titleBoostPerTerm = 0.05
	titleBoostCap     = 0.10

	// minTokenLength filters noise tokens; tokens of this length or shorter
	// are discarded.
	minTokenLength = 2
)

var tokenPattern = regexp.MustCompile(`\w+`)

// Reranker rescores and reorders retrieved documents by relevance to a query.
type Reranker struct {
	vocabulary []string
}

// Option configures a Reranker.
type Option func(*Reranker)

// WithVocabulary replaces the default clinical term vocabulary used for the
// domain-term overlap signal.
func WithVocabulary(terms []string) Option {
	return func(r *Reranker) {
		r.vocabulary = terms
	}
}

// New creates a reranker with the default clinical vocabulary.
func New(opts ...Option) *Reranker {
	r := &Reranker{vocabulary: DefaultMedicalTerms()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rerank returns at most topK documents ordered by descending combined score.
// Each returned document's Score field holds the combined score, not the
// original retrieval score. Documents with equal scores keep their relative
// retrieval order. An empty input returns an empty slice without scoring.
func (r *Reranker) Rerank(docs []retriever.Source, query string, topK int) []retriever.Source {
	if len(docs) == 0 {
		return []retriever.Source{}
	}

	queryTokens := Tokenize(query)
	domainTerms := r.extractDomainTerms(query)

	scored := make([]retriever.Source, len(docs))
	for i, doc := range docs {
		scored[i] = doc
		scored[i].Score = r.combinedScore(doc, queryTokens, domainTerms)
	}

	// Stable sort preserves retrieval order among equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	return scored
}

// combinedScore blends vector similarity, keyword overlap, domain-term
// overlap, and a title boost, clamped to [0, 1].
func (r *Reranker) combinedScore(doc retriever.Source, queryTokens, domainTerms map[string]struct{}) float64 {
	score := doc.Score * similarityWeight

	docTokens := Tokenize(doc.Content)

	if len(queryTokens) > 0 {
		overlap := float64(intersectionSize(queryTokens, docTokens)) / float64(len(queryTokens))
		score += overlap * keywordWeight
	}

	if len(domainTerms) > 0 {
		overlap := float64(intersectionSize(domainTerms, docTokens)) / float64(len(domainTerms))
		score += overlap * domainWeight
	}

	titleTokens := Tokenize(doc.Meta.Title)
	titleBoost := float64(intersectionSize(queryTokens, titleTokens)) * titleBoostPerTerm
	if titleBoost > titleBoostCap {
		titleBoost = titleBoostCap
	}
	score += titleBoost

	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Tokenize case-folds text into a set of word tokens, discarding tokens of
// length <= 2. Intentionally crude: reproducible token sets matter more here
// than linguistic accuracy.
func Tokenize(text string) map[string]struct{} {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if len(t) > minTokenLength {
			set[t] = struct{}{}
		}
	}
	return set
}

// extractDomainTerms returns the vocabulary terms present in the text.
func (r *Reranker) extractDomainTerms(text string) map[string]struct{} {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})
	for _, term := range r.vocabulary {
		if strings.Contains(lower, term) {
			found[term] = struct{}{}
		}
	}
	return found
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
