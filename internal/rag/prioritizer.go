package rag

import (
	"strings"
	"unicode"
)

const (
	EmptyContext          = "No relevant information found in the database."
	HighRelevanceMarker   = "[HIGH RELEVANCE] "
	highRelevanceMinScore = 0.7
)

// RenderContext joins chunks into the prompt context in the order given.
// Ranking questions flag chunks that carry any digit; every other type flags
// chunks scoring above 0.7.
func RenderContext(chunks []ScoredChunk, queryType QueryType) string {
	if len(chunks) == 0 {
		return EmptyContext
	}

	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if isHighRelevance(c, queryType) {
			parts = append(parts, HighRelevanceMarker+c.Content)
			continue
		}
		parts = append(parts, c.Content)
	}
	return strings.Join(parts, "\n\n")
}

func isHighRelevance(c ScoredChunk, queryType QueryType) bool {
	if queryType == QueryRanking {
		return strings.IndexFunc(c.Content, unicode.IsDigit) >= 0
	}
	return c.RelevanceScore > highRelevanceMinScore
}
