package rag

import (
	"sort"
	"strings"
)

// MaxContextChunks bounds how many chunks reach the prompt.
const MaxContextChunks = 3

// Optimizer re-ranks retrieved chunks against the query and trims them to the
// context budget. It only scores what retrieval returned.
type Optimizer interface {
	Optimize(query string, candidates []Chunk) []ScoredChunk
}

// TermOverlapOptimizer scores a chunk by the share of distinct query terms
// that occur anywhere in its text.
type TermOverlapOptimizer struct {
	Limit int
}

func NewTermOverlapOptimizer() TermOverlapOptimizer {
	return TermOverlapOptimizer{Limit: MaxContextChunks}
}

func (o TermOverlapOptimizer) Optimize(query string, candidates []Chunk) []ScoredChunk {
	terms := distinctTerms(query)
	if len(terms) == 0 {
		return nil
	}

	var scored []ScoredChunk
	for _, c := range candidates {
		content := strings.ToLower(c.Content)
		matched := 0
		for _, term := range terms {
			if strings.Contains(content, term) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		scored = append(scored, ScoredChunk{
			Chunk:          c,
			RelevanceScore: float64(matched) / float64(len(terms)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	limit := o.Limit
	if limit <= 0 {
		limit = MaxContextChunks
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func distinctTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}
