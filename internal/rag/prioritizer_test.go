package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scored(content string, score float64) ScoredChunk {
	return ScoredChunk{Chunk: Chunk{Content: content, SourceType: SourceStudent, SourceID: content}, RelevanceScore: score}
}

func TestRenderContext_Empty(t *testing.T) {
	assert.Equal(t, EmptyContext, RenderContext(nil, QueryGeneral))
	assert.Equal(t, EmptyContext, RenderContext([]ScoredChunk{}, QueryRanking))
}

func TestRenderContext_RankingFlagsDigits(t *testing.T) {
	out := RenderContext([]ScoredChunk{
		scored("Math: 9.5", 0.1),
		scored("no numbers here", 0.99),
	}, QueryRanking)

	assert.Equal(t, "[HIGH RELEVANCE] Math: 9.5\n\nno numbers here", out)
}

func TestRenderContext_OtherTypesUseScore(t *testing.T) {
	out := RenderContext([]ScoredChunk{
		scored("strong match", 0.75),
		scored("exactly threshold", 0.7),
		scored("score 10", 0.2),
	}, QueryAnalytics)

	assert.Equal(t, "[HIGH RELEVANCE] strong match\n\nexactly threshold\n\nscore 10", out)
}
