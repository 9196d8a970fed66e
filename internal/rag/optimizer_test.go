package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermOverlapOptimizer_ScoresAndOrders(t *testing.T) {
	candidates := chunksOf(
		"Physics grades for John",
		"Math grades for Jane",
		"Jane Math Physics summary",
		"Art department",
	)

	got := NewTermOverlapOptimizer().Optimize("jane math", candidates)
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].SourceID)
	assert.Equal(t, "s2", got[1].SourceID)
	assert.Equal(t, 1.0, got[0].RelevanceScore)
	assert.Equal(t, 1.0, got[1].RelevanceScore)
}

func TestTermOverlapOptimizer_PartialScore(t *testing.T) {
	got := NewTermOverlapOptimizer().Optimize("math physics chemistry art", chunksOf("math and physics"))
	require.Len(t, got, 1)
	assert.InDelta(t, 0.5, got[0].RelevanceScore, 1e-9)
}

func TestTermOverlapOptimizer_DuplicateTermsCountOnce(t *testing.T) {
	got := NewTermOverlapOptimizer().Optimize("math math history", chunksOf("math only"))
	require.Len(t, got, 1)
	assert.InDelta(t, 0.5, got[0].RelevanceScore, 1e-9)
}

func TestTermOverlapOptimizer_LimitsToThree(t *testing.T) {
	candidates := chunksOf("math a", "math b", "math c", "math d", "math e")

	got := NewTermOverlapOptimizer().Optimize("math", candidates)
	require.Len(t, got, MaxContextChunks)
	assert.Equal(t, []string{"s0", "s1", "s2"}, []string{got[0].SourceID, got[1].SourceID, got[2].SourceID})
}

func TestTermOverlapOptimizer_NoMatchesOrTerms(t *testing.T) {
	o := NewTermOverlapOptimizer()
	assert.Empty(t, o.Optimize("zoology", chunksOf("math", "physics")))
	assert.Empty(t, o.Optimize("   ", chunksOf("math")))
	assert.Empty(t, o.Optimize("math", nil))
}

func TestTermOverlapOptimizer_ScoresInRange(t *testing.T) {
	got := TermOverlapOptimizer{Limit: 10}.Optimize("top math students 2024", chunksOf(
		"math", "students of math", "Top math students 2024", "2024",
	))
	require.Len(t, got, 4)
	for i, c := range got {
		assert.Greater(t, c.RelevanceScore, 0.0)
		assert.LessOrEqual(t, c.RelevanceScore, 1.0)
		if i > 0 {
			assert.LessOrEqual(t, c.RelevanceScore, got[i-1].RelevanceScore)
		}
	}
}
