package rag

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcEmbedder func(text string) ([]float32, error)

func (f funcEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return f(text)
}

func chunksOf(contents ...string) []Chunk {
	out := make([]Chunk, len(contents))
	for i, c := range contents {
		out[i] = Chunk{
			Content:     c,
			SourceType:  SourceStudent,
			SourceID:    fmt.Sprintf("s%d", i),
			DisplayName: fmt.Sprintf("Student %d", i),
			TotalChunks: 1,
		}
	}
	return out
}

func TestBuildSnapshot_Empty(t *testing.T) {
	emb := &hashEmbedder{}
	snap, dropped := BuildSnapshot(context.Background(), emb, nil)

	assert.Equal(t, 0, snap.Len())
	assert.Equal(t, 0, dropped)
	assert.False(t, snap.BuiltAt().IsZero())
	assert.Equal(t, 0, emb.Calls())
}

func TestSnapshot_QueryOnEmptySkipsEmbedding(t *testing.T) {
	emb := &hashEmbedder{}
	hits, err := EmptySnapshot().Query(context.Background(), emb, "top students", 8)

	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Equal(t, 0, emb.Calls())
	assert.True(t, EmptySnapshot().BuiltAt().IsZero())
}

func TestSnapshot_QueryOrdersByDistance(t *testing.T) {
	ctx := context.Background()
	emb := &hashEmbedder{}
	snap, dropped := BuildSnapshot(ctx, emb, chunksOf(
		"chemistry lab safety rules",
		"math calculus scores for jane",
		"history of art department",
	))
	require.Equal(t, 0, dropped)
	require.Equal(t, 3, snap.Len())
	assert.Equal(t, fakeDims, snap.Dimension())

	hits, err := snap.Query(ctx, emb, "math calculus scores for jane", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "s1", hits[0].Chunk.SourceID)
	assert.InDelta(t, 0, hits[0].Distance, 1e-6)
	assert.LessOrEqual(t, hits[0].Distance, hits[1].Distance)
}

func TestSnapshot_QueryTiesKeepBuildOrder(t *testing.T) {
	ctx := context.Background()
	emb := &hashEmbedder{}
	snap, _ := BuildSnapshot(ctx, emb, chunksOf("same text", "same text", "same text"))

	hits, err := snap.Query(ctx, emb, "same text", 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "s0", hits[0].Chunk.SourceID)
	assert.Equal(t, "s1", hits[1].Chunk.SourceID)
	assert.Equal(t, "s2", hits[2].Chunk.SourceID)
}

func TestSnapshot_QueryBoundsK(t *testing.T) {
	ctx := context.Background()
	emb := &hashEmbedder{}
	contents := make([]string, 12)
	for i := range contents {
		contents[i] = fmt.Sprintf("record number %d", i)
	}
	snap, _ := BuildSnapshot(ctx, emb, chunksOf(contents...))

	hits, err := snap.Query(ctx, emb, "record", 0)
	require.NoError(t, err)
	assert.Len(t, hits, DefaultTopK)

	hits, err = snap.Query(ctx, emb, "record", 50)
	require.NoError(t, err)
	assert.Len(t, hits, 12)
}

func TestSnapshot_QueryEmbedError(t *testing.T) {
	ctx := context.Background()
	snap, _ := BuildSnapshot(ctx, &hashEmbedder{}, chunksOf("a b c"))

	_, err := snap.Query(ctx, &hashEmbedder{failOn: "boom"}, "boom", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed query failed")
}

func TestBuildSnapshot_DropsFailedChunks(t *testing.T) {
	emb := &hashEmbedder{failOn: "broken"}
	snap, dropped := BuildSnapshot(context.Background(), emb, chunksOf("fine one", "broken record", "fine two"))

	assert.Equal(t, 1, dropped)
	assert.Equal(t, 2, snap.Len())
}

func TestBuildSnapshot_DropsDimensionMismatch(t *testing.T) {
	emb := funcEmbedder(func(text string) ([]float32, error) {
		if strings.HasPrefix(text, "short") {
			return []float32{1, 2}, nil
		}
		if strings.HasPrefix(text, "blank") {
			return nil, nil
		}
		return []float32{1, 0, 0, 1}, nil
	})
	snap, dropped := BuildSnapshot(context.Background(), emb, chunksOf("full", "short", "blank", "full again"))

	assert.Equal(t, 2, dropped)
	assert.Equal(t, 2, snap.Len())
	assert.Equal(t, 4, snap.Dimension())
}

func TestBuildSnapshot_UsesBatches(t *testing.T) {
	contents := make([]string, 25)
	for i := range contents {
		contents[i] = fmt.Sprintf("chunk %d", i)
	}
	emb := &batchEmbedder{}
	snap, dropped := BuildSnapshot(context.Background(), emb, chunksOf(contents...))

	assert.Equal(t, 3, emb.batchCalls)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, 25, snap.Len())
}

func TestBuildSnapshot_FallsBackWhenBatchFails(t *testing.T) {
	emb := &batchEmbedder{failBatch: true}
	emb.failOn = "bad"
	snap, dropped := BuildSnapshot(context.Background(), emb, chunksOf("good", "bad", "good again"))

	assert.Equal(t, 1, emb.batchCalls)
	assert.Equal(t, 3, emb.Calls())
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 2, snap.Len())
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1, CosineSimilarity([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}
