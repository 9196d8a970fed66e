package rag

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	long := strings.Repeat("é", 150)
	chunks := []ScoredChunk{
		{Chunk: Chunk{Content: long, SourceType: SourceStudent, SourceID: "s1", DisplayName: "Jane"}, RelevanceScore: 1},
		{Chunk: Chunk{Content: "second part", SourceType: SourceStudent, SourceID: "s1", DisplayName: "Jane", ChunkIndex: 1}, RelevanceScore: 0.5},
		{Chunk: Chunk{Content: "Course: Math", SourceType: SourceCourse, SourceID: "c1", DisplayName: "Math"}, RelevanceScore: 0.5},
	}
	built := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	env := Assemble(AssembleInput{
		Answer:         "Jane leads Math.",
		Chunks:         chunks,
		QueryType:      QueryRanking,
		Context:        "ctxé",
		LastBuild:      built,
		ProcessingTime: 1500 * time.Millisecond,
	})

	assert.Equal(t, "Jane leads Math.", env.Answer)
	assert.Equal(t, PlaceholderConfidence, env.Confidence)

	require.Len(t, env.Sources, 3)
	assert.Equal(t, "s1", env.Sources[0].ID)
	assert.Equal(t, SourceStudent, env.Sources[0].Type)
	assert.Equal(t, strings.Repeat("é", 100)+"...", env.Sources[0].Snippet)
	assert.Equal(t, "second part", env.Sources[1].Snippet)
	assert.Equal(t, SourceCourse, env.Sources[2].Type)

	assert.Equal(t, "ranking", env.Metadata["query_type"])
	assert.Equal(t, 1, env.Metadata["student_count"])
	assert.Equal(t, 1, env.Metadata["course_count"])
	assert.Equal(t, 4, env.Metadata["context_length"])
	assert.Equal(t, "1.5s", env.Metadata["processing_time"])
	assert.Equal(t, "2024-03-05T14:07:09Z", env.Metadata["last_db_update"])
}

func TestAssemble_NoChunksNoBuild(t *testing.T) {
	env := Assemble(AssembleInput{Answer: InsufficientInformation, QueryType: QueryGeneral, Context: EmptyContext})

	assert.Empty(t, env.Sources)
	assert.NotNil(t, env.Sources)
	assert.Equal(t, 0, env.Metadata["student_count"])
	assert.Equal(t, 0, env.Metadata["course_count"])
	_, ok := env.Metadata["last_db_update"]
	assert.False(t, ok)
}

func TestSnippet_ExactLengthIsUntouched(t *testing.T) {
	s := strings.Repeat("a", 100)
	assert.Equal(t, s, snippet(s))
}
