// Package rag holds the retrieval-augmented answering core: turning academic
// records into indexed passages, classifying and re-ranking for a question,
// and composing the prompt and the final answer envelope.
package rag

type SourceType string

const (
	SourceStudent SourceType = "student"
	SourceCourse  SourceType = "course"
)

// Chunk is a bounded slice of a record's rendered text with its provenance.
// ChunkIndex is 0-based and always less than TotalChunks.
type Chunk struct {
	Content     string     `json:"content"`
	SourceType  SourceType `json:"source_type"`
	SourceID    string     `json:"source_id"`
	DisplayName string     `json:"display_name"`
	ChunkIndex  int        `json:"chunk_index"`
	TotalChunks int        `json:"total_chunks"`
}

// EmbeddedChunk pairs a chunk with its embedding. It is never modified after
// a snapshot build produces it.
type EmbeddedChunk struct {
	Chunk
	Vector []float32
}

// ScoredChunk is a retrieved chunk with its lexical relevance in [0, 1].
type ScoredChunk struct {
	Chunk
	RelevanceScore float64
}

// Neighbor is one nearest-neighbor hit; Distance is 1 - cosine similarity.
type Neighbor struct {
	Chunk    Chunk
	Distance float64
}
