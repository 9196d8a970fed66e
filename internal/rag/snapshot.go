package rag

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"
)

const (
	DefaultTopK        = 8
	embeddingBatchSize = 10
)

// Snapshot is an immutable, queryable set of embedded chunks produced by one
// full build. Queries never observe a snapshot that is still being built.
type Snapshot struct {
	chunks    []EmbeddedChunk
	dataAsOf  time.Time
	builtAt   time.Time
	dimension int
}

// EmptySnapshot is the snapshot a process serves before its first build.
func EmptySnapshot() *Snapshot {
	return &Snapshot{}
}

func (s *Snapshot) Len() int { return len(s.chunks) }

// BuiltAt is zero for a snapshot that was never built.
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

// DataAsOf is when the records behind the snapshot were read. Changes made
// after it may be missing even though BuiltAt is later.
func (s *Snapshot) DataAsOf() time.Time { return s.dataAsOf }

func (s *Snapshot) Dimension() int { return s.dimension }

// BuildSnapshot embeds every chunk and assembles a new snapshot. Chunks that
// fail to embed, or whose vector dimension differs from the first one, are
// logged and dropped. An empty input produces a valid empty snapshot.
func BuildSnapshot(ctx context.Context, embedder Embedder, chunks []Chunk) (*Snapshot, int) {
	snap := &Snapshot{
		chunks:   make([]EmbeddedChunk, 0, len(chunks)),
		dataAsOf: time.Now(),
	}
	dropped := 0

	add := func(c Chunk, vec []float32) {
		if len(vec) == 0 {
			log.Printf("index drop chunk %s/%s#%d: empty embedding", c.SourceType, c.SourceID, c.ChunkIndex)
			dropped++
			return
		}
		if snap.dimension == 0 {
			snap.dimension = len(vec)
		}
		if len(vec) != snap.dimension {
			log.Printf("index drop chunk %s/%s#%d: dimension %d, want %d",
				c.SourceType, c.SourceID, c.ChunkIndex, len(vec), snap.dimension)
			dropped++
			return
		}
		snap.chunks = append(snap.chunks, EmbeddedChunk{Chunk: c, Vector: vec})
	}

	batcher, canBatch := embedder.(BatchEmbedder)
	for i := 0; i < len(chunks); i += embeddingBatchSize {
		end := min(i+embeddingBatchSize, len(chunks))
		batch := chunks[i:end]

		if canBatch {
			vectors, err := batcher.EmbedBatch(ctx, contents(batch))
			if err == nil && len(vectors) == len(batch) {
				for j := range batch {
					add(batch[j], vectors[j])
				}
				continue
			}
			if err == nil {
				err = fmt.Errorf("got %d vectors for %d texts", len(vectors), len(batch))
			}
			log.Printf("index embed batch failed, retrying one by one: %v", err)
		}

		for _, c := range batch {
			vec, err := embedder.Embed(ctx, c.Content)
			if err != nil {
				log.Printf("index drop chunk %s/%s#%d: %v", c.SourceType, c.SourceID, c.ChunkIndex, err)
				dropped++
				continue
			}
			add(c, vec)
		}
	}

	snap.builtAt = time.Now()
	return snap, dropped
}

// Query returns up to k chunks nearest to text, closest first. Equal
// distances keep build order. An empty snapshot answers without embedding.
func (s *Snapshot) Query(ctx context.Context, embedder Embedder, text string, k int) ([]Neighbor, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	if len(s.chunks) == 0 {
		return nil, nil
	}

	vec, err := embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query failed: %w", err)
	}

	hits := make([]Neighbor, len(s.chunks))
	for i := range s.chunks {
		hits[i] = Neighbor{
			Chunk:    s.chunks[i].Chunk,
			Distance: 1 - CosineSimilarity(vec, s.chunks[i].Vector),
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func contents(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Content
	}
	return out
}
