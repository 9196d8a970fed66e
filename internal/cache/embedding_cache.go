package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"edubot/internal/rag"
)

// NamedEmbedder is an embedder that can identify its provider and model.
type NamedEmbedder interface {
	rag.Embedder
	Name() string
}

// EmbeddingCache memoizes embeddings in Redis. Redis failures are logged and
// the call goes straight to the wrapped embedder.
type EmbeddingCache struct {
	client *redisv9.Client
	next   NamedEmbedder
	ttl    time.Duration
}

func NewEmbeddingCache(client *redisv9.Client, next NamedEmbedder, ttl time.Duration) *EmbeddingCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &EmbeddingCache{
		client: client,
		next:   next,
		ttl:    ttl,
	}
}

func (c *EmbeddingCache) Name() string {
	return c.next.Name()
}

func (c *EmbeddingCache) Embed(ctx context.Context, text string) ([]float32, error) {
	key := embeddingKey(c.next.Name(), text)
	if vec, ok, err := c.get(ctx, key); err != nil {
		log.Printf("embedding cache read failed: %v", err)
	} else if ok {
		return vec, nil
	}

	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.set(ctx, key, vec); err != nil {
		log.Printf("embedding cache write failed: %v", err)
	}
	return vec, nil
}

// EmbedBatch serves cached texts from Redis and sends only the misses to the
// wrapped embedder, in one batch when it supports batching.
func (c *EmbeddingCache) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	name := c.next.Name()
	keys := make([]string, len(texts))
	for i, t := range texts {
		keys[i] = embeddingKey(name, t)
	}

	out := make([][]float32, len(texts))
	cached, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		log.Printf("embedding cache batch read failed: %v", err)
		cached = nil
	}

	var missIdx []int
	for i := range texts {
		if i < len(cached) {
			if raw, ok := cached[i].(string); ok {
				var vec []float32
				if err := json.Unmarshal([]byte(raw), &vec); err == nil && len(vec) > 0 {
					out[i] = vec
					continue
				}
			}
		}
		missIdx = append(missIdx, i)
	}
	if len(missIdx) == 0 {
		return out, nil
	}

	misses := make([]string, len(missIdx))
	for j, i := range missIdx {
		misses[j] = texts[i]
	}
	vectors, err := c.embedMisses(ctx, misses)
	if err != nil {
		return nil, err
	}

	pipe := c.client.Pipeline()
	for j, i := range missIdx {
		out[i] = vectors[j]
		if payload, err := json.Marshal(vectors[j]); err == nil {
			pipe.Set(ctx, keys[i], payload, c.ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("embedding cache batch write failed: %v", err)
	}
	return out, nil
}

func (c *EmbeddingCache) embedMisses(ctx context.Context, texts []string) ([][]float32, error) {
	if batcher, ok := c.next.(rag.BatchEmbedder); ok {
		vectors, err := batcher.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(texts) {
			return nil, fmt.Errorf("embedding count mismatch: got %d for %d texts", len(vectors), len(texts))
		}
		return vectors, nil
	}
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := c.next.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (c *EmbeddingCache) get(ctx context.Context, key string) ([]float32, bool, error) {
	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get embedding failed: %w", err)
	}

	var vec []float32
	if err := json.Unmarshal([]byte(raw), &vec); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached embedding failed: %w", err)
	}
	return vec, len(vec) > 0, nil
}

func (c *EmbeddingCache) set(ctx context.Context, key string, vec []float32) error {
	payload, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("marshal embedding cache failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set embedding failed: %w", err)
	}
	return nil
}

func embeddingKey(embedder, text string) string {
	sum := sha1.Sum([]byte(text))
	return fmt.Sprintf("embedding:%s:%s", embedder, hex.EncodeToString(sum[:]))
}
