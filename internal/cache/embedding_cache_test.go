package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	calls int
	fail  bool
}

func (e *countingEmbedder) Name() string { return "fake/model" }

func (e *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.calls++
	if e.fail {
		return nil, errors.New("backend down")
	}
	return []float32{float32(len(text)), 1}, nil
}

// unreachableRedis points at a closed port so every command fails fast.
func unreachableRedis(t *testing.T) *redisv9.Client {
	t.Helper()
	client := redisv9.NewClient(&redisv9.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestEmbeddingKey(t *testing.T) {
	k1 := embeddingKey("hugot/mini", "Student: Jane")
	k2 := embeddingKey("hugot/mini", "Student: Jane")
	k3 := embeddingKey("openai/small", "Student: Jane")

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.True(t, strings.HasPrefix(k1, "embedding:hugot/mini:"))
	assert.Len(t, strings.TrimPrefix(k1, "embedding:hugot/mini:"), 40)
}

func TestEmbeddingCache_FallsThroughWhenRedisDown(t *testing.T) {
	next := &countingEmbedder{}
	c := NewEmbeddingCache(unreachableRedis(t), next, time.Minute)

	vec, err := c.Embed(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 1}, vec)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, "fake/model", c.Name())
}

func TestEmbeddingCache_BatchFallsThroughWhenRedisDown(t *testing.T) {
	next := &countingEmbedder{}
	c := NewEmbeddingCache(unreachableRedis(t), next, time.Minute)

	vectors, err := c.EmbedBatch(context.Background(), []string{"a", "bb"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 1}, {2, 1}}, vectors)
	assert.Equal(t, 2, next.calls)
}

func TestEmbeddingCache_PropagatesEmbedderError(t *testing.T) {
	c := NewEmbeddingCache(unreachableRedis(t), &countingEmbedder{fail: true}, 0)

	_, err := c.Embed(context.Background(), "abc")
	assert.Error(t, err)
	assert.Equal(t, 24*time.Hour, c.ttl)
}
