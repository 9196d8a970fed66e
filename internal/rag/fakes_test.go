package rag

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"sync"

	"edubot/internal/model"
)

const fakeDims = 64

// hashEmbedder maps each lower-cased word to a bucket, so texts sharing
// words land close together.
type hashEmbedder struct {
	mu     sync.Mutex
	calls  int
	failOn string
}

func (e *hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.failOn != "" && strings.Contains(text, e.failOn) {
		return nil, errors.New("embedding backend unavailable")
	}
	vec := make([]float32, fakeDims)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		vec[h.Sum32()%fakeDims]++
	}
	return vec, nil
}

func (e *hashEmbedder) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// batchEmbedder fails every batch call so the per-chunk fallback runs.
type batchEmbedder struct {
	hashEmbedder
	batchCalls int
	failBatch  bool
}

func (e *batchEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.batchCalls++
	if e.failBatch {
		return nil, errors.New("batch rejected")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.hashEmbedder.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type staticSupplier struct {
	mu       sync.Mutex
	students []model.StudentRecord
	courses  []model.CourseRecord
	err      error
}

func (s *staticSupplier) ListStudentsWithGrades(context.Context) ([]model.StudentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.students, nil
}

func (s *staticSupplier) ListCoursesWithStatistics(context.Context) ([]model.CourseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.courses, nil
}

func (s *staticSupplier) set(students []model.StudentRecord, courses []model.CourseRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = students
	s.courses = courses
}
