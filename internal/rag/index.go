package rag

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"edubot/internal/model"
)

// RecordSupplier provides the denormalized records an index is built from.
type RecordSupplier interface {
	ListStudentsWithGrades(ctx context.Context) ([]model.StudentRecord, error)
	ListCoursesWithStatistics(ctx context.Context) ([]model.CourseRecord, error)
}

// Index holds the active snapshot. Readers load it without locking; rebuilds
// are serialized and publish a finished snapshot with a single atomic store.
type Index struct {
	supplier RecordSupplier
	builder  *DocumentBuilder
	embedder Embedder

	active    atomic.Pointer[Snapshot]
	rebuildMu sync.Mutex
}

func NewIndex(supplier RecordSupplier, builder *DocumentBuilder, embedder Embedder) *Index {
	ix := &Index{
		supplier: supplier,
		builder:  builder,
		embedder: embedder,
	}
	ix.active.Store(EmptySnapshot())
	return ix
}

// Snapshot returns the active snapshot; it is never nil.
func (ix *Index) Snapshot() *Snapshot {
	return ix.active.Load()
}

func (ix *Index) Embedder() Embedder {
	return ix.embedder
}

// Rebuild reads every record, builds a new snapshot and publishes it. If the
// supplier fails, the active snapshot stays in place. The snapshot's DataAsOf
// is the moment the read started.
func (ix *Index) Rebuild(ctx context.Context) (*Snapshot, BuildReport, error) {
	ix.rebuildMu.Lock()
	defer ix.rebuildMu.Unlock()

	readAt := time.Now()
	students, err := ix.supplier.ListStudentsWithGrades(ctx)
	if err != nil {
		return nil, BuildReport{}, fmt.Errorf("load students failed: %w", err)
	}
	courses, err := ix.supplier.ListCoursesWithStatistics(ctx)
	if err != nil {
		return nil, BuildReport{}, fmt.Errorf("load courses failed: %w", err)
	}

	chunks, report := ix.builder.Build(students, courses)
	snap, dropped := BuildSnapshot(ctx, ix.embedder, chunks)
	snap.dataAsOf = readAt
	if err := ctx.Err(); err != nil {
		return nil, report, fmt.Errorf("index build interrupted: %w", err)
	}
	report.DroppedChunks = dropped
	report.IndexedChunks = snap.Len()
	report.EmbedDimensions = snap.Dimension()

	ix.active.Store(snap)
	log.Printf("index rebuilt: students=%d courses=%d skipped=%d chunks=%d dropped=%d dims=%d",
		report.Students, report.Courses, report.SkippedRecords, report.IndexedChunks, report.DroppedChunks, report.EmbedDimensions)
	return snap, report, nil
}
