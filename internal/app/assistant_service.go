package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"edubot/internal/platform/rabbitmq"
	"edubot/internal/rag"
)

// Completer sends a composed prompt to the language model.
type Completer interface {
	Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error)
}

// KnowledgeIndex is the slice of *rag.Index the service needs.
type KnowledgeIndex interface {
	Snapshot() *rag.Snapshot
	Embedder() rag.Embedder
	Rebuild(ctx context.Context) (*rag.Snapshot, rag.BuildReport, error)
}

type RebuildPublisher interface {
	Publish(ctx context.Context, req rabbitmq.RebuildRequest) error
}

type AssistantService struct {
	index      KnowledgeIndex
	classifier rag.Classifier
	optimizer  rag.Optimizer
	completer  Completer
	publisher  RebuildPublisher
	topK       int
}

func NewAssistantService(
	index KnowledgeIndex,
	classifier rag.Classifier,
	optimizer rag.Optimizer,
	completer Completer,
	publisher RebuildPublisher,
	topK int,
) *AssistantService {
	if topK <= 0 {
		topK = rag.DefaultTopK
	}
	return &AssistantService{
		index:      index,
		classifier: classifier,
		optimizer:  optimizer,
		completer:  completer,
		publisher:  publisher,
		topK:       topK,
	}
}

type AskInput struct {
	Query  string
	UserID string
	Role   string
}

// Ask runs one question through retrieval, prompting and completion. The
// whole question is answered from a single snapshot even if a rebuild
// publishes a new one meanwhile.
func (s *AssistantService) Ask(ctx context.Context, input AskInput) (*rag.AnswerEnvelope, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, ErrInvalidInput
	}
	started := time.Now()
	snap := s.index.Snapshot()

	queryType := s.classifier.Classify(query)
	neighbors, err := snap.Query(ctx, s.index.Embedder(), query, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve context failed: %w", err)
	}
	candidates := make([]rag.Chunk, len(neighbors))
	for i, n := range neighbors {
		candidates[i] = n.Chunk
	}

	selected := s.optimizer.Optimize(query, candidates)
	contextText := rag.RenderContext(selected, queryType)
	systemPrompt := rag.SystemPrompt(rag.ParseUserRole(input.Role), queryType)
	userPrompt := rag.UserPrompt(query, contextText, queryType, snap.BuiltAt())

	answer, err := s.completer.Complete(ctx, userPrompt, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("complete answer failed: %w", err)
	}

	envelope := rag.Assemble(rag.AssembleInput{
		Answer:         answer,
		Chunks:         selected,
		QueryType:      queryType,
		Context:        contextText,
		LastBuild:      snap.BuiltAt(),
		ProcessingTime: time.Since(started),
	})
	envelope.Metadata["response_id"] = uuid.NewString()

	log.Printf("assistant answered: user=%q type=%s candidates=%d selected=%d took=%s",
		input.UserID, queryType, len(neighbors), len(selected), envelope.Metadata["processing_time"])
	return &envelope, nil
}

type RefreshResult struct {
	ChunkCount     int       `json:"chunk_count"`
	SkippedRecords int       `json:"skipped_records"`
	DroppedChunks  int       `json:"dropped_chunks"`
	BuiltAt        time.Time `json:"built_at"`
}

// Refresh rebuilds the index synchronously.
func (s *AssistantService) Refresh(ctx context.Context) (*RefreshResult, error) {
	snap, report, err := s.index.Rebuild(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh knowledge failed: %w", err)
	}
	return &RefreshResult{
		ChunkCount:     snap.Len(),
		SkippedRecords: report.SkippedRecords,
		DroppedChunks:  report.DroppedChunks,
		BuiltAt:        snap.BuiltAt(),
	}, nil
}

// RequestRefresh queues a rebuild for the worker and returns its request id.
func (s *AssistantService) RequestRefresh(ctx context.Context, reason string) (string, error) {
	if s.publisher == nil {
		return "", ErrRebuildQueueDown
	}
	req := rabbitmq.NewRebuildRequest(reason)
	if err := s.publisher.Publish(ctx, req); err != nil {
		return "", fmt.Errorf("enqueue refresh failed: %w", err)
	}
	return req.ID, nil
}

type IndexStats struct {
	Chunks    int        `json:"chunks"`
	Dimension int        `json:"dimension"`
	BuiltAt   *time.Time `json:"built_at,omitempty"`
}

func (s *AssistantService) Stats() IndexStats {
	snap := s.index.Snapshot()
	stats := IndexStats{Chunks: snap.Len(), Dimension: snap.Dimension()}
	if builtAt := snap.BuiltAt(); !builtAt.IsZero() {
		stats.BuiltAt = &builtAt
	}
	return stats
}
