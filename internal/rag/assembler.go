package rag

import (
	"time"
)

// PlaceholderConfidence is reported until answers carry a calibrated score.
// TODO: replace with a calibration model fed by the relevance scores.
const PlaceholderConfidence = 0.85

const snippetLength = 100

type Source struct {
	ID             string     `json:"id"`
	Type           SourceType `json:"type"`
	DisplayName    string     `json:"displayName"`
	RelevanceScore float64    `json:"relevanceScore"`
	Snippet        string     `json:"snippet"`
}

type AnswerEnvelope struct {
	Answer     string         `json:"answer"`
	Sources    []Source       `json:"sources"`
	Metadata   map[string]any `json:"metadata"`
	Confidence float64        `json:"confidence"`
}

// AssembleInput is everything the assembler needs from one query.
type AssembleInput struct {
	Answer         string
	Chunks         []ScoredChunk
	QueryType      QueryType
	Context        string
	LastBuild      time.Time
	ProcessingTime time.Duration
}

// Assemble lists one source per contributing chunk, so a record split across
// chunks can appear more than once, while student_count and course_count in
// the metadata count distinct ids.
func Assemble(in AssembleInput) AnswerEnvelope {
	sources := make([]Source, 0, len(in.Chunks))
	studentIDs := make(map[string]struct{})
	courseIDs := make(map[string]struct{})

	for _, c := range in.Chunks {
		switch c.SourceType {
		case SourceStudent:
			studentIDs[c.SourceID] = struct{}{}
		case SourceCourse:
			courseIDs[c.SourceID] = struct{}{}
		default:
			continue
		}
		sources = append(sources, Source{
			ID:             c.SourceID,
			Type:           c.SourceType,
			DisplayName:    c.DisplayName,
			RelevanceScore: c.RelevanceScore,
			Snippet:        snippet(c.Content),
		})
	}

	metadata := map[string]any{
		"query_type":      string(in.QueryType),
		"student_count":   len(studentIDs),
		"course_count":    len(courseIDs),
		"context_length":  len([]rune(in.Context)),
		"processing_time": in.ProcessingTime.Round(time.Millisecond).String(),
	}
	if !in.LastBuild.IsZero() {
		metadata["last_db_update"] = in.LastBuild.Format(time.RFC3339)
	}

	return AnswerEnvelope{
		Answer:     in.Answer,
		Sources:    sources,
		Metadata:   metadata,
		Confidence: PlaceholderConfidence,
	}
}

func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLength {
		return content
	}
	return string(runes[:snippetLength]) + "..."
}
