package rag

import (
	"fmt"
	"strconv"
	"strings"

	"edubot/internal/model"
)

// DocumentBuilder renders academic records to text and splits the text into
// chunks. It has no side effects.
type DocumentBuilder struct {
	splitter Splitter
}

// BuildReport summarizes one pass over the record supplier.
type BuildReport struct {
	Students        int `json:"students"`
	Courses         int `json:"courses"`
	SkippedRecords  int `json:"skipped_records"`
	Chunks          int `json:"chunks"`
	DroppedChunks   int `json:"dropped_chunks"`
	IndexedChunks   int `json:"indexed_chunks"`
	EmbedDimensions int `json:"embed_dimensions"`
}

func NewDocumentBuilder(splitter Splitter) *DocumentBuilder {
	return &DocumentBuilder{splitter: splitter}
}

// Build converts students and courses into chunks, students first. Records
// without an id or name are skipped and counted in the report.
func (b *DocumentBuilder) Build(students []model.StudentRecord, courses []model.CourseRecord) ([]Chunk, BuildReport) {
	var (
		chunks []Chunk
		report BuildReport
	)

	for _, s := range students {
		if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.Name) == "" {
			report.SkippedRecords++
			continue
		}
		report.Students++
		chunks = append(chunks, b.chunk(RenderStudent(s), SourceStudent, s.ID, s.Name)...)
	}

	for _, c := range courses {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
			report.SkippedRecords++
			continue
		}
		report.Courses++
		chunks = append(chunks, b.chunk(RenderCourse(c), SourceCourse, c.ID, c.Name)...)
	}

	report.Chunks = len(chunks)
	return chunks, report
}

func (b *DocumentBuilder) chunk(text string, sourceType SourceType, id, name string) []Chunk {
	pieces := b.splitter.Split(text)
	out := make([]Chunk, len(pieces))
	for i, piece := range pieces {
		out[i] = Chunk{
			Content:     piece,
			SourceType:  sourceType,
			SourceID:    id,
			DisplayName: name,
			ChunkIndex:  i,
			TotalChunks: len(pieces),
		}
	}
	return out
}

// RenderStudent renders identity fields, grade lines and, when there is at
// least one grade, the mean score with the best and weakest subjects. Ties
// resolve to the first grade listed.
func RenderStudent(s model.StudentRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Student: %s (Email: %s)\n", s.Name, s.Email)
	fmt.Fprintf(&sb, "ID: %s\n", s.ID)
	fmt.Fprintf(&sb, "Enrollment Date: %s\n", formatDate(s))

	if len(s.Grades) == 0 {
		return sb.String()
	}

	sb.WriteString("Grades:\n")
	total := 0.0
	best, worst := s.Grades[0], s.Grades[0]
	for _, g := range s.Grades {
		fmt.Fprintf(&sb, "- %s: %s (%s)\n", g.Subject, formatScore(g.Score), g.Semester)
		total += g.Score
		if g.Score > best.Score {
			best = g
		}
		if g.Score < worst.Score {
			worst = g
		}
	}
	fmt.Fprintf(&sb, "Average Score: %.2f\n", total/float64(len(s.Grades)))
	fmt.Fprintf(&sb, "Best Subject: %s (%s)\n", best.Subject, formatScore(best.Score))
	fmt.Fprintf(&sb, "Needs Improvement: %s (%s)\n", worst.Subject, formatScore(worst.Score))
	return sb.String()
}

// RenderCourse renders a course's identity, description and statistics. The
// pass rate is stored as a fraction and rendered as a percentage.
func RenderCourse(c model.CourseRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Course: %s (ID: %s)\n", c.Name, c.ID)
	fmt.Fprintf(&sb, "Department: %s\n", c.Department)
	fmt.Fprintf(&sb, "Description: %s\n", c.Description)

	if st := c.Statistics; st != nil {
		sb.WriteString("Course Statistics:\n")
		fmt.Fprintf(&sb, "- Average Score: %.2f\n", st.AvgScore)
		fmt.Fprintf(&sb, "- Number of Students: %d\n", st.StudentCount)
		fmt.Fprintf(&sb, "- Pass Rate: %.1f%%\n", st.PassRate*100)
	}
	return sb.String()
}

func formatDate(s model.StudentRecord) string {
	if s.EnrollmentDate.IsZero() {
		return "unknown"
	}
	return s.EnrollmentDate.Format("2006-01-02")
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
