package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"edubot/internal/rag"
)

func TestWriteAnswer(t *testing.T) {
	var buf bytes.Buffer
	writeAnswer(&buf, &rag.AnswerEnvelope{
		Answer: "Jane Doe ranks first.",
		Sources: []rag.Source{
			{Type: rag.SourceStudent, DisplayName: "Jane Doe", RelevanceScore: 1},
		},
		Metadata:   map[string]any{"query_type": "ranking", "response_id": "abc"},
		Confidence: 0.85,
	})

	want := "Jane Doe ranks first.\n\nSources:\n  [student] Jane Doe (1.00)\n\nquery type: ranking, confidence: 0.85, response id: abc\n"
	assert.Equal(t, want, buf.String())
}

func TestGetServerURL(t *testing.T) {
	serverURL = ""
	t.Setenv("EDUBOT_URL", "http://edubot:8000")
	assert.Equal(t, "http://edubot:8000", getServerURL())

	serverURL = "http://flag:1"
	defer func() { serverURL = "" }()
	assert.Equal(t, "http://flag:1", getServerURL())
}
