package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestQueries(t *testing.T) {
	grades := SuggestQueries("grades")
	require.Len(t, grades, 5)
	assert.Equal(t, "Show me the top 5 students in Mathematics this semester", grades[0])

	assert.Len(t, SuggestQueries("Courses"), 5)

	mixed := SuggestQueries("")
	require.Len(t, mixed, 5)
	assert.Equal(t, []string{
		"Show me the top 5 students in Mathematics this semester",
		"What's the average score in Computer Science?",
		"Who are the new students that enrolled this semester?",
		"Show me students participating in AI RAG projects",
		"Which courses have the highest pass rates?",
	}, mixed)
	assert.Equal(t, mixed, SuggestQueries("weather"))
}

func TestSuggestQueries_ReturnsCopy(t *testing.T) {
	got := SuggestQueries("students")
	got[0] = "changed"
	assert.NotEqual(t, "changed", SuggestQueries("students")[0])
}

func TestAcknowledgeFeedback(t *testing.T) {
	receipt, err := AcknowledgeFeedback(FeedbackInput{ResponseID: "abc-123", Rating: 4})
	require.NoError(t, err)
	assert.True(t, receipt.Success)
	assert.Equal(t, "fb_abc-123", receipt.FeedbackID)
	assert.Equal(t, "Feedback received, thank you!", receipt.Message)

	_, err = AcknowledgeFeedback(FeedbackInput{ResponseID: " ", Rating: 4})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = AcknowledgeFeedback(FeedbackInput{ResponseID: "abc", Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
