package app

import "strings"

const mixedSuggestionLimit = 5

var suggestionCategories = []string{"grades", "students", "courses"}

var suggestionsByContext = map[string][]string{
	"grades": {
		"Show me the top 5 students in Mathematics this semester",
		"What's the average score in Computer Science?",
		"Which student has improved the most in Physics between semesters?",
		"Compare the grade distributions between Biology and Chemistry",
		"Show me students with failing grades who need intervention",
	},
	"students": {
		"Who are the new students that enrolled this semester?",
		"Show me students participating in AI RAG projects",
		"Which students are excelling in multiple subjects?",
		"Give me a profile of student with ID XYZ including all their grades",
		"Find students who haven't submitted their projects yet",
	},
	"courses": {
		"Which courses have the highest pass rates?",
		"Show me enrollment trends for Computer Science courses",
		"Compare student performance in introductory vs advanced courses",
		"Which course has the most even grade distribution?",
		"What's the most challenging course based on average grades?",
	},
}

// SuggestQueries returns canned example questions for a context. An empty or
// unknown context gets a mix: the first two of each category, capped at five.
func SuggestQueries(context string) []string {
	if list, ok := suggestionsByContext[strings.ToLower(strings.TrimSpace(context))]; ok {
		return append([]string(nil), list...)
	}
	mixed := make([]string, 0, 2*len(suggestionCategories))
	for _, category := range suggestionCategories {
		mixed = append(mixed, suggestionsByContext[category][:2]...)
	}
	return mixed[:mixedSuggestionLimit]
}

type FeedbackInput struct {
	ResponseID string
	Rating     int
	Comment    string
}

type FeedbackReceipt struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	FeedbackID string `json:"feedback_id"`
}

// AcknowledgeFeedback validates feedback and acknowledges it. Feedback is not
// stored.
func AcknowledgeFeedback(input FeedbackInput) (*FeedbackReceipt, error) {
	responseID := strings.TrimSpace(input.ResponseID)
	if responseID == "" || input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidInput
	}
	return &FeedbackReceipt{
		Success:    true,
		Message:    "Feedback received, thank you!",
		FeedbackID: "fb_" + responseID,
	}, nil
}
