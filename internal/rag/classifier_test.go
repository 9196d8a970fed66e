package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		query string
		want  QueryType
	}{
		{"Compare the top students", QueryComparison},
		{"Math vs Physics", QueryComparison},
		{"Who are the top 5 students in math?", QueryRanking},
		{"Which class had the LOWEST scores", QueryRanking},
		{"What is the average score in Biology", QueryAnalytics},
		{"Show the grade trend for HK2", QueryAnalytics},
		{"Who is enrolled in Chemistry", QueryIdentification},
		{"List every student", QueryIdentification},
		{"When does the semester begin", QueryTemporal},
		{"What is the exam schedule", QueryTemporal},
		{"Tell me about Chemistry", QueryGeneral},
		{"", QueryGeneral},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.query))
		})
	}
}

func TestClassify_MatchesInsideWords(t *testing.T) {
	assert.Equal(t, QueryRanking, Classify("please stop"))
	assert.Equal(t, QueryRanking, Classify("how are they ranked"))
}

func TestKeywordClassifier(t *testing.T) {
	var c Classifier = KeywordClassifier{}
	assert.Equal(t, QueryAnalytics, c.Classify("median grade"))
}
