package rag

import "strings"

type QueryType string

const (
	QueryComparison     QueryType = "comparison"
	QueryRanking        QueryType = "ranking"
	QueryAnalytics      QueryType = "analytics"
	QueryIdentification QueryType = "identification"
	QueryTemporal       QueryType = "temporal"
	QueryGeneral        QueryType = "general"
)

// Classifier maps a question to the intent that shapes retrieval and prompting.
type Classifier interface {
	Classify(query string) QueryType
}

type keywordRule struct {
	queryType QueryType
	keywords  []string
}

// keywordRules are checked in order; the first rule with a match wins.
var keywordRules = []keywordRule{
	{QueryComparison, []string{"compare", "difference", "versus", "vs", "against"}},
	{QueryRanking, []string{"top", "best", "highest", "lowest", "rank", "worst"}},
	{QueryAnalytics, []string{"average", "mean", "median", "analyze", "trend", "pattern"}},
	{QueryIdentification, []string{"who", "student", "name", "person"}},
	{QueryTemporal, []string{"when", "date", "time", "schedule"}},
}

// KeywordClassifier matches keywords as substrings of the lower-cased query,
// so "ranked" counts as "rank" and "stop" counts as "top".
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(query string) QueryType {
	return Classify(query)
}

func Classify(query string) QueryType {
	q := strings.ToLower(query)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.queryType
			}
		}
	}
	return QueryGeneral
}
