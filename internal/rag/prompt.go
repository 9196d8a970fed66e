package rag

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleTeacher     UserRole = "teacher"
	RoleStudent     UserRole = "student"
	RoleAdmin       UserRole = "admin"
	RoleUnspecified UserRole = ""
)

// ParseUserRole accepts the role names case-insensitively; anything else is
// RoleUnspecified.
func ParseUserRole(raw string) UserRole {
	switch UserRole(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleTeacher:
		return RoleTeacher
	case RoleStudent:
		return RoleStudent
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUnspecified
	}
}

const InsufficientInformation = "I don't have enough information in my current dataset to answer this question accurately."

const freshnessLayout = "2006-01-02 15:04:05"

const basePersona = `You are an academic assistant for a student management system. Your name is EduBot.

Follow these guidelines:
1. Be precise and concise in your answers
2. When presenting data about students, format it clearly with bullet points or tables
3. Maintain privacy by not sharing sensitive student information unnecessarily
4. If you're uncertain about an answer, acknowledge the limitations of your knowledge
5. Focus on being helpful and informative rather than conversational
6. Only provide information that is directly supported by the context provided
7. Do not make up or hallucinate information that isn't in the provided context`

var roleBlocks = map[UserRole]string{
	RoleTeacher: `Since you're assisting a teacher:
- You can provide detailed academic analytics
- Suggest interventions for struggling students
- Offer comparative analysis across classes and subjects
- Highlight exceptional performance and concerning patterns`,
	RoleStudent: `Since you're assisting a student:
- Focus on their personal performance
- Provide encouraging feedback
- Suggest resources for improvement in weaker areas
- Maintain a supportive and motivational tone`,
	RoleAdmin: `Since you're assisting an administrator:
- Provide high-level analytics across all students
- Focus on system-wide patterns and trends
- Highlight areas that may need policy intervention
- Maintain a factual, data-driven approach`,
}

// fewShotExamples exist only for comparison, ranking and analytics.
var fewShotExamples = map[QueryType]string{
	QueryComparison: `Example Q: Compare the performance of students in Math vs Physics this semester.
Example A: Based on the data provided:

Math class:
- Average score: 82.5
- Highest score: 98 (by Jane Smith)
- Number of students: 24

Physics class:
- Average score: 79.3
- Highest score: 95 (by John Doe)
- Number of students: 22

The Math class has a slightly higher average score by 3.2 points, and the highest individual score is also 3 points higher than in Physics.`,
	QueryRanking: `Example Q: Who are the top 3 students in Computer Science?
Example A: Based on the data provided, the top 3 students in Computer Science are:

1. Maria Garcia - 97.5%
2. James Wilson - 95.2%
3. Sarah Johnson - 94.8%

This ranking is based on their latest test scores in the Computer Science course.`,
	QueryAnalytics: `Example Q: What's the average performance in Biology this semester?
Example A: Based on the data provided:

The average score in Biology this semester is 78.6%.
- Highest score: 94% (by Alex Wong)
- Lowest score: 62% (by Chris Martin)
- Median score: 79%
- Standard deviation: 8.3

25% of students scored above 85%, while 15% scored below 70%.`,
}

var reportingStyles = map[QueryType]string{
	QueryComparison: `When comparing students or subjects:
1. Present a clear comparison using bullet points or tables
2. Highlight key differences and similarities
3. Avoid making judgments about which is "better" - just present facts
4. Include specific metrics that are relevant for comparison`,
	QueryRanking: `When providing rankings:
1. Clearly state the criteria used for ranking
2. Present a numbered list with scores where available
3. Explain any ties or special considerations
4. Note if the ranking is based on limited data`,
	QueryAnalytics: `When providing analytics:
1. Include relevant statistical measures (average, median, range)
2. Highlight any notable outliers or patterns
3. Provide context for the numbers (is this good/typical/concerning?)
4. Mention any limitations in the analysis`,
}

// SystemPrompt is the base persona, the role block for role, and the few-shot
// exemplar for queryType when one exists.
func SystemPrompt(role UserRole, queryType QueryType) string {
	var sb strings.Builder
	sb.WriteString(basePersona)
	if block, ok := roleBlocks[role]; ok {
		sb.WriteString("\n\n")
		sb.WriteString(block)
	}
	if example, ok := fewShotExamples[queryType]; ok {
		sb.WriteString("\n\nHere's an example of how to answer this type of question:\n")
		sb.WriteString(example)
	}
	return sb.String()
}

// UserPrompt embeds the question and context, the answer-from-context rule,
// the reporting style for queryType and, unless lastUpdate is zero, a note on
// when the data was last refreshed.
func UserPrompt(query, context string, queryType QueryType, lastUpdate time.Time) string {
	var sb strings.Builder
	sb.WriteString("Based on the following academic database information, please answer this question:\n\n")
	sb.WriteString("Question: ")
	sb.WriteString(query)
	sb.WriteString("\n\nContext Information:\n")
	sb.WriteString(context)
	sb.WriteString("\n\nRemember: Only use the information provided in the context. If you can't find the answer in the context, say \"")
	sb.WriteString(InsufficientInformation)
	sb.WriteString("\"")

	if style, ok := reportingStyles[queryType]; ok {
		sb.WriteString("\n\n")
		sb.WriteString(style)
	}
	if !lastUpdate.IsZero() {
		sb.WriteString("\n\nNote: The database was last updated on ")
		sb.WriteString(lastUpdate.Format(freshnessLayout))
		sb.WriteString(". Consider this when providing time-sensitive information.")
	}
	return sb.String()
}
