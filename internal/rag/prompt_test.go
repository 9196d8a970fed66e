package rag

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseUserRole(t *testing.T) {
	assert.Equal(t, RoleTeacher, ParseUserRole("Teacher"))
	assert.Equal(t, RoleStudent, ParseUserRole(" student "))
	assert.Equal(t, RoleAdmin, ParseUserRole("ADMIN"))
	assert.Equal(t, RoleUnspecified, ParseUserRole("parent"))
	assert.Equal(t, RoleUnspecified, ParseUserRole(""))
}

func TestSystemPrompt_RoleBlocks(t *testing.T) {
	base := SystemPrompt(RoleUnspecified, QueryGeneral)
	assert.True(t, strings.HasPrefix(base, "You are an academic assistant"))
	assert.Contains(t, base, "Your name is EduBot.")
	assert.NotContains(t, base, "Since you're assisting")
	assert.NotContains(t, base, "Here's an example")

	assert.Contains(t, SystemPrompt(RoleTeacher, QueryGeneral), "Since you're assisting a teacher:")
	assert.Contains(t, SystemPrompt(RoleStudent, QueryGeneral), "Since you're assisting a student:")
	assert.Contains(t, SystemPrompt(RoleAdmin, QueryGeneral), "Since you're assisting an administrator:")
}

func TestSystemPrompt_FewShotOnlyForSomeTypes(t *testing.T) {
	assert.Contains(t, SystemPrompt(RoleTeacher, QueryRanking), "Who are the top 3 students in Computer Science?")
	assert.Contains(t, SystemPrompt(RoleTeacher, QueryComparison), "Math vs Physics")
	assert.Contains(t, SystemPrompt(RoleTeacher, QueryAnalytics), "average performance in Biology")

	for _, qt := range []QueryType{QueryIdentification, QueryTemporal, QueryGeneral} {
		assert.NotContains(t, SystemPrompt(RoleTeacher, qt), "Example Q:")
	}
}

func TestUserPrompt(t *testing.T) {
	updated := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	out := UserPrompt("Who are the top 5 students in math?", "ctx body", QueryRanking, updated)

	assert.Contains(t, out, "Question: Who are the top 5 students in math?")
	assert.Contains(t, out, "Context Information:\nctx body")
	assert.Contains(t, out, InsufficientInformation)
	assert.Contains(t, out, "When providing rankings:")
	assert.Contains(t, out, "Note: The database was last updated on 2024-03-05 14:07:09.")
}

func TestUserPrompt_WithoutBuildOrStyle(t *testing.T) {
	out := UserPrompt("hello", EmptyContext, QueryGeneral, time.Time{})

	assert.Contains(t, out, EmptyContext)
	assert.NotContains(t, out, "last updated")
	assert.NotContains(t, out, "When providing")
	assert.NotContains(t, out, "When comparing")
}
