package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-composer/internal/profiles"
)

func sampleSnapshot() profiles.Snapshot {
	end := "2021-06-30"
	return profiles.Snapshot{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Summary:  "Engineer <backend> & data",
		Experiences: []profiles.Experience{
			{CompanyName: "Analytical Engines", JobTitle: "Engineer", StartDate: "2019-01-01", EndDate: &end, Description: "Built the engine"},
		},
		Skills:         []profiles.Skill{{Name: "Go"}},
		Education:      []profiles.Education{},
		Projects:       []profiles.Project{},
		Certifications: []profiles.Certification{},
	}
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	a, err := BuildPrompt(sampleSnapshot(), "Go role")
	require.NoError(t, err)
	b, err := BuildPrompt(sampleSnapshot(), "Go role")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildPromptEmbedsProfileAndJobDescription(t *testing.T) {
	prompt, err := BuildPrompt(sampleSnapshot(), "We need a Go engineer.\nRemote.")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, "**Goal:** Generate tailored resume sections"))
	assert.Contains(t, prompt, "```json\n{\n  \"full_name\": \"Ada Lovelace\",")
	assert.Contains(t, prompt, `"summary": "Engineer <backend> & data"`)
	assert.Contains(t, prompt, `"end_date": "2021-06-30"`)
	assert.Contains(t, prompt, "```text\nWe need a Go engineer.\nRemote.\n```")
	assert.Contains(t, prompt, "STAR method")
	assert.Contains(t, prompt, "## Professional Summary")
	assert.True(t, strings.HasSuffix(prompt, "Do not include greetings or introductory phrases.\n"))

	profileAt := strings.Index(prompt, "**User Profile:**")
	jdAt := strings.Index(prompt, "**Job Description:**")
	instrAt := strings.Index(prompt, "**Instructions:**")
	assert.True(t, profileAt < jdAt && jdAt < instrAt)
}

func TestBuildPromptDoesNotExpandPlaceholdersInInput(t *testing.T) {
	prompt, err := BuildPrompt(sampleSnapshot(), "literal {{PROFILE}} text")
	require.NoError(t, err)
	assert.Contains(t, prompt, "literal {{PROFILE}} text")
	assert.Equal(t, 1, strings.Count(prompt, `"full_name"`))
}
