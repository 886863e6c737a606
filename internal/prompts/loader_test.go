package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("parsing.json", "parse-resume")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "{{.ResumeText}}")
}

func TestGetMissingKey(t *testing.T) {
	_, err := Get("parsing.json", "no-such-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-prompt")
}

func TestGetMissingFile(t *testing.T) {
	_, err := Get("missing.json", "parse-resume")
	assert.Error(t, err)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("parsing.json", "no-such-prompt")
	})
}

func TestAllPromptsResolve(t *testing.T) {
	refs := []struct {
		file string
		key  string
	}{
		{"parsing.json", "parse-resume"},
		{"parsing.json", "parse-job"},
		{"matching.json", "semantic-matches"},
		{"scoring.json", "score-insights"},
		{"gaps.json", "missing-skill-enrichment"},
		{"gaps.json", "gap-overview"},
		{"rewriting.json", "rewrite-section"},
		{"explanation.json", "explain-scan"},
		{"analysis.json", "job-culture-signals"},
	}
	for _, ref := range refs {
		t.Run(ref.file+"/"+ref.key, func(t *testing.T) {
			prompt, err := Get(ref.file, ref.key)
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestFormat(t *testing.T) {
	template := "Parse this resume:\n{{.ResumeText}}\nLabel: {{.Label}}"
	result := Format(template, map[string]string{
		"ResumeText": "Jane Doe, engineer",
		"Label":      "resume.txt",
	})

	assert.Equal(t, "Parse this resume:\nJane Doe, engineer\nLabel: resume.txt", result)
	assert.False(t, strings.Contains(result, "{{"))
}

func TestFormatLeavesUnknownPlaceholders(t *testing.T) {
	result := Format("{{.Known}} and {{.Unknown}}", map[string]string{"Known": "value"})
	assert.Equal(t, "value and {{.Unknown}}", result)
}
