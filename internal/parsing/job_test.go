package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawJob = `Senior Backend Engineer
Acme Corp is hiring.

Requirements
- 5+ years of Go
- PostgreSQL experience`

func TestParseJobAIEnhanced(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{
				"title": "Senior Backend Engineer",
				"experience_level": "senior",
				"requirements": ["5+ years of Go"],
				"skills": [
					{"name": "Go", "required": true, "category": "technical"},
					{"name": "go", "required": false},
					{"name": "PostgreSQL", "required": true, "category": "technical"}
				]
			}`, nil
		},
	}
	agent := NewAgent(mockClient)

	job, degraded := agent.ParseJob(context.Background(), rawJob)

	assert.False(t, degraded)
	assert.Equal(t, types.MethodAIEnhanced, job.Metadata.ParsingMethod)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, types.LevelSenior, job.ExperienceLevel)

	// Duplicate "go" collapses into the required "Go" entry
	require.Len(t, job.Skills, 2)
	assert.Equal(t, "Go", job.Skills[0].Name)
	assert.True(t, job.Skills[0].Required)

	// Keywords are derived from skills when the model omits them
	assert.Equal(t, []string{"Go", "PostgreSQL"}, job.Keywords)
}

func TestParseJobKeepsModelKeywords(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"title": "Engineer", "keywords": ["Go", "go", "Docker", ""]}`, nil
		},
	}
	agent := NewAgent(mockClient)

	job, degraded := agent.ParseJob(context.Background(), rawJob)

	assert.False(t, degraded)
	assert.Equal(t, []string{"Go", "Docker"}, job.Keywords)
}

func TestParseJobGatewayFailureDegrades(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("api unavailable")
		},
	}
	agent := NewAgent(mockClient)

	job, degraded := agent.ParseJob(context.Background(), rawJob)

	assert.True(t, degraded)
	assert.Equal(t, types.MethodRegexBasic, job.Metadata.ParsingMethod)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Len(t, job.Requirements, 2)
}

func TestParseJobSchemaFailureDegrades(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"company": "Acme"}`, nil
		},
	}
	agent := NewAgent(mockClient)

	job, degraded := agent.ParseJob(context.Background(), rawJob)

	assert.True(t, degraded, "reply without a title falls back to the extractor")
	assert.Equal(t, types.MethodRegexBasic, job.Metadata.ParsingMethod)
}

func TestParseJobNilClient(t *testing.T) {
	agent := NewAgent(nil)

	job, degraded := agent.ParseJob(context.Background(), rawJob)

	assert.True(t, degraded)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.NotEmpty(t, job.Skills)
}
