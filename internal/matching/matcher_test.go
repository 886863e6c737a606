package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func TestMatchVacuous(t *testing.T) {
	matcher := NewMatcher(nil)

	result := matcher.Match(context.Background(), &types.ParsedResume{}, &types.ParsedJob{})

	require.NotNil(t, result)
	assert.Equal(t, 100, result.MatchScore, "a job with no required skills matches vacuously")
	assert.Empty(t, result.MissingKeywords)
}

func TestMatchExactNormalizedForms(t *testing.T) {
	matcher := NewMatcher(nil)
	resume := &types.ParsedResume{
		Skills: []types.Skill{{Name: "node js"}, {Name: "Go"}},
	}
	job := &types.ParsedJob{
		Skills: []types.JobSkill{
			{Name: "Node.js", Required: true, Category: types.CategoryTechnical},
			{Name: "Go", Required: true, Category: types.CategoryTechnical},
		},
	}

	result := matcher.Match(context.Background(), resume, job)

	require.Len(t, result.ExactMatches, 2)
	for _, em := range result.ExactMatches {
		assert.True(t, em.Matched, "%s should match on its normalized form", em.Keyword)
	}
	assert.Empty(t, result.MissingKeywords)
	assert.Equal(t, 100, result.CategoryScores[types.CategoryTechnical])
	assert.Equal(t, 100, result.MatchScore, "a complete exact match scores full marks")
}

func TestMatchMissingKeywords(t *testing.T) {
	matcher := NewMatcher(nil)
	resume := &types.ParsedResume{
		Skills: []types.Skill{{Name: "Go"}},
	}
	job := &types.ParsedJob{
		Skills: []types.JobSkill{
			{Name: "Go", Required: true, Category: types.CategoryTechnical},
			{Name: "Rust", Required: true, Category: types.CategoryTechnical},
		},
		Keywords: []string{"Go", "Rust"},
	}

	result := matcher.Match(context.Background(), resume, job)

	assert.Equal(t, []string{"Rust"}, result.MissingKeywords)
	assert.Empty(t, result.AdditionalKeywords, "Go appears in the job keywords")
	// 40% * 0.5 exact + 0 semantic + 25% * 0.5 category
	assert.Equal(t, 33, result.MatchScore)
}

func TestMatchAdditionalKeywords(t *testing.T) {
	matcher := NewMatcher(nil)
	resume := &types.ParsedResume{
		Skills: []types.Skill{{Name: "Terraform"}},
	}
	job := &types.ParsedJob{
		Skills:   []types.JobSkill{{Name: "Go", Required: true}},
		Keywords: []string{"Go"},
	}

	result := matcher.Match(context.Background(), resume, job)

	assert.Equal(t, []string{"Terraform"}, result.AdditionalKeywords)
}

func TestMatchProjectTechnologiesCount(t *testing.T) {
	matcher := NewMatcher(nil)
	resume := &types.ParsedResume{
		Projects: []types.Project{
			{Name: "side project", Technologies: []string{"Redis"}},
		},
	}
	job := &types.ParsedJob{
		Skills: []types.JobSkill{{Name: "Redis", Required: true}},
	}

	result := matcher.Match(context.Background(), resume, job)

	require.Len(t, result.ExactMatches, 1)
	assert.True(t, result.ExactMatches[0].Matched, "project technologies count as resume terms")
}

func TestMatchSemanticFromClient(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"matches": [{"resume_term": "Postgres", "job_term": "relational databases", "similarity": 80, "category": "technical"}]}`, nil
		},
	}
	matcher := NewMatcher(mockClient)
	resume := &types.ParsedResume{
		Skills: []types.Skill{{Name: "Postgres"}},
	}
	job := &types.ParsedJob{
		Skills: []types.JobSkill{{Name: "relational databases", Required: true, Category: types.CategoryTechnical}},
	}

	result := matcher.Match(context.Background(), resume, job)

	require.Len(t, result.SemanticMatches, 1)
	assert.Equal(t, 80, result.SemanticMatches[0].Similarity)
	assert.Empty(t, result.MissingKeywords, "semantically matched terms are not missing")
	// 40% * 0 exact + 35% * 0.8 semantic + 25% * 0 category
	assert.Equal(t, 28, result.MatchScore)
}

func TestMatchSemanticFailureDegrades(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("api unavailable")
		},
	}
	matcher := NewMatcher(mockClient)
	resume := &types.ParsedResume{
		Skills: []types.Skill{{Name: "Go"}},
	}
	job := &types.ParsedJob{
		Skills: []types.JobSkill{
			{Name: "Go", Required: true},
			{Name: "Rust", Required: true},
		},
	}

	result := matcher.Match(context.Background(), resume, job)

	require.NotNil(t, result)
	assert.Empty(t, result.SemanticMatches)
	assert.Equal(t, []string{"Rust"}, result.MissingKeywords)
}

func TestMatchScoreRange(t *testing.T) {
	matcher := NewMatcher(nil)
	resumes := []*types.ParsedResume{
		{},
		{Skills: []types.Skill{{Name: "Go"}, {Name: "Python"}, {Name: "SQL"}}},
	}
	jobs := []*types.ParsedJob{
		{},
		{Skills: []types.JobSkill{
			{Name: "Go", Required: true, Category: types.CategoryTechnical},
			{Name: "Communication", Required: true, Category: types.CategorySoft},
		}},
	}

	for _, resume := range resumes {
		for _, job := range jobs {
			result := matcher.Match(context.Background(), resume, job)
			assert.GreaterOrEqual(t, result.MatchScore, 0)
			assert.LessOrEqual(t, result.MatchScore, 100)
			for _, score := range result.CategoryScores {
				assert.GreaterOrEqual(t, score, 0)
				assert.LessOrEqual(t, score, 100)
			}
		}
	}
}
