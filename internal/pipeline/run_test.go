package pipeline

import (
	"context"
	"testing"

	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 555 0100

Summary
Backend engineer with six years building Go services.

Experience
Backend Engineer, Acme Corp (2019-01 - 2023-01)
- Built Go microservices handling 10k requests per second
- Led migration to PostgreSQL

Education
Bachelor of Science in Computer Science, State University

Skills
Go, PostgreSQL, Docker, Kubernetes, Python
`

const sampleJob = `Senior Backend Engineer

We are hiring a Senior Backend Engineer.

Requirements
- 5+ years of experience with Go
- Strong PostgreSQL knowledge
- Experience with Kubernetes
`

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	Calls            int
}

func (m *MockLLMClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.Calls++
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func TestScanEmptyInput(t *testing.T) {
	runner := NewRunner(Options{})

	_, err := runner.Scan(context.Background(), "", sampleJob, "")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "resumeText", validationErr.Field)

	_, err = runner.Scan(context.Background(), sampleResume, "   \n ", "")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "jobText", validationErr.Field)
}

func TestScanWithoutClient(t *testing.T) {
	runner := NewRunner(Options{})

	result, err := runner.Scan(context.Background(), sampleResume, sampleJob, "resume.txt")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEqual(t, "", result.ScanID.String())
	assert.False(t, result.CreatedAt.IsZero())

	require.NotNil(t, result.Resume)
	assert.Equal(t, types.MethodRegexBasic, result.Resume.Metadata.ParsingMethod)
	require.NotNil(t, result.Job)
	require.NotNil(t, result.Match)
	require.NotNil(t, result.Score)
	require.NotNil(t, result.Gaps)
	require.NotNil(t, result.Rewrites)
	require.NotNil(t, result.Explanation)

	assert.GreaterOrEqual(t, result.Score.OverallScore, 0)
	assert.LessOrEqual(t, result.Score.OverallScore, 100)
}

func TestScanStageReports(t *testing.T) {
	runner := NewRunner(Options{})

	result, err := runner.Scan(context.Background(), sampleResume, sampleJob, "")
	require.NoError(t, err)

	expectedStages := []string{
		StageParseResume, StageParseJob, StageMatchKeywords,
		StageScore, StageAnalyzeGaps, StageGenerateRewrites, StageExplain,
	}
	require.Len(t, result.Stages, len(expectedStages))
	for i, stage := range result.Stages {
		assert.Equal(t, expectedStages[i], stage.Stage)
		assert.NotEqual(t, types.StageFailed, stage.Status, "no stage hard-fails without a client")
	}

	// Without a client, parsing runs on the field extractor
	assert.Equal(t, types.StageDegraded, result.Stages[0].Status)
	assert.Equal(t, types.StageDegraded, result.Stages[1].Status)
}

func TestScanProgressEvents(t *testing.T) {
	var events []ProgressEvent
	runner := NewRunner(Options{
		OnProgress: func(event ProgressEvent) { events = append(events, event) },
	})

	_, err := runner.Scan(context.Background(), sampleResume, sampleJob, "")
	require.NoError(t, err)

	require.Len(t, events, 7)
	assert.Equal(t, StageParseResume, events[0].Stage)
	assert.Equal(t, StageExplain, events[6].Stage)
}

func TestScanCachesParses(t *testing.T) {
	runner := NewRunner(Options{})

	_, err := runner.Scan(context.Background(), sampleResume, sampleJob, "")
	require.NoError(t, err)
	assert.Equal(t, 2, runner.CacheLen(), "one resume entry and one job entry")

	_, err = runner.Scan(context.Background(), sampleResume, sampleJob, "")
	require.NoError(t, err)
	assert.Equal(t, 2, runner.CacheLen(), "identical input adds no cache entries")
}

func TestScanCacheAvoidsDuplicateGatewayCalls(t *testing.T) {
	mockClient := &MockLLMClient{} // "{}" replies force fallbacks everywhere
	runner := NewRunner(Options{Client: mockClient})

	_, err := runner.Scan(context.Background(), sampleResume, sampleJob, "")
	require.NoError(t, err)
	firstScanCalls := mockClient.Calls

	_, err = runner.Scan(context.Background(), sampleResume, sampleJob, "")
	require.NoError(t, err)
	secondScanCalls := mockClient.Calls - firstScanCalls

	assert.Equal(t, firstScanCalls-2, secondScanCalls,
		"the second scan skips exactly the two parse calls")
}

func TestOptimizeValidation(t *testing.T) {
	runner := NewRunner(Options{})

	_, err := runner.Optimize(context.Background(), "", sampleJob, "full")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = runner.Optimize(context.Background(), sampleResume, sampleJob, "cover-letter")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "optimizationType", validationErr.Field)
}

func TestOptimizeWithoutClient(t *testing.T) {
	runner := NewRunner(Options{})

	result, err := runner.Optimize(context.Background(), sampleResume, sampleJob, "")
	require.NoError(t, err)

	assert.Equal(t, "full", result.OptimizationType, "empty type defaults to full")
	assert.Empty(t, result.Suggestions, "rewrites require a language model")
	assert.Equal(t, result.ScoreBefore, result.ScoreAfter)
}

func TestOptimizeSectionType(t *testing.T) {
	runner := NewRunner(Options{})

	result, err := runner.Optimize(context.Background(), sampleResume, sampleJob, "skills")
	require.NoError(t, err)
	assert.Equal(t, "skills", result.OptimizationType)
}

func TestAnalyzeJobWithoutClient(t *testing.T) {
	runner := NewRunner(Options{})

	analysis, err := runner.AnalyzeJob(context.Background(), sampleJob)
	require.NoError(t, err)
	require.NotNil(t, analysis.Job)

	assert.NotEmpty(t, analysis.RequiredSkills)
	assert.Contains(t, []types.MarketSignal{types.SignalLow, types.SignalMedium, types.SignalHigh},
		analysis.Competitiveness)
	assert.Empty(t, analysis.CultureSignals, "culture signals require a language model")
}

func TestAnalyzeJobEmptyInput(t *testing.T) {
	runner := NewRunner(Options{})

	_, err := runner.AnalyzeJob(context.Background(), " ")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}
