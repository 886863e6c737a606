// Package pipeline provides the high-level orchestration for a resume scan:
// parsing, matching, scoring, gap analysis, rewriting, and explanation, with
// a bounded parse cache and a graceful-degradation failure policy.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-scanner/internal/explanation"
	"github.com/jonathan/resume-scanner/internal/gaps"
	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/matching"
	"github.com/jonathan/resume-scanner/internal/parsing"
	"github.com/jonathan/resume-scanner/internal/rewriting"
	"github.com/jonathan/resume-scanner/internal/scoring"
	"github.com/jonathan/resume-scanner/internal/types"
)

// Stage names, in execution order
const (
	StageParseResume      = "parse_resume"
	StageParseJob         = "parse_job"
	StageMatchKeywords    = "match_keywords"
	StageScore            = "score"
	StageAnalyzeGaps      = "analyze_gaps"
	StageGenerateRewrites = "generate_rewrites"
	StageExplain          = "explain"
)

// ValidationError reports rejected input; it is always user-visible.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ProgressEvent represents a progress update during scan execution
type ProgressEvent struct {
	Stage   string            `json:"stage"`
	Status  types.StageStatus `json:"status"`
	Message string            `json:"message,omitempty"`
}

// ProgressCallback is called as each stage finishes
type ProgressCallback func(event ProgressEvent)

// Options holds construction parameters for a Runner
type Options struct {
	Client     llm.Client // nil disables every language-model path
	CacheSize  int
	OnProgress ProgressCallback
}

// Runner sequences the scan stages and owns the process-wide parse cache.
// A Runner is safe for concurrent scans.
type Runner struct {
	client     llm.Client
	parser     *parsing.Agent
	matcher    *matching.Matcher
	scorer     *scoring.Scorer
	analyzer   *gaps.Analyzer
	rewriter   *rewriting.Agent
	explainer  *explanation.Agent
	cache      *parseCache
	onProgress ProgressCallback
}

// NewRunner creates a Runner wired to the given gateway client.
func NewRunner(opts Options) *Runner {
	return &Runner{
		client:     opts.Client,
		parser:     parsing.NewAgent(opts.Client),
		matcher:    matching.NewMatcher(opts.Client),
		scorer:     scoring.NewScorer(opts.Client),
		analyzer:   gaps.NewAnalyzer(opts.Client),
		rewriter:   rewriting.NewAgent(opts.Client),
		explainer:  explanation.NewAgent(opts.Client),
		cache:      newParseCache(opts.CacheSize),
		onProgress: opts.OnProgress,
	}
}

// Scan runs the full pipeline over raw resume and job text. Empty input is
// the only hard error; every later stage either succeeds or degrades, and the
// result records per-stage status.
func (r *Runner) Scan(ctx context.Context, resumeText, jobText, resumeLabel string) (*types.ScanResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &ValidationError{Field: "resumeText", Message: "resume text must not be empty"}
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, &ValidationError{Field: "jobText", Message: "job text must not be empty"}
	}

	result := &types.ScanResult{
		ScanID:    uuid.New(),
		CreatedAt: time.Now().UTC(),
	}

	// Parsing stages go through the content-hash cache: byte-identical
	// input within one process parses once.
	r.report(result, StageParseResume, func() (types.StageStatus, string) {
		resume, degraded := r.parseResumeCached(ctx, resumeText, resumeLabel)
		result.Resume = resume
		if degraded {
			return types.StageDegraded, "language-model path unavailable; used field extractor"
		}
		return types.StageOK, ""
	})

	r.report(result, StageParseJob, func() (types.StageStatus, string) {
		job, degraded := r.parseJobCached(ctx, jobText)
		result.Job = job
		if degraded {
			return types.StageDegraded, "language-model path unavailable; used field extractor"
		}
		return types.StageOK, ""
	})

	r.report(result, StageMatchKeywords, func() (types.StageStatus, string) {
		result.Match = r.matcher.Match(ctx, result.Resume, result.Job)
		if len(result.Match.SemanticMatches) == 0 && r.client != nil {
			return types.StageDegraded, "no semantic matches available"
		}
		return types.StageOK, ""
	})

	r.report(result, StageScore, func() (types.StageStatus, string) {
		// The numeric computation never fails; only narrative insights
		// may have fallen back to the canned set.
		result.Score = r.scorer.Score(ctx, result.Resume, result.Job)
		return types.StageOK, ""
	})

	r.report(result, StageAnalyzeGaps, func() (types.StageStatus, string) {
		result.Gaps = r.analyzer.Analyze(ctx, result.Resume, result.Job)
		return types.StageOK, ""
	})

	r.report(result, StageGenerateRewrites, func() (types.StageStatus, string) {
		result.Rewrites = r.rewriter.Rewrite(ctx, result.Resume, result.Job)
		if len(result.Rewrites.Suggestions) == 0 {
			return types.StageDegraded, "no rewrite suggestions generated"
		}
		return types.StageOK, ""
	})

	r.report(result, StageExplain, func() (types.StageStatus, string) {
		result.Explanation = r.explainer.Explain(ctx, explanation.Inputs{
			Job:   result.Job,
			Match: result.Match,
			Score: result.Score,
			Gaps:  result.Gaps,
		})
		return types.StageOK, ""
	})

	return result, nil
}

// report runs one stage, records its report, and emits progress.
func (r *Runner) report(result *types.ScanResult, stage string, run func() (types.StageStatus, string)) {
	start := time.Now()
	status, detail := run()
	result.Stages = append(result.Stages, types.StageReport{
		Stage:    stage,
		Status:   status,
		Detail:   detail,
		Duration: time.Since(start).Milliseconds(),
	})
	if r.onProgress != nil {
		r.onProgress(ProgressEvent{Stage: stage, Status: status, Message: detail})
	}
}

type parsedResumeEntry struct {
	resume   *types.ParsedResume
	degraded bool
}

type parsedJobEntry struct {
	job      *types.ParsedJob
	degraded bool
}

func (r *Runner) parseResumeCached(ctx context.Context, text, label string) (*types.ParsedResume, bool) {
	value, _ := r.cache.GetOrParse(ContentKey("resume", text), func() any {
		resume, degraded := r.parser.ParseResume(ctx, text, label)
		return parsedResumeEntry{resume: resume, degraded: degraded}
	})
	entry := value.(parsedResumeEntry)
	return entry.resume, entry.degraded
}

func (r *Runner) parseJobCached(ctx context.Context, text string) (*types.ParsedJob, bool) {
	value, _ := r.cache.GetOrParse(ContentKey("job", text), func() any {
		job, degraded := r.parser.ParseJob(ctx, text)
		return parsedJobEntry{job: job, degraded: degraded}
	})
	entry := value.(parsedJobEntry)
	return entry.job, entry.degraded
}

// CacheLen reports the number of cached parse entries (for observability).
func (r *Runner) CacheLen() int {
	return r.cache.Len()
}
