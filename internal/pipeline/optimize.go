package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/prompts"
	"github.com/jonathan/resume-scanner/internal/types"
)

// OptimizeResult is the output of the standalone optimize operation: the
// scorer plus rewrite logic applied to one section set.
type OptimizeResult struct {
	OptimizationType string                    `json:"optimization_type"`
	OptimizedText    string                    `json:"optimized_text"`
	Suggestions      []types.RewriteSuggestion `json:"suggestions"`
	ScoreBefore      int                       `json:"score_before"`
	ScoreAfter       int                       `json:"score_after"`
}

// Optimize runs the scorer and rewrite agent outside a full scan. The
// optimizationType restricts which sections are rewritten: one of the
// section names, or "full" (also the default) for all of them.
func (r *Runner) Optimize(ctx context.Context, resumeText, jobText, optimizationType string) (*OptimizeResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &ValidationError{Field: "resumeText", Message: "resume text must not be empty"}
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, &ValidationError{Field: "jobText", Message: "job text must not be empty"}
	}
	if optimizationType == "" {
		optimizationType = "full"
	}
	if !validOptimizationType(optimizationType) {
		return nil, &ValidationError{Field: "optimizationType",
			Message: fmt.Sprintf("unknown optimization type %q", optimizationType)}
	}

	resume, _ := r.parseResumeCached(ctx, resumeText, "")
	job, _ := r.parseJobCached(ctx, jobText)

	before := r.scorer.Score(ctx, resume, job)

	rewrites := r.rewriter.Rewrite(ctx, restrictSections(resume, optimizationType), job)

	result := &OptimizeResult{
		OptimizationType: optimizationType,
		Suggestions:      rewrites.Suggestions,
		OptimizedText:    renderOptimizedText(rewrites.Suggestions),
		ScoreBefore:      before.OverallScore,
	}
	result.ScoreAfter = clamp(before.OverallScore + rewrites.Improvement.ATS)
	return result, nil
}

func validOptimizationType(t string) bool {
	switch types.ResumeSection(t) {
	case types.SectionSummary, types.SectionExperience, types.SectionSkills,
		types.SectionEducation, types.SectionProjects:
		return true
	}
	return t == "full"
}

// restrictSections returns a shallow copy of the resume keeping only the
// sections the optimization type targets.
func restrictSections(resume *types.ParsedResume, optimizationType string) *types.ParsedResume {
	if optimizationType == "full" {
		return resume
	}

	restricted := &types.ParsedResume{Metadata: resume.Metadata, Personal: resume.Personal}
	switch types.ResumeSection(optimizationType) {
	case types.SectionSummary:
		restricted.Summary = resume.Summary
	case types.SectionExperience:
		restricted.Experience = resume.Experience
	case types.SectionSkills:
		restricted.Skills = resume.Skills
	case types.SectionEducation:
		restricted.Education = resume.Education
	case types.SectionProjects:
		restricted.Projects = resume.Projects
	}
	return restricted
}

func renderOptimizedText(suggestions []types.RewriteSuggestion) string {
	var sb strings.Builder
	for i, s := range suggestions {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		header := strings.ToUpper(string(s.Section))
		if s.EntryLabel != "" {
			header += " — " + s.EntryLabel
		}
		sb.WriteString(header)
		sb.WriteString("\n")
		sb.WriteString(s.RewrittenText)
	}
	return sb.String()
}

// JobAnalysis is the output of the standalone analyze-job operation.
type JobAnalysis struct {
	Job                   *types.ParsedJob      `json:"job"`
	RequiredSkills        []types.JobSkill      `json:"required_skills"`
	OptionalSkills        []types.JobSkill      `json:"optional_skills"`
	ExperienceLevel       types.ExperienceLevel `json:"experience_level"`
	Salary                *types.SalaryRange    `json:"salary,omitempty"`
	CultureSignals        []string              `json:"culture_signals,omitempty"`
	Competitiveness       types.MarketSignal    `json:"competitiveness"`
	CompetitivenessReason string                `json:"competitiveness_reason,omitempty"`
}

// AnalyzeJob parses a job posting and derives a standalone analysis.
func (r *Runner) AnalyzeJob(ctx context.Context, jobText string) (*JobAnalysis, error) {
	if strings.TrimSpace(jobText) == "" {
		return nil, &ValidationError{Field: "jobText", Message: "job text must not be empty"}
	}

	job, _ := r.parseJobCached(ctx, jobText)

	analysis := &JobAnalysis{
		Job:             job,
		ExperienceLevel: job.ExperienceLevel,
		Salary:          job.Salary,
		Competitiveness: staticCompetitiveness(job),
	}
	for _, s := range job.Skills {
		if s.Required {
			analysis.RequiredSkills = append(analysis.RequiredSkills, s)
		} else {
			analysis.OptionalSkills = append(analysis.OptionalSkills, s)
		}
	}

	r.enrichJobAnalysis(ctx, analysis, jobText)
	return analysis, nil
}

// staticCompetitiveness estimates the hiring bar from requirement volume.
func staticCompetitiveness(job *types.ParsedJob) types.MarketSignal {
	required := len(job.RequiredSkills())
	switch {
	case required >= 8 || job.ExperienceLevel == types.LevelPrincipal:
		return types.SignalHigh
	case required >= 4 || job.ExperienceLevel == types.LevelSenior:
		return types.SignalMedium
	default:
		return types.SignalLow
	}
}

type cultureReply struct {
	CultureSignals        []string `json:"culture_signals"`
	Competitiveness       string   `json:"competitiveness"`
	CompetitivenessReason string   `json:"competitiveness_reason"`
}

func (r *Runner) enrichJobAnalysis(ctx context.Context, analysis *JobAnalysis, jobText string) {
	if r.client == nil {
		return
	}

	template := prompts.MustGet("analysis.json", "job-culture-signals")
	prompt := prompts.Format(template, map[string]string{"JobText": jobText})

	reply, err := r.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("job culture analysis degraded to static fallback: %v", err)
		return
	}

	var parsed cultureReply
	if err := llm.DecodeJSON(reply, &parsed); err != nil {
		log.Printf("job culture analysis degraded to static fallback: %v", err)
		return
	}

	analysis.CultureSignals = parsed.CultureSignals
	if parsed.Competitiveness != "" {
		analysis.Competitiveness = types.NormalizeMarketSignal(parsed.Competitiveness)
		analysis.CompetitivenessReason = parsed.CompetitivenessReason
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
