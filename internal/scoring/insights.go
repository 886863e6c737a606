package scoring

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/prompts"
	"github.com/jonathan/resume-scanner/internal/types"
)

// insightsReply is the JSON contract for the insight prompt
type insightsReply struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// addInsights fills the free-text fields of a score result. The language
// model is best-effort: any failure substitutes the canned threshold set.
func (s *Scorer) addInsights(ctx context.Context, result *types.ATSScoreResult, job *types.ParsedJob) {
	if s.client != nil {
		if ok := s.llmInsights(ctx, result, job); ok {
			return
		}
	}
	fallbackInsights(result)
}

func (s *Scorer) llmInsights(ctx context.Context, result *types.ATSScoreResult, job *types.ParsedJob) bool {
	template := prompts.MustGet("scoring.json", "score-insights")
	prompt := prompts.Format(template, map[string]string{
		"KeywordMatch":        fmt.Sprint(result.KeywordMatch),
		"SkillAlignment":      fmt.Sprint(result.SkillAlignment),
		"ExperienceRelevance": fmt.Sprint(result.ExperienceRelevance),
		"EducationMatch":      fmt.Sprint(result.EducationMatch),
		"ATSCompliance":       fmt.Sprint(result.ATSCompliance),
		"OverallScore":        fmt.Sprint(result.OverallScore),
		"JobTitle":            job.Title,
	})

	reply, err := s.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("score insights degraded to canned set: %v", err)
		return false
	}

	var parsed insightsReply
	if err := llm.DecodeJSON(reply, &parsed); err != nil {
		log.Printf("score insights degraded to canned set: %v", err)
		return false
	}
	if len(parsed.Strengths) == 0 && len(parsed.Weaknesses) == 0 && len(parsed.Recommendations) == 0 {
		return false
	}

	result.Strengths = parsed.Strengths
	result.Weaknesses = parsed.Weaknesses
	result.Recommendations = parsed.Recommendations
	return true
}

// fallbackInsights derives a canned recommendation set from score thresholds.
func fallbackInsights(result *types.ATSScoreResult) {
	subScores := []struct {
		name  string
		score int
		good  string
		bad   string
	}{
		{"keyword coverage", result.KeywordMatch,
			"Your resume already carries most of the keywords this job screens for.",
			"Add the job's required keywords where your experience genuinely covers them."},
		{"skill alignment", result.SkillAlignment,
			"Your listed skills line up well with what this job asks for.",
			"List the job's core skills explicitly in your skills section."},
		{"experience relevance", result.ExperienceRelevance,
			"Your experience history fits the seniority this role expects.",
			"Emphasize the work history most relevant to this role's seniority."},
		{"education match", result.EducationMatch,
			"Your education meets what the posting asks for.",
			"State your degree and field of study clearly if you have them."},
		{"ATS formatting", result.ATSCompliance,
			"Your resume structure is complete enough for automated screening.",
			"Fill structural gaps: contact details, skills list, and a description for every role."},
	}

	for _, sub := range subScores {
		switch {
		case sub.score >= 75:
			result.Strengths = append(result.Strengths, sub.good)
		case sub.score < 50:
			result.Weaknesses = append(result.Weaknesses, sub.bad)
			result.Recommendations = append(result.Recommendations, sub.bad)
		}
	}

	if len(result.Recommendations) == 0 {
		result.Recommendations = append(result.Recommendations,
			"Tailor the wording of your most recent role to mirror the job description.")
	}
}
