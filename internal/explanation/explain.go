// Package explanation turns the numeric outputs of the pipeline into
// narrative explanations, prioritized action items, and a competitive
// positioning summary. Every language-model sub-call has a static,
// score-derived fallback, so the agent can never fail outright.
package explanation

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/prompts"
	"github.com/jonathan/resume-scanner/internal/types"
)

// Agent synthesizes the explanation layer. A nil client produces the static
// fallback narrative.
type Agent struct {
	client llm.Client
}

// NewAgent creates an explanation agent backed by the given gateway client.
func NewAgent(client llm.Client) *Agent {
	return &Agent{client: client}
}

// Inputs bundles the upstream results the explanation consumes
type Inputs struct {
	Job   *types.ParsedJob
	Match *types.KeywordMatchResult
	Score *types.ATSScoreResult
	Gaps  *types.SkillGapResult
}

// Explain produces the narrative layer. It never returns an error.
func (a *Agent) Explain(ctx context.Context, in Inputs) *types.ScanExplanation {
	result := staticExplanation(in)

	if a.client != nil {
		a.enrich(ctx, result, in)
	}

	return result
}

// explainReply is the JSON contract for the explain-scan prompt
type explainReply struct {
	ScoreExplanation string `json:"score_explanation"`
	KeywordImpact    string `json:"keyword_impact"`
	GapSummary       string `json:"gap_summary"`
	Insights         []struct {
		Priority  int    `json:"priority"`
		Action    string `json:"action"`
		Timeframe string `json:"timeframe"`
		Effort    string `json:"effort"`
	} `json:"insights"`
	NextSteps struct {
		Immediate []string `json:"immediate"`
		ShortTerm []string `json:"short_term"`
		LongTerm  []string `json:"long_term"`
	} `json:"next_steps"`
	Positioning string `json:"positioning"`
}

func (a *Agent) enrich(ctx context.Context, result *types.ScanExplanation, in Inputs) {
	missingSkills := make([]string, len(in.Gaps.MissingSkills))
	for i, ms := range in.Gaps.MissingSkills {
		missingSkills[i] = ms.Name
	}

	template := prompts.MustGet("explanation.json", "explain-scan")
	prompt := prompts.Format(template, map[string]string{
		"JobTitle":            in.Job.Title,
		"OverallScore":        fmt.Sprint(in.Score.OverallScore),
		"KeywordMatch":        fmt.Sprint(in.Score.KeywordMatch),
		"SkillAlignment":      fmt.Sprint(in.Score.SkillAlignment),
		"ExperienceRelevance": fmt.Sprint(in.Score.ExperienceRelevance),
		"EducationMatch":      fmt.Sprint(in.Score.EducationMatch),
		"ATSCompliance":       fmt.Sprint(in.Score.ATSCompliance),
		"MissingKeywords":     strings.Join(in.Match.MissingKeywords, "\n"),
		"MissingSkills":       strings.Join(missingSkills, "\n"),
	})

	reply, err := a.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		log.Printf("explanation degraded to static fallback: %v", err)
		return
	}

	var parsed explainReply
	if err := llm.DecodeJSON(reply, &parsed); err != nil {
		log.Printf("explanation degraded to static fallback: %v", err)
		return
	}

	// Per-field substitution: keep the static fallback for anything the
	// model left empty.
	if parsed.ScoreExplanation != "" {
		result.ScoreExplanation = parsed.ScoreExplanation
	}
	if parsed.KeywordImpact != "" {
		result.KeywordImpact = parsed.KeywordImpact
	}
	if parsed.GapSummary != "" {
		result.GapSummary = parsed.GapSummary
	}
	if parsed.Positioning != "" {
		result.Positioning = parsed.Positioning
	}
	if len(parsed.Insights) > 0 {
		insights := make([]types.ActionableInsight, 0, len(parsed.Insights))
		for i, ins := range parsed.Insights {
			priority := ins.Priority
			if priority <= 0 {
				priority = i + 1
			}
			insights = append(insights, types.ActionableInsight{
				Priority:  priority,
				Action:    ins.Action,
				Timeframe: normalizeTimeframe(ins.Timeframe),
				Effort:    normalizeEffort(ins.Effort),
			})
		}
		result.Insights = insights
	}
	if len(parsed.NextSteps.Immediate)+len(parsed.NextSteps.ShortTerm)+len(parsed.NextSteps.LongTerm) > 0 {
		result.NextSteps = types.NextSteps{
			Immediate: parsed.NextSteps.Immediate,
			ShortTerm: parsed.NextSteps.ShortTerm,
			LongTerm:  parsed.NextSteps.LongTerm,
		}
	}
}

// staticExplanation derives the whole narrative from scores alone.
func staticExplanation(in Inputs) *types.ScanExplanation {
	score := in.Score
	result := &types.ScanExplanation{
		Sections: []types.SectionBreakdown{
			sectionBreakdown("Keyword match", score.KeywordMatch),
			sectionBreakdown("Skill alignment", score.SkillAlignment),
			sectionBreakdown("Experience relevance", score.ExperienceRelevance),
			sectionBreakdown("Education match", score.EducationMatch),
			sectionBreakdown("ATS compliance", score.ATSCompliance),
		},
	}

	result.ScoreExplanation = fmt.Sprintf(
		"Your resume scores %d out of 100 for this role. Keyword coverage (%d) and skill alignment (%d) carry the most weight in that number.",
		score.OverallScore, score.KeywordMatch, score.SkillAlignment)

	if n := len(in.Match.MissingKeywords); n > 0 {
		result.KeywordImpact = fmt.Sprintf(
			"%d required keywords are absent from your resume; screening systems weight these heavily, so adding the ones you genuinely cover would raise your score fastest.", n)
	} else {
		result.KeywordImpact = "Your resume covers every required keyword for this posting."
	}

	if n := len(in.Gaps.MissingSkills); n > 0 {
		result.GapSummary = fmt.Sprintf("%d required skills are missing outright; see the gap analysis for how much each matters.", n)
	} else {
		result.GapSummary = "No required skills are missing; focus on depth rather than breadth."
	}

	result.Insights = staticInsights(in)
	result.NextSteps = staticNextSteps(in)
	result.Positioning = staticPositioning(score.OverallScore)
	return result
}

func sectionBreakdown(name string, score int) types.SectionBreakdown {
	status := types.StatusForScore(score)
	narrative := map[types.SectionStatus]string{
		types.StatusExcellent:        "This area is a clear strength.",
		types.StatusGood:             "This area is solid with minor room to improve.",
		types.StatusNeedsImprovement: "This area is holding your score back.",
		types.StatusCritical:         "This area needs attention before applying.",
	}[status]
	return types.SectionBreakdown{Name: name, Score: score, Status: status, Narrative: narrative}
}

// staticInsights emits the lowest-scoring areas as prioritized actions.
func staticInsights(in Inputs) []types.ActionableInsight {
	type area struct {
		score  int
		action string
		effort string
	}
	areas := []area{
		{in.Score.KeywordMatch, "Work the job's required keywords into the roles where you actually used them.", "low"},
		{in.Score.SkillAlignment, "Mirror the job's skill names in your skills section.", "low"},
		{in.Score.ATSCompliance, "Fix structural gaps: contact details and a description for every role.", "low"},
		{in.Score.ExperienceRelevance, "Reorder and reword experience to foreground the most relevant roles.", "medium"},
		{in.Score.EducationMatch, "Make your degree and field of study explicit.", "low"},
	}

	var insights []types.ActionableInsight
	priority := 1
	for _, a := range areas {
		if a.score >= 70 {
			continue
		}
		timeframe := "immediate"
		if a.effort == "medium" {
			timeframe = "short-term"
		}
		insights = append(insights, types.ActionableInsight{
			Priority:  priority,
			Action:    a.action,
			Timeframe: timeframe,
			Effort:    a.effort,
		})
		priority++
	}
	if len(insights) == 0 {
		insights = append(insights, types.ActionableInsight{
			Priority: 1, Action: "Tailor your summary to this specific posting.", Timeframe: "immediate", Effort: "low",
		})
	}
	return insights
}

func staticNextSteps(in Inputs) types.NextSteps {
	steps := types.NextSteps{
		Immediate: []string{"Add the missing required keywords you can honestly claim."},
		ShortTerm: []string{"Rewrite your strongest role's bullets around the job's responsibilities."},
		LongTerm:  []string{"Close the largest skill gap with a course or project you can cite."},
	}
	if len(in.Match.MissingKeywords) == 0 {
		steps.Immediate = []string{"Submit with confidence; your keyword coverage is complete."}
	}
	return steps
}

func staticPositioning(overall int) string {
	switch {
	case overall >= 85:
		return "You are likely in the top tier of applicants for this role; apply as-is and prepare for interviews."
	case overall >= 70:
		return "You are a competitive applicant; a focused revision would move you into the top tier."
	case overall >= 50:
		return "You are a borderline match on paper; targeted keyword and skill changes matter more than volume of applications here."
	default:
		return "On paper this is a stretch role; consider closing the critical gaps before applying, or target adjacent roles."
	}
}

func normalizeTimeframe(raw string) string {
	switch raw {
	case "immediate", "short-term", "long-term":
		return raw
	default:
		return "short-term"
	}
}

func normalizeEffort(raw string) string {
	switch raw {
	case "low", "medium", "high":
		return raw
	default:
		return "medium"
	}
}
