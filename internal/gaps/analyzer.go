// Package gaps identifies missing or weak skills relative to a job, classifies
// their importance, and produces improvement guidance. Every language-model
// enrichment is best-effort with a deterministic static fallback.
package gaps

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/parsing"
	"github.com/jonathan/resume-scanner/internal/prompts"
	"github.com/jonathan/resume-scanner/internal/types"
)

// skillLevelRank orders proficiency levels for improvement-area detection
var skillLevelRank = map[types.SkillLevel]int{
	types.LevelBeginner:     1,
	types.LevelIntermediate: 2,
	types.LevelAdvanced:     3,
	types.LevelExpert:       4,
}

// Analyzer computes skill gap results. A nil client keeps the deterministic
// base result without enrichment.
type Analyzer struct {
	client llm.Client
}

// NewAnalyzer creates an analyzer backed by the given gateway client.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze produces the full gap result. It never returns an error: the
// deterministic base is always available and enrichment failures leave it
// untouched.
func (a *Analyzer) Analyze(ctx context.Context, resume *types.ParsedResume, job *types.ParsedJob) *types.SkillGapResult {
	result := a.baseResult(resume, job)

	if a.client != nil {
		a.enrichMissingSkills(ctx, result, job)
		a.enrichOverview(ctx, result, resume, job)
	}

	return result
}

// baseResult builds the deterministic gap analysis: set arithmetic over
// normalized skill names plus static guidance.
func (a *Analyzer) baseResult(resume *types.ParsedResume, job *types.ParsedJob) *types.SkillGapResult {
	resumeByKey := make(map[string]types.Skill, len(resume.Skills))
	for _, s := range resume.Skills {
		resumeByKey[parsing.NormalizeKeyword(s.Name)] = s
	}

	result := &types.SkillGapResult{}

	for _, jobSkill := range job.Skills {
		key := parsing.NormalizeKeyword(jobSkill.Name)
		resumeSkill, present := resumeByKey[key]

		if !present {
			if jobSkill.Required {
				result.MissingSkills = append(result.MissingSkills, types.MissingSkill{
					Name:       jobSkill.Name,
					Importance: types.ImportanceImportant,
					Category:   jobSkill.Category,
				})
			}
			continue
		}

		relevance := 60
		if jobSkill.Required {
			relevance = 85
		}
		result.Strengths = append(result.Strengths, types.SkillStrength{
			Name:      resumeSkill.Name,
			Relevance: relevance,
		})

		if jobSkill.Level != "" && skillLevelRank[resumeSkill.Level] < skillLevelRank[jobSkill.Level] {
			result.ImprovementAreas = append(result.ImprovementAreas, types.ImprovementArea{
				Skill:        resumeSkill.Name,
				CurrentLevel: resumeSkill.Level,
				TargetLevel:  jobSkill.Level,
			})
		}
	}

	result.CareerAdvice = staticCareerAdvice(result)
	result.MarketAlignment = staticMarketAlignment(result)
	return result
}

func staticCareerAdvice(result *types.SkillGapResult) []types.CareerAdvice {
	shortTerm := []string{"Close the most frequently requested missing skill first."}
	if len(result.MissingSkills) == 0 {
		shortTerm = []string{"Keep your strongest skills prominent near the top of the resume."}
	}
	return []types.CareerAdvice{
		{Tier: "short-term", Advice: shortTerm},
		{Tier: "medium-term", Advice: []string{"Build a small project that demonstrates the job's core skill set end to end."}},
		{Tier: "long-term", Advice: []string{"Deepen the skills that recur across postings in this role family, not just this one."}},
	}
}

func staticMarketAlignment(result *types.SkillGapResult) types.MarketAlignment {
	demand := types.SignalMedium
	if len(result.Strengths) > len(result.MissingSkills) {
		demand = types.SignalHigh
	}
	return types.MarketAlignment{
		Demand:       demand,
		SalaryImpact: types.SignalMedium,
		Growth:       types.SignalMedium,
		Summary: fmt.Sprintf("%d of your skills are relevant to this role; %d required skills are missing.",
			len(result.Strengths), len(result.MissingSkills)),
	}
}

// enrichmentReply is the JSON contract for the missing-skill prompt
type enrichmentReply struct {
	Skills []struct {
		Name       string   `json:"name"`
		Importance string   `json:"importance"`
		Category   string   `json:"category"`
		Rationale  string   `json:"rationale"`
		Resources  []string `json:"resources"`
	} `json:"skills"`
}

// enrichMissingSkills asks the gateway to classify and explain each missing
// skill. On failure the deterministic defaults stand.
func (a *Analyzer) enrichMissingSkills(ctx context.Context, result *types.SkillGapResult, job *types.ParsedJob) {
	if len(result.MissingSkills) == 0 {
		return
	}

	names := make([]string, len(result.MissingSkills))
	for i, ms := range result.MissingSkills {
		names[i] = ms.Name
	}

	reply, err := a.generate(ctx, "gaps.json", "missing-skill-enrichment", map[string]string{
		"JobTitle":      job.Title,
		"MissingSkills": strings.Join(names, "\n"),
	})
	if err != nil {
		return
	}

	var parsed enrichmentReply
	if err := llm.DecodeJSON(reply, &parsed); err != nil {
		return
	}

	byKey := make(map[string]int, len(result.MissingSkills))
	for i, ms := range result.MissingSkills {
		byKey[parsing.NormalizeKeyword(ms.Name)] = i
	}
	for _, enriched := range parsed.Skills {
		i, ok := byKey[parsing.NormalizeKeyword(enriched.Name)]
		if !ok {
			continue
		}
		result.MissingSkills[i].Importance = types.NormalizeImportance(enriched.Importance)
		result.MissingSkills[i].Category = types.NormalizeSkillCategory(enriched.Category)
		result.MissingSkills[i].Rationale = enriched.Rationale
		result.MissingSkills[i].Resources = enriched.Resources
	}
}

// overviewReply is the JSON contract for the gap-overview prompt
type overviewReply struct {
	Strengths []struct {
		Name      string `json:"name"`
		Relevance int    `json:"relevance"`
		Evidence  string `json:"evidence"`
	} `json:"strengths"`
	ImprovementAreas []struct {
		Skill        string   `json:"skill"`
		CurrentLevel string   `json:"current_level"`
		TargetLevel  string   `json:"target_level"`
		Actions      []string `json:"actions"`
	} `json:"improvement_areas"`
	CareerAdvice []struct {
		Tier   string   `json:"tier"`
		Advice []string `json:"advice"`
	} `json:"career_advice"`
	MarketAlignment struct {
		Demand       string `json:"demand"`
		SalaryImpact string `json:"salary_impact"`
		Growth       string `json:"growth"`
		Summary      string `json:"summary"`
	} `json:"market_alignment"`
}

// enrichOverview replaces the static strengths/advice/market sections with
// gateway output when the call succeeds and the reply is usable.
func (a *Analyzer) enrichOverview(ctx context.Context, result *types.SkillGapResult, resume *types.ParsedResume, job *types.ParsedJob) {
	matched := make([]string, len(result.Strengths))
	for i, s := range result.Strengths {
		matched[i] = s.Name
	}
	missing := make([]string, len(result.MissingSkills))
	for i, ms := range result.MissingSkills {
		missing[i] = ms.Name
	}
	areas := make([]string, len(result.ImprovementAreas))
	for i, ia := range result.ImprovementAreas {
		areas[i] = fmt.Sprintf("%s (%s -> %s)", ia.Skill, ia.CurrentLevel, ia.TargetLevel)
	}

	reply, err := a.generate(ctx, "gaps.json", "gap-overview", map[string]string{
		"JobTitle":         job.Title,
		"MatchedSkills":    strings.Join(matched, "\n"),
		"MissingSkills":    strings.Join(missing, "\n"),
		"ImprovementAreas": strings.Join(areas, "\n"),
	})
	if err != nil {
		return
	}

	var parsed overviewReply
	if err := llm.DecodeJSON(reply, &parsed); err != nil {
		return
	}

	if len(parsed.Strengths) > 0 {
		strengths := make([]types.SkillStrength, 0, len(parsed.Strengths))
		for _, st := range parsed.Strengths {
			strengths = append(strengths, types.SkillStrength{
				Name:      st.Name,
				Relevance: clamp(st.Relevance),
				Evidence:  st.Evidence,
			})
		}
		result.Strengths = strengths
	}
	if len(parsed.ImprovementAreas) > 0 {
		areas := make([]types.ImprovementArea, 0, len(parsed.ImprovementAreas))
		for _, ia := range parsed.ImprovementAreas {
			areas = append(areas, types.ImprovementArea{
				Skill:        ia.Skill,
				CurrentLevel: types.NormalizeSkillLevel(ia.CurrentLevel),
				TargetLevel:  types.NormalizeSkillLevel(ia.TargetLevel),
				Actions:      ia.Actions,
			})
		}
		result.ImprovementAreas = areas
	}
	if len(parsed.CareerAdvice) > 0 {
		advice := make([]types.CareerAdvice, 0, len(parsed.CareerAdvice))
		for _, ca := range parsed.CareerAdvice {
			advice = append(advice, types.CareerAdvice{Tier: ca.Tier, Advice: ca.Advice})
		}
		result.CareerAdvice = advice
	}
	if parsed.MarketAlignment.Summary != "" {
		result.MarketAlignment = types.MarketAlignment{
			Demand:       types.NormalizeMarketSignal(parsed.MarketAlignment.Demand),
			SalaryImpact: types.NormalizeMarketSignal(parsed.MarketAlignment.SalaryImpact),
			Growth:       types.NormalizeMarketSignal(parsed.MarketAlignment.Growth),
			Summary:      parsed.MarketAlignment.Summary,
		}
	}
}

func (a *Analyzer) generate(ctx context.Context, file, key string, data map[string]string) (string, error) {
	template, err := prompts.Get(file, key)
	if err != nil {
		return "", err
	}
	reply, err := a.client.GenerateJSON(ctx, prompts.Format(template, data), llm.TierAdvanced)
	if err != nil {
		log.Printf("gap enrichment %s degraded to static fallback: %v", key, err)
		return "", err
	}
	return reply, nil
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
