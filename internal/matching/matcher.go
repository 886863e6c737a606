// Package matching computes exact and semantic matches between a parsed
// resume and a parsed job, plus per-category match scores.
package matching

import (
	"context"
	"log"
	"math"
	"strings"

	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/parsing"
	"github.com/jonathan/resume-scanner/internal/prompts"
	"github.com/jonathan/resume-scanner/internal/types"
)

// Weights for the overall match score
const (
	exactWeight    = 0.40
	semanticWeight = 0.35
	categoryWeight = 0.25
)

// categoryWeights spread the category contribution across the four categories
var categoryWeights = map[types.SkillCategory]float64{
	types.CategoryTechnical: 0.4,
	types.CategorySoft:      0.3,
	types.CategoryLanguage:  0.2,
	types.CategoryTool:      0.1,
}

// Matcher computes keyword and skill matches. A nil client disables the
// semantic path; semantic matches then default to an empty list.
type Matcher struct {
	client llm.Client
}

// NewMatcher creates a matcher backed by the given gateway client.
func NewMatcher(client llm.Client) *Matcher {
	return &Matcher{client: client}
}

// Match compares a resume against a job and produces the full match result.
// It never returns an error: semantic matching failures degrade to an empty
// match list.
func (m *Matcher) Match(ctx context.Context, resume *types.ParsedResume, job *types.ParsedJob) *types.KeywordMatchResult {
	resumeTerms := resumeTermSet(resume)
	required := job.RequiredSkills()

	result := &types.KeywordMatchResult{
		CategoryScores: make(map[types.SkillCategory]int),
	}

	// Exact matching on normalized keyword forms
	exactRatio := 1.0 // vacuous-match convention for jobs with no required skills
	matchedKeys := make(map[string]bool)
	if len(required) > 0 {
		matched := 0
		for _, skill := range required {
			key := parsing.NormalizeKeyword(skill.Name)
			hit := resumeTerms[key]
			result.ExactMatches = append(result.ExactMatches, types.ExactMatch{
				Keyword: skill.Name,
				Matched: hit,
			})
			if hit {
				matched++
				matchedKeys[key] = true
			}
		}
		exactRatio = float64(matched) / float64(len(required))
	}

	// Semantic matching for required terms the exact pass missed
	result.SemanticMatches = m.semanticMatches(ctx, resume, job, matchedKeys)
	semanticallyMatched := make(map[string]bool, len(result.SemanticMatches))
	for _, sm := range result.SemanticMatches {
		semanticallyMatched[parsing.NormalizeKeyword(sm.JobTerm)] = true
	}

	// Missing and additional keyword lists
	jobKeys := make(map[string]bool, len(job.Keywords))
	for _, kw := range job.Keywords {
		jobKeys[parsing.NormalizeKeyword(kw)] = true
	}
	for _, skill := range required {
		key := parsing.NormalizeKeyword(skill.Name)
		if !matchedKeys[key] && !semanticallyMatched[key] {
			result.MissingKeywords = append(result.MissingKeywords, skill.Name)
		}
	}
	for _, skill := range resume.Skills {
		if !jobKeys[parsing.NormalizeKeyword(skill.Name)] {
			result.AdditionalKeywords = append(result.AdditionalKeywords, skill.Name)
		}
	}

	// Per-category required-skill overlap
	categoryComponent := m.categoryScores(result, required, resumeTerms)

	// Overall: 40% exact + 35% mean semantic similarity + 25% category.
	// When the exact pass left nothing for semantic matching to do, the
	// semantic component is vacuously full, so a complete exact match and an
	// empty job both score 100.
	semanticMean := 0.0
	switch {
	case len(required) == len(matchedKeys):
		semanticMean = 1.0
	case len(result.SemanticMatches) > 0:
		sum := 0
		for _, sm := range result.SemanticMatches {
			sum += sm.Similarity
		}
		semanticMean = float64(sum) / float64(len(result.SemanticMatches)) / 100.0
	}

	overall := exactWeight*exactRatio + semanticWeight*semanticMean + categoryWeight*categoryComponent
	result.MatchScore = clampScore(overall * 100)

	return result
}

// categoryScores fills result.CategoryScores and returns the weighted
// category component in [0,1].
func (m *Matcher) categoryScores(result *types.KeywordMatchResult, required []types.JobSkill, resumeTerms map[string]bool) float64 {
	type tally struct{ matched, total int }
	byCategory := make(map[types.SkillCategory]*tally)
	for _, skill := range required {
		t := byCategory[skill.Category]
		if t == nil {
			t = &tally{}
			byCategory[skill.Category] = t
		}
		t.total++
		if resumeTerms[parsing.NormalizeKeyword(skill.Name)] {
			t.matched++
		}
	}

	if len(byCategory) == 0 {
		return 1.0 // vacuous
	}

	weighted := 0.0
	weightSum := 0.0
	for category, t := range byCategory {
		ratio := float64(t.matched) / float64(t.total)
		result.CategoryScores[category] = clampScore(ratio * 100)
		w := categoryWeights[category]
		weighted += w * ratio
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return weighted / weightSum
}

// semanticReply is the strict JSON contract for the semantic matching prompt
type semanticReply struct {
	Matches []struct {
		ResumeTerm string `json:"resume_term"`
		JobTerm    string `json:"job_term"`
		Similarity int    `json:"similarity"`
		Category   string `json:"category"`
	} `json:"matches"`
}

// semanticMatches asks the gateway for non-literal term pairs. Any failure
// returns an empty list, degrading the match score but never crashing.
func (m *Matcher) semanticMatches(ctx context.Context, resume *types.ParsedResume, job *types.ParsedJob, alreadyMatched map[string]bool) []types.SemanticMatch {
	if m.client == nil {
		return nil
	}

	var jobTerms []string
	for _, skill := range job.Skills {
		if !alreadyMatched[parsing.NormalizeKeyword(skill.Name)] {
			jobTerms = append(jobTerms, skill.Name)
		}
	}
	resumeTerms := resumeTermList(resume)
	if len(jobTerms) == 0 || len(resumeTerms) == 0 {
		return nil
	}

	template := prompts.MustGet("matching.json", "semantic-matches")
	prompt := prompts.Format(template, map[string]string{
		"ResumeTerms": strings.Join(resumeTerms, "\n"),
		"JobTerms":    strings.Join(jobTerms, "\n"),
	})

	reply, err := m.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("semantic matching degraded to empty list: %v", err)
		return nil
	}

	var parsed semanticReply
	if err := llm.DecodeJSON(reply, &parsed); err != nil {
		log.Printf("semantic matching degraded to empty list: %v", err)
		return nil
	}

	matches := make([]types.SemanticMatch, 0, len(parsed.Matches))
	for _, pair := range parsed.Matches {
		if pair.ResumeTerm == "" || pair.JobTerm == "" {
			continue
		}
		matches = append(matches, types.SemanticMatch{
			ResumeTerm: pair.ResumeTerm,
			JobTerm:    pair.JobTerm,
			Similarity: clampScore(float64(pair.Similarity)),
			Category:   types.NormalizeSkillCategory(pair.Category),
		})
	}
	return matches
}

// resumeTermSet collects the normalized searchable terms of a resume:
// skill names, project technologies, and certification names.
func resumeTermSet(resume *types.ParsedResume) map[string]bool {
	set := make(map[string]bool)
	for _, term := range resumeTermList(resume) {
		set[parsing.NormalizeKeyword(term)] = true
	}
	return set
}

func resumeTermList(resume *types.ParsedResume) []string {
	var terms []string
	for _, s := range resume.Skills {
		terms = append(terms, s.Name)
	}
	for _, p := range resume.Projects {
		terms = append(terms, p.Technologies...)
	}
	for _, c := range resume.Certifications {
		terms = append(terms, c.Name)
	}
	return terms
}

func clampScore(v float64) int {
	rounded := int(math.Round(v))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
