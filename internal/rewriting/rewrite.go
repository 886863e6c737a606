// Package rewriting proposes section-level resume rewrites with before/after
// score deltas, then partitions them deterministically into priority rewrites
// and quick wins.
package rewriting

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/prompts"
	"github.com/jonathan/resume-scanner/internal/types"
)

// Partition thresholds for rewrite suggestions
const (
	priorityThreshold = 20 // improvement >= 20 is a priority rewrite
	quickWinThreshold = 10 // 10 <= improvement < 20 is a quick win
	maxPriority       = 3
	maxQuickWins      = 5
)

// Agent generates rewrite suggestions. A nil client yields an empty
// suggestion set (and all-zero improvement metrics), not an error.
type Agent struct {
	client llm.Client
}

// NewAgent creates a rewrite agent backed by the given gateway client.
func NewAgent(client llm.Client) *Agent {
	return &Agent{client: client}
}

// Rewrite proposes rewrites for every populated resume section and
// aggregates them. It never returns an error; sections whose gateway call
// fails are simply skipped.
func (a *Agent) Rewrite(ctx context.Context, resume *types.ParsedResume, job *types.ParsedJob) *types.RewriteResult {
	suggestions := a.collectSuggestions(ctx, resume, job)

	result := &types.RewriteResult{Suggestions: suggestions}
	result.PriorityRewrites, result.QuickWins = Partition(suggestions)
	result.SectionAnalysis = sectionAnalysis(suggestions)
	result.Improvement = improvementMetrics(suggestions)
	return result
}

func (a *Agent) collectSuggestions(ctx context.Context, resume *types.ParsedResume, job *types.ParsedJob) []types.RewriteSuggestion {
	if a.client == nil {
		return nil
	}

	var suggestions []types.RewriteSuggestion
	add := func(section types.ResumeSection, label, original string) {
		if strings.TrimSpace(original) == "" {
			return
		}
		if s := a.rewriteSection(ctx, section, label, original, job); s != nil {
			suggestions = append(suggestions, *s)
		}
	}

	add(types.SectionSummary, "", resume.Summary)
	for _, exp := range resume.Experience {
		label := strings.TrimSpace(exp.Company + " — " + exp.Position)
		text := exp.Description
		if len(exp.Achievements) > 0 {
			text = strings.TrimSpace(text + "\n" + strings.Join(exp.Achievements, "\n"))
		}
		add(types.SectionExperience, label, text)
	}
	add(types.SectionSkills, "", skillsText(resume))
	for _, edu := range resume.Education {
		add(types.SectionEducation, edu.Institution, educationText(edu))
	}
	for _, project := range resume.Projects {
		add(types.SectionProjects, project.Name, project.Description)
	}

	return suggestions
}

// sectionReply is the JSON contract for the rewrite prompt
type sectionReply struct {
	RewrittenText string   `json:"rewritten_text"`
	Rationale     string   `json:"rationale"`
	BeforeScore   int      `json:"before_score"`
	AfterScore    int      `json:"after_score"`
	KeywordsAdded []string `json:"keywords_added"`
	VerbsAdded    []string `json:"verbs_added"`
	MetricsAdded  []string `json:"metrics_added"`
}

func (a *Agent) rewriteSection(ctx context.Context, section types.ResumeSection, label, original string, job *types.ParsedJob) *types.RewriteSuggestion {
	template := prompts.MustGet("rewriting.json", "rewrite-section")
	prompt := prompts.Format(template, map[string]string{
		"Section":      string(section),
		"JobTitle":     job.Title,
		"Keywords":     strings.Join(job.Keywords, ", "),
		"OriginalText": original,
	})

	reply, err := a.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		log.Printf("rewrite of %s section skipped: %v", section, err)
		return nil
	}

	var parsed sectionReply
	if err := llm.DecodeJSON(reply, &parsed); err != nil {
		log.Printf("rewrite of %s section skipped: %v", section, err)
		return nil
	}
	if strings.TrimSpace(parsed.RewrittenText) == "" {
		return nil
	}

	before := clamp(parsed.BeforeScore)
	after := clamp(parsed.AfterScore)
	return &types.RewriteSuggestion{
		Section:       section,
		EntryLabel:    label,
		OriginalText:  original,
		RewrittenText: parsed.RewrittenText,
		Rationale:     parsed.Rationale,
		Scores: types.ScoreDelta{
			Before:      before,
			After:       after,
			Improvement: after - before,
		},
		KeywordsAdded: parsed.KeywordsAdded,
		VerbsAdded:    parsed.VerbsAdded,
		MetricsAdded:  parsed.MetricsAdded,
	}
}

// Partition splits suggestions into priority rewrites (improvement >= 20,
// descending, top 3) and quick wins (10 <= improvement < 20, descending,
// top 5). The input slice is not modified.
func Partition(suggestions []types.RewriteSuggestion) (priority, quickWins []types.RewriteSuggestion) {
	sorted := make([]types.RewriteSuggestion, len(suggestions))
	copy(sorted, suggestions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Scores.Improvement > sorted[j].Scores.Improvement
	})

	for _, s := range sorted {
		switch {
		case s.Scores.Improvement >= priorityThreshold:
			if len(priority) < maxPriority {
				priority = append(priority, s)
			}
		case s.Scores.Improvement >= quickWinThreshold:
			if len(quickWins) < maxQuickWins {
				quickWins = append(quickWins, s)
			}
		}
	}
	return priority, quickWins
}

// sectionAnalysis averages the post-rewrite score per section.
func sectionAnalysis(suggestions []types.RewriteSuggestion) []types.SectionAnalysis {
	type tally struct{ sum, count int }
	byCandidate := make(map[types.ResumeSection]*tally)
	var order []types.ResumeSection
	for _, s := range suggestions {
		t := byCandidate[s.Section]
		if t == nil {
			t = &tally{}
			byCandidate[s.Section] = t
			order = append(order, s.Section)
		}
		t.sum += s.Scores.After
		t.count++
	}

	analysis := make([]types.SectionAnalysis, 0, len(order))
	for _, section := range order {
		t := byCandidate[section]
		analysis = append(analysis, types.SectionAnalysis{
			Section:      section,
			AverageScore: int(math.Round(float64(t.sum) / float64(t.count))),
			Suggestions:  t.count,
		})
	}
	return analysis
}

// improvementMetrics computes simple means and ratios over the suggestion
// set. An empty set yields all zeros.
func improvementMetrics(suggestions []types.RewriteSuggestion) types.ImprovementMetrics {
	if len(suggestions) == 0 {
		return types.ImprovementMetrics{}
	}

	improvementSum := 0
	withVerbs := 0
	withMetrics := 0
	for _, s := range suggestions {
		improvementSum += s.Scores.Improvement
		if len(s.VerbsAdded) > 0 {
			withVerbs++
		}
		if len(s.MetricsAdded) > 0 {
			withMetrics++
		}
	}

	n := float64(len(suggestions))
	return types.ImprovementMetrics{
		ATS:         int(math.Round(float64(improvementSum) / n)),
		Readability: int(math.Round(float64(withVerbs) / n * 100)),
		Impact:      int(math.Round(float64(withMetrics) / n * 100)),
	}
}

func skillsText(resume *types.ParsedResume) string {
	names := make([]string, 0, len(resume.Skills))
	for _, s := range resume.Skills {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func educationText(edu types.Education) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{edu.Degree, edu.Field, edu.Institution} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
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
