// Package scoring combines keyword, skill, experience, education, and
// format-compliance sub-scores into one weighted overall ATS score.
// The numeric computation is fully deterministic and never fails; only the
// narrative insights use the language model, with a canned fallback.
package scoring

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/parsing"
	"github.com/jonathan/resume-scanner/internal/types"
)

// Fixed sub-score weights for the overall combination
const (
	weightKeyword    = 0.30
	weightSkill      = 0.25
	weightExperience = 0.20
	weightEducation  = 0.15
	weightCompliance = 0.10
)

// ATS-compliance penalties
const (
	penaltyNoEmail       = 20
	penaltyNoPhone       = 10
	penaltyNoSkills      = 25
	penaltyNoExperience  = 30
	penaltyNoEducation   = 15
	penaltyFewSkills     = 10 // fewer than 5 skills
	penaltyNoDescription = 15 // any experience entry lacking a description
	minSkillCount        = 5
)

// Scorer computes ATS score results. A nil client skips narrative insights
// in favor of the canned threshold-based set.
type Scorer struct {
	client llm.Client
	now    func() time.Time
}

// NewScorer creates a scorer backed by the given gateway client.
func NewScorer(client llm.Client) *Scorer {
	return &Scorer{client: client, now: time.Now}
}

// WithClock overrides the clock used for "current" experience entries.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// Score computes the five sub-scores and their weighted combination. The
// numeric part cannot fail; insight generation degrades to a canned set.
func (s *Scorer) Score(ctx context.Context, resume *types.ParsedResume, job *types.ParsedJob) *types.ATSScoreResult {
	result := &types.ATSScoreResult{
		KeywordMatch:        s.keywordMatch(resume, job),
		SkillAlignment:      s.skillAlignment(resume, job),
		ExperienceRelevance: s.experienceRelevance(resume, job),
		EducationMatch:      s.educationMatch(resume, job),
		ATSCompliance:       s.atsCompliance(resume),
	}

	overall := weightKeyword*float64(result.KeywordMatch) +
		weightSkill*float64(result.SkillAlignment) +
		weightExperience*float64(result.ExperienceRelevance) +
		weightEducation*float64(result.EducationMatch) +
		weightCompliance*float64(result.ATSCompliance)
	result.OverallScore = clampScore(overall)

	s.addInsights(ctx, result, job)
	return result
}

// keywordMatch is the exact-match ratio against required job skills.
// A job with no required skills matches vacuously.
func (s *Scorer) keywordMatch(resume *types.ParsedResume, job *types.ParsedJob) int {
	required := job.RequiredSkills()
	if len(required) == 0 {
		return 100
	}

	terms := resumeSkillSet(resume)
	matched := 0
	for _, skill := range required {
		if terms[parsing.NormalizeKeyword(skill.Name)] {
			matched++
		}
	}
	return clampScore(float64(matched) / float64(len(required)) * 100)
}

// skillAlignment is the overlap ratio between resume skills and all job
// skills. A job listing no skills aligns vacuously.
func (s *Scorer) skillAlignment(resume *types.ParsedResume, job *types.ParsedJob) int {
	if len(job.Skills) == 0 {
		return 100
	}

	terms := resumeSkillSet(resume)
	matched := 0
	for _, skill := range job.Skills {
		if terms[parsing.NormalizeKeyword(skill.Name)] {
			matched++
		}
	}
	return clampScore(float64(matched) / float64(len(job.Skills)) * 100)
}

// experienceAdjustments keys score deltas on declared job seniority versus
// total resume experience in years.
var experienceAdjustments = map[types.ExperienceLevel][]struct {
	minYears float64
	delta    int
}{
	// Checked in order; the last entry whose minYears threshold is met wins.
	types.LevelEntry:     {{0, 10}, {1, 20}, {4, 15}},
	types.LevelMid:       {{0, -10}, {2, 20}, {6, 15}},
	types.LevelSenior:    {{0, -20}, {5, 20}, {10, 25}},
	types.LevelPrincipal: {{0, -25}, {8, 15}, {12, 25}},
}

// experienceRelevance starts at 50, adjusts by the seniority/years lookup
// table, and adds 10 when at least one resume entry shares job keywords.
func (s *Scorer) experienceRelevance(resume *types.ParsedResume, job *types.ParsedJob) int {
	score := 50

	years := s.TotalExperienceYears(resume)
	level := job.ExperienceLevel
	if level == "" {
		level = types.LevelMid
	}
	for _, adj := range experienceAdjustments[level] {
		if years >= adj.minYears {
			score = 50 + adj.delta
		}
	}

	if s.anyEntrySharesKeywords(resume, job) {
		score += 10
	}

	return clampScore(float64(score))
}

// TotalExperienceYears sums end−start per experience entry, using the
// scorer's clock for entries marked current. Unparseable dates contribute 0.
func (s *Scorer) TotalExperienceYears(resume *types.ParsedResume) float64 {
	total := 0.0
	for _, exp := range resume.Experience {
		start, ok := parseMonth(exp.StartDate)
		if !ok {
			continue
		}
		var end time.Time
		if exp.Current {
			end = s.now()
		} else if parsed, ok := parseMonth(exp.EndDate); ok {
			end = parsed
		} else {
			continue
		}
		if end.Before(start) {
			continue
		}
		total += end.Sub(start).Hours() / 24 / 365.25
	}
	return total
}

func parseMonth(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01", "2006-01-02", "2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (s *Scorer) anyEntrySharesKeywords(resume *types.ParsedResume, job *types.ParsedJob) bool {
	if len(job.Keywords) == 0 {
		return false
	}
	for _, exp := range resume.Experience {
		text := strings.ToLower(exp.Description + " " + strings.Join(exp.Achievements, " ") + " " + exp.Position)
		for _, kw := range job.Keywords {
			normalized := parsing.NormalizeKeyword(kw)
			if normalized != "" && strings.Contains(text, normalized) {
				return true
			}
		}
	}
	return false
}

// Degree presence bonuses, applied when the job text requests that degree
const (
	bonusBachelor  = 30
	bonusMaster    = 20
	bonusDoctorate = 25
	bonusFieldFull = 20 // relevant field of study
	bonusFieldNear = 15 // relevant term elsewhere in the education entry
)

// fieldTermsByCategory lists relevant fields of study per job-title category
var fieldTermsByCategory = map[string][]string{
	"cs":          {"computer science", "software", "information technology", "informatics", "data science"},
	"engineering": {"engineering", "electrical", "mechanical", "physics", "mathematics"},
	"business":    {"business", "finance", "economics", "marketing", "accounting", "management"},
	"design":      {"design", "fine arts", "graphic", "human-computer interaction", "visual"},
}

// titleHints maps job-title fragments to a field category
var titleHints = []struct {
	fragment string
	category string
}{
	{"software", "cs"}, {"developer", "cs"}, {"data", "cs"}, {"devops", "cs"},
	{"machine learning", "cs"}, {"backend", "cs"}, {"frontend", "cs"},
	{"engineer", "engineering"},
	{"designer", "design"}, {"ux", "design"}, {"ui", "design"},
	{"analyst", "business"}, {"manager", "business"}, {"marketing", "business"},
	{"sales", "business"}, {"account", "business"},
}

// educationMatch starts at 50, adds degree bonuses when the job text asks
// for them, and a relevance bonus when the field of study fits the role.
func (s *Scorer) educationMatch(resume *types.ParsedResume, job *types.ParsedJob) int {
	score := 50
	jobText := strings.ToLower(job.Description + " " + strings.Join(job.Requirements, " "))

	if strings.Contains(jobText, "bachelor") && hasDegree(resume, "bachelor", "b.s", "bsc", "b.a", "ba ", "bs ") {
		score += bonusBachelor
	}
	if strings.Contains(jobText, "master") && hasDegree(resume, "master", "m.s", "msc", "m.a", "mba") {
		score += bonusMaster
	}
	if (strings.Contains(jobText, "phd") || strings.Contains(jobText, "doctor")) &&
		hasDegree(resume, "phd", "ph.d", "doctor") {
		score += bonusDoctorate
	}

	if bonus := fieldRelevanceBonus(resume, job.Title); bonus > 0 {
		score += bonus
	}

	return clampScore(float64(score))
}

func hasDegree(resume *types.ParsedResume, terms ...string) bool {
	for _, edu := range resume.Education {
		degree := strings.ToLower(edu.Degree)
		for _, term := range terms {
			if strings.Contains(degree, term) {
				return true
			}
		}
	}
	return false
}

func fieldRelevanceBonus(resume *types.ParsedResume, jobTitle string) int {
	title := strings.ToLower(jobTitle)
	category := ""
	for _, hint := range titleHints {
		if strings.Contains(title, hint.fragment) {
			category = hint.category
			break
		}
	}
	if category == "" {
		return 0
	}

	for _, term := range fieldTermsByCategory[category] {
		for _, edu := range resume.Education {
			if strings.Contains(strings.ToLower(edu.Field), term) {
				return bonusFieldFull
			}
			if strings.Contains(strings.ToLower(edu.Degree+" "+edu.Institution), term) {
				return bonusFieldNear
			}
		}
	}
	return 0
}

// atsCompliance starts at 100 and subtracts fixed penalties for structural
// problems a tracking system would flag; floored at 0.
func (s *Scorer) atsCompliance(resume *types.ParsedResume) int {
	score := 100

	if resume.Personal.Email == "" {
		score -= penaltyNoEmail
	}
	if resume.Personal.Phone == "" {
		score -= penaltyNoPhone
	}
	if len(resume.Skills) == 0 {
		score -= penaltyNoSkills
	} else if len(resume.Skills) < minSkillCount {
		score -= penaltyFewSkills
	}
	if len(resume.Experience) == 0 {
		score -= penaltyNoExperience
	} else {
		for _, exp := range resume.Experience {
			if strings.TrimSpace(exp.Description) == "" && len(exp.Achievements) == 0 {
				score -= penaltyNoDescription
				break
			}
		}
	}
	if len(resume.Education) == 0 {
		score -= penaltyNoEducation
	}

	return clampScore(float64(score))
}

func resumeSkillSet(resume *types.ParsedResume) map[string]bool {
	set := make(map[string]bool, len(resume.Skills))
	for _, s := range resume.Skills {
		set[parsing.NormalizeKeyword(s.Name)] = true
	}
	for _, p := range resume.Projects {
		for _, tech := range p.Technologies {
			set[parsing.NormalizeKeyword(tech)] = true
		}
	}
	return set
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
