package extraction

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/resume-scanner/internal/types"
)

var salaryRe = regexp.MustCompile(`(?i)[$€£]\s?(\d{2,3})[,.]?(\d{3})?\s*(?:k)?\s*(?:-|–|to)\s*[$€£]?\s?(\d{2,3})[,.]?(\d{3})?\s*(?:k)?`)

// seniorityHints maps posting phrases onto declared experience levels,
// checked in order so the most senior phrasing wins.
var seniorityHints = []struct {
	phrase string
	level  types.ExperienceLevel
}{
	{"principal", types.LevelPrincipal},
	{"staff", types.LevelPrincipal},
	{"senior", types.LevelSenior},
	{"sr.", types.LevelSenior},
	{"lead", types.LevelSenior},
	{"junior", types.LevelEntry},
	{"entry level", types.LevelEntry},
	{"entry-level", types.LevelEntry},
	{"graduate", types.LevelEntry},
	{"intern", types.LevelEntry},
}

// Job builds a ParsedJob from raw posting text using regex heuristics only.
// The result may be sparse but is always structurally valid.
func Job(text string) *types.ParsedJob {
	sections := Sections(text)

	job := &types.ParsedJob{
		Title:            firstLine(text),
		ExperienceLevel:  guessSeniority(text),
		Description:      strings.Join(sections[""], " "),
		Requirements:     bulletsOrLines(sections["requirements"]),
		Responsibilities: bulletsOrLines(sections["responsibilities"]),
		Benefits:         bulletsOrLines(sections["benefits"]),
		Salary:           extractSalary(text),
		Metadata: types.ParseMetadata{
			ParsedAt:      time.Now().UTC(),
			WordCount:     len(strings.Fields(text)),
			ParsingMethod: types.MethodRegexBasic,
		},
	}

	// Requirement lines double as the skill and keyword source in the
	// deterministic path.
	seen := make(map[string]bool)
	for _, req := range job.Requirements {
		for _, tok := range SkillTokens([]string{req}) {
			lower := strings.ToLower(tok)
			if seen[lower] {
				continue
			}
			seen[lower] = true
			job.Skills = append(job.Skills, types.JobSkill{
				Name:     tok,
				Required: true,
				Category: GuessCategory(tok),
			})
			job.Keywords = append(job.Keywords, tok)
		}
	}
	for _, tok := range SkillTokens(sections["skills"]) {
		lower := strings.ToLower(tok)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		job.Skills = append(job.Skills, types.JobSkill{
			Name:     tok,
			Required: false,
			Category: GuessCategory(tok),
		})
		job.Keywords = append(job.Keywords, tok)
	}

	job.Normalize()
	return job
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(strings.TrimLeft(line, "# \t"))
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func guessSeniority(text string) types.ExperienceLevel {
	lower := strings.ToLower(text)
	for _, hint := range seniorityHints {
		if strings.Contains(lower, hint.phrase) {
			return hint.level
		}
	}
	return ""
}

func extractSalary(text string) *types.SalaryRange {
	m := salaryRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	low := parseSalaryPart(m[1], m[2])
	high := parseSalaryPart(m[3], m[4])
	if low == 0 || high == 0 {
		return nil
	}
	return &types.SalaryRange{Min: low, Max: high, Period: "yearly"}
}

// parseSalaryPart interprets "120"+"000" as 120000 and a bare "120" as 120k.
func parseSalaryPart(head, tail string) int {
	n := 0
	for _, r := range head {
		n = n*10 + int(r-'0')
	}
	if tail != "" {
		for _, r := range tail {
			n = n*10 + int(r-'0')
		}
		return n
	}
	return n * 1000
}

func bulletsOrLines(lines []string) []string {
	if bullets := Bullets(lines); len(bullets) > 0 {
		return bullets
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}
