package parsing

import (
	"strings"

	"github.com/jonathan/resume-scanner/internal/types"
)

// NormalizeKeyword reduces a keyword to its canonical matching form:
// case-fold, punctuation replaced with spaces, whitespace collapsed.
// Two keywords match exactly iff their normalized forms are equal.
// The operation is idempotent.
func NormalizeKeyword(keyword string) string {
	lower := strings.ToLower(keyword)

	var sb strings.Builder
	sb.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}

// skillAliases maps common skill name variants to canonical display names
var skillAliases = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"aws":        "AWS",
	"gcp":        "GCP",
	"ci/cd":      "CI/CD",
}

// NormalizeSkillName normalizes a skill name to its canonical display form.
// Unlike NormalizeKeyword this preserves capitalization for rendering.
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillAliases[lower]; ok {
		return canonical
	}

	// Single all-lowercase or all-uppercase words get a leading capital
	if !strings.Contains(normalized, " ") &&
		(normalized == lower || normalized == strings.ToUpper(normalized)) && len(normalized) > 1 {
		return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
	}

	return normalized
}

// DedupeSkills drops skills whose normalized keyword form repeats, keeping
// the first occurrence and its richer fields.
func DedupeSkills(skills []types.Skill) []types.Skill {
	seen := make(map[string]bool, len(skills))
	out := make([]types.Skill, 0, len(skills))
	for _, s := range skills {
		key := NormalizeKeyword(s.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		s.Name = NormalizeSkillName(s.Name)
		out = append(out, s)
	}
	return out
}

// DedupeJobSkills is DedupeSkills for job-side skills; a required occurrence
// wins over a duplicate optional one.
func DedupeJobSkills(skills []types.JobSkill) []types.JobSkill {
	index := make(map[string]int, len(skills))
	out := make([]types.JobSkill, 0, len(skills))
	for _, s := range skills {
		key := NormalizeKeyword(s.Name)
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			if s.Required {
				out[i].Required = true
			}
			continue
		}
		s.Name = NormalizeSkillName(s.Name)
		index[key] = len(out)
		out = append(out, s)
	}
	return out
}
