package extraction

import (
	"strings"
	"time"

	"github.com/jonathan/resume-scanner/internal/types"
)

// Resume builds a ParsedResume from raw text using regex heuristics only.
// The result may be sparse but is always structurally valid.
func Resume(text, label string) *types.ParsedResume {
	sections := Sections(text)

	resume := &types.ParsedResume{
		Personal: types.PersonalInfo{
			Name:  Name(text),
			Email: Email(text),
			Phone: Phone(text),
			Links: Links(text),
		},
		Summary:    strings.Join(sections["summary"], " "),
		Experience: extractExperience(sections["experience"]),
		Education:  extractEducation(sections["education"]),
		Skills:     extractSkills(sections["skills"]),
		Projects:   extractProjects(sections["projects"]),
		Metadata: types.ParseMetadata{
			ParsedAt:      time.Now().UTC(),
			WordCount:     len(strings.Fields(text)),
			ParsingMethod: types.MethodRegexBasic,
			SourceLabel:   label,
		},
	}

	for _, line := range sections["certifications"] {
		name := strings.TrimSpace(line)
		if name != "" {
			resume.Certifications = append(resume.Certifications, types.Certification{Name: name})
		}
	}
	for _, tok := range SkillTokens(sections["languages"]) {
		resume.Languages = append(resume.Languages, types.SpokenLanguage{Name: tok})
	}

	resume.Normalize()
	return resume
}

// extractExperience groups experience-section lines into entries. A line
// carrying a dated range starts a new entry; bullet lines under it become
// achievements, other lines feed the description.
func extractExperience(lines []string) []types.Experience {
	var entries []types.Experience
	var current *types.Experience

	for _, line := range lines {
		ranges := DateRanges(line)
		if len(ranges) > 0 {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &types.Experience{
				StartDate: ranges[0].Start,
				EndDate:   ranges[0].End,
				Current:   ranges[0].Current,
			}
			fillCompanyPosition(current, line)
			continue
		}
		if current == nil {
			// Header line before any dated range; treat as company/position
			current = &types.Experience{}
			fillCompanyPosition(current, line)
			continue
		}
		if Bullets([]string{line}) != nil {
			current.Achievements = append(current.Achievements, Bullets([]string{line})...)
		} else if current.Company == "" || current.Position == "" {
			fillCompanyPosition(current, line)
		} else {
			if current.Description != "" {
				current.Description += " "
			}
			current.Description += line
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}

	return entries
}

// fillCompanyPosition fills empty company/position fields from a header line
// like "Backend Engineer, Acme Corp" or "Acme Corp - Backend Engineer".
func fillCompanyPosition(e *types.Experience, line string) {
	line = dateRangeRe.ReplaceAllString(line, "")
	line = strings.ReplaceAll(line, "()", "")
	line = strings.Trim(line, " \t-–—|,()")
	if line == "" {
		return
	}

	parts := strings.FieldsFunc(line, func(r rune) bool {
		return r == '-' || r == '–' || r == '—' || r == '|' || r == ','
	})
	if len(parts) >= 2 {
		first, second := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if e.Position == "" {
			e.Position = first
		}
		if e.Company == "" {
			e.Company = second
		}
		return
	}
	if e.Position == "" {
		e.Position = line
	} else if e.Company == "" {
		e.Company = line
	}
}

var degreeWords = []string{
	"bachelor", "master", "phd", "doctorate", "b.s.", "m.s.", "bsc", "msc",
	"b.a.", "m.a.", "mba", "associate",
}

func extractEducation(lines []string) []types.Education {
	var entries []types.Education
	for _, line := range lines {
		lower := strings.ToLower(line)
		hasDegree := false
		for _, w := range degreeWords {
			if strings.Contains(lower, w) {
				hasDegree = true
				break
			}
		}
		if hasDegree {
			edu := types.Education{Degree: strings.TrimSpace(dateRangeRe.ReplaceAllString(line, ""))}
			if ranges := DateRanges(line); len(ranges) > 0 {
				edu.StartDate = ranges[0].Start
				edu.EndDate = ranges[0].End
			}
			entries = append(entries, edu)
		} else if len(entries) > 0 && entries[len(entries)-1].Institution == "" {
			entries[len(entries)-1].Institution = strings.TrimSpace(line)
		} else if strings.TrimSpace(line) != "" {
			entries = append(entries, types.Education{Institution: strings.TrimSpace(line)})
		}
	}
	return entries
}

func extractSkills(lines []string) []types.Skill {
	tokens := SkillTokens(lines)
	skills := make([]types.Skill, 0, len(tokens))
	for _, tok := range tokens {
		skills = append(skills, types.Skill{
			Name:     tok,
			Category: GuessCategory(tok),
			Level:    types.LevelIntermediate,
		})
	}
	return skills
}

func extractProjects(lines []string) []types.Project {
	var projects []types.Project
	for _, line := range lines {
		bullets := Bullets([]string{line})
		if len(bullets) > 0 && len(projects) > 0 {
			last := &projects[len(projects)-1]
			if last.Description != "" {
				last.Description += " "
			}
			last.Description += bullets[0]
			continue
		}
		name := strings.TrimSpace(line)
		if name != "" {
			projects = append(projects, types.Project{Name: name})
		}
	}
	return projects
}
