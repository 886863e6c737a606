// Package extraction provides deterministic regex/heuristic extraction of
// structured fields from unstructured resume and job text. It is the fallback
// path when the language-model parsing route is unavailable; it never returns
// an error and always yields a structurally valid (possibly sparse) record.
package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-scanner/internal/types"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(\+?\d{1,3}[\s.\-]?)?(\(?\d{3}\)?[\s.\-]?)\d{3}[\s.\-]?\d{4}`)
	linkRe  = regexp.MustCompile(`https?://[^\s)>\]]+|(?:www\.|linkedin\.com/|github\.com/)[^\s)>\]]+`)

	// dateRangeRe matches "Jan 2020 - Mar 2022", "2020-01 – 2022-03",
	// "01/2020 - present" and similar dated ranges.
	dateRangeRe = regexp.MustCompile(`(?i)((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}|\d{4}[-/]\d{1,2}|\d{1,2}/\d{4}|\d{4})\s*(?:-|–|—|to)\s*((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}|\d{4}[-/]\d{1,2}|\d{1,2}/\d{4}|\d{4}|present|current|now)`)

	bulletRe = regexp.MustCompile(`^\s*[-•*▪◦+]\s+`)
)

// sectionAliases maps heading spellings to canonical section names
var sectionAliases = map[string]string{
	"experience":               "experience",
	"work experience":          "experience",
	"professional experience":  "experience",
	"employment":               "experience",
	"employment history":       "experience",
	"education":                "education",
	"academic background":      "education",
	"skills":                   "skills",
	"technical skills":         "skills",
	"core competencies":        "skills",
	"summary":                  "summary",
	"professional summary":     "summary",
	"profile":                  "summary",
	"objective":                "summary",
	"about":                    "summary",
	"projects":                 "projects",
	"personal projects":        "projects",
	"certifications":           "certifications",
	"certificates":             "certifications",
	"licenses & certifications": "certifications",
	"languages":                "languages",
	"requirements":             "requirements",
	"qualifications":           "requirements",
	"what you'll need":         "requirements",
	"responsibilities":         "responsibilities",
	"what you'll do":           "responsibilities",
	"duties":                   "responsibilities",
	"benefits":                 "benefits",
	"what we offer":            "benefits",
	"perks":                    "benefits",
}

// Sections splits raw text into canonical named sections. Text before the
// first recognized heading lands in the "" section.
func Sections(text string) map[string][]string {
	sections := make(map[string][]string)
	current := ""

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if canonical, ok := headingFor(trimmed); ok {
			current = canonical
			continue
		}
		sections[current] = append(sections[current], trimmed)
	}

	return sections
}

// headingFor reports whether a line is a recognized section heading.
// Headings are short lines matching a known alias, optionally decorated
// with markdown markers or trailing colons.
func headingFor(line string) (string, bool) {
	stripped := strings.TrimLeft(line, "#= \t")
	stripped = strings.TrimRight(stripped, ": \t")
	if len(stripped) > 40 {
		return "", false
	}
	canonical, ok := sectionAliases[strings.ToLower(stripped)]
	return canonical, ok
}

// Email returns the first email address in the text, or "".
func Email(text string) string {
	return emailRe.FindString(text)
}

// Phone returns the first phone-like token in the text, or "".
func Phone(text string) string {
	return phoneRe.FindString(text)
}

// Links returns profile/portfolio URLs found in the text.
func Links(text string) []string {
	return dedupe(linkRe.FindAllString(text, -1))
}

// Name guesses the candidate name: the first non-empty line that is short,
// contains no digits or @, and is not a recognized heading.
func Name(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if _, isHeading := headingFor(trimmed); isHeading {
			continue
		}
		if len(trimmed) > 60 || strings.ContainsAny(trimmed, "@0123456789") {
			continue
		}
		words := strings.Fields(trimmed)
		if len(words) >= 2 && len(words) <= 5 {
			return trimmed
		}
		return ""
	}
	return ""
}

// DateRange holds one extracted dated range in normalized YYYY-MM form
type DateRange struct {
	Start   string
	End     string
	Current bool
}

// DateRanges extracts all dated ranges from the text.
func DateRanges(text string) []DateRange {
	matches := dateRangeRe.FindAllStringSubmatch(text, -1)
	ranges := make([]DateRange, 0, len(matches))
	for _, m := range matches {
		r := DateRange{Start: normalizeMonth(m[1])}
		endRaw := strings.ToLower(m[2])
		if endRaw == "present" || endRaw == "current" || endRaw == "now" {
			r.Current = true
		} else {
			r.End = normalizeMonth(m[2])
		}
		ranges = append(ranges, r)
	}
	return ranges
}

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// normalizeMonth converts supported date spellings to YYYY-MM.
// A bare year becomes YYYY-01.
func normalizeMonth(raw string) string {
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "."))

	// "Jan 2020" style
	fields := strings.Fields(raw)
	if len(fields) == 2 {
		if num, ok := monthNumbers[strings.ToLower(fields[0][:min(3, len(fields[0]))])]; ok {
			return fields[1] + "-" + num
		}
	}

	// "2020-01" or "2020/1" style
	if i := strings.IndexAny(raw, "-/"); i == 4 {
		year, month := raw[:4], raw[i+1:]
		if len(month) == 1 {
			month = "0" + month
		}
		return year + "-" + month
	}

	// "01/2020" style
	if i := strings.Index(raw, "/"); i > 0 && i <= 2 && len(raw) > i+4 {
		month := raw[:i]
		if len(month) == 1 {
			month = "0" + month
		}
		return raw[i+1:] + "-" + month
	}

	// bare year
	if len(raw) == 4 {
		return raw + "-01"
	}

	return raw
}

// Bullets returns the bullet lines among the given lines, markers stripped.
func Bullets(lines []string) []string {
	bullets := make([]string, 0, len(lines))
	for _, line := range lines {
		if bulletRe.MatchString(line) {
			bullets = append(bullets, strings.TrimSpace(bulletRe.ReplaceAllString(line, "")))
		}
	}
	return bullets
}

// SkillTokens splits skill-section lines into individual skill names.
// Lines are split on commas, pipes, slashes and bullet separators.
func SkillTokens(lines []string) []string {
	var tokens []string
	for _, line := range lines {
		line = bulletRe.ReplaceAllString(line, "")
		// Drop a leading "Languages:" style label
		if i := strings.Index(line, ":"); i > 0 && i < 30 {
			line = line[i+1:]
		}
		for _, tok := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == '|' || r == ';' || r == '•' || r == '·'
		}) {
			tok = strings.TrimSpace(tok)
			if tok != "" && len(tok) <= 40 {
				tokens = append(tokens, tok)
			}
		}
	}
	return dedupe(tokens)
}

// GuessCategory assigns a coarse category to a skill name by lexical lookup.
func GuessCategory(name string) types.SkillCategory {
	lower := strings.ToLower(name)
	switch {
	case softSkillWords[lower]:
		return types.CategorySoft
	case toolWords[lower]:
		return types.CategoryTool
	case spokenLanguageWords[lower]:
		return types.CategoryLanguage
	default:
		return types.CategoryTechnical
	}
}

var softSkillWords = map[string]bool{
	"communication": true, "leadership": true, "teamwork": true,
	"collaboration": true, "problem solving": true, "mentoring": true,
	"time management": true, "adaptability": true, "critical thinking": true,
}

var toolWords = map[string]bool{
	"git": true, "jira": true, "docker": true, "kubernetes": true,
	"jenkins": true, "terraform": true, "figma": true, "excel": true,
	"confluence": true, "github": true, "gitlab": true, "tableau": true,
}

var spokenLanguageWords = map[string]bool{
	"english": true, "spanish": true, "french": true, "german": true,
	"mandarin": true, "japanese": true, "portuguese": true, "hindi": true,
	"arabic": true, "russian": true, "korean": true, "italian": true,
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if !seen[key] {
			seen[key] = true
			out = append(out, item)
		}
	}
	return out
}
