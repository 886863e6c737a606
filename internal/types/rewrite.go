package types

// ResumeSection names a rewritable section of the resume
type ResumeSection string

// ResumeSection constants define the rewritable sections
const (
	SectionSummary    ResumeSection = "summary"
	SectionExperience ResumeSection = "experience"
	SectionSkills     ResumeSection = "skills"
	SectionEducation  ResumeSection = "education"
	SectionProjects   ResumeSection = "projects"
)

// ScoreDelta holds a before/after/delta score triple for one rewrite
type ScoreDelta struct {
	Before      int `json:"before"`
	After       int `json:"after"`
	Improvement int `json:"improvement"`
}

// RewriteSuggestion is one proposed section-level rewrite
type RewriteSuggestion struct {
	Section       ResumeSection `json:"section"`
	EntryLabel    string        `json:"entry_label,omitempty"` // e.g. "Acme Corp — Backend Engineer"
	OriginalText  string        `json:"original_text"`
	RewrittenText string        `json:"rewritten_text"`
	Rationale     string        `json:"rationale,omitempty"`
	Scores        ScoreDelta    `json:"scores"`
	KeywordsAdded []string      `json:"keywords_added,omitempty"`
	VerbsAdded    []string      `json:"verbs_added,omitempty"`
	MetricsAdded  []string      `json:"metrics_added,omitempty"`
}

// SectionAnalysis holds the average post-rewrite score for one section
type SectionAnalysis struct {
	Section      ResumeSection `json:"section"`
	AverageScore int           `json:"average_score"`
	Suggestions  int           `json:"suggestions"`
}

// ImprovementMetrics are aggregate improvement means over all suggestions
type ImprovementMetrics struct {
	ATS         int `json:"ats"`
	Readability int `json:"readability"`
	Impact      int `json:"impact"`
}

// RewriteResult is the rewrite agent output
type RewriteResult struct {
	Suggestions      []RewriteSuggestion `json:"suggestions"`
	PriorityRewrites []RewriteSuggestion `json:"priority_rewrites"`
	QuickWins        []RewriteSuggestion `json:"quick_wins"`
	SectionAnalysis  []SectionAnalysis   `json:"section_analysis"`
	Improvement      ImprovementMetrics  `json:"improvement"`
}
