package types

// ExactMatch records whether one required job keyword appears in the resume
type ExactMatch struct {
	Keyword string `json:"keyword"`
	Matched bool   `json:"matched"`
}

// SemanticMatch is a language-model-judged similarity between a resume term
// and a job term that are not literally equal
type SemanticMatch struct {
	ResumeTerm string        `json:"resume_term"`
	JobTerm    string        `json:"job_term"`
	Similarity int           `json:"similarity"` // 0-100
	Category   SkillCategory `json:"category"`
}

// KeywordMatchResult holds the full output of the keyword/skill matcher
type KeywordMatchResult struct {
	ExactMatches       []ExactMatch          `json:"exact_matches"`
	SemanticMatches    []SemanticMatch       `json:"semantic_matches"`
	MissingKeywords    []string              `json:"missing_keywords"`
	AdditionalKeywords []string              `json:"additional_keywords"`
	CategoryScores     map[SkillCategory]int `json:"category_scores"`
	MatchScore         int                   `json:"match_score"` // 0-100
}
