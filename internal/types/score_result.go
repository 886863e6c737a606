package types

// ATSScoreResult holds the five sub-scores and their weighted combination.
// All scores are integers in [0,100].
type ATSScoreResult struct {
	OverallScore        int      `json:"overall_score"`
	KeywordMatch        int      `json:"keyword_match"`
	SkillAlignment      int      `json:"skill_alignment"`
	ExperienceRelevance int      `json:"experience_relevance"`
	EducationMatch      int      `json:"education_match"`
	ATSCompliance       int      `json:"ats_compliance"`
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	Recommendations     []string `json:"recommendations"`
}
