package types

// SectionStatus tiers a scored section for end-user display
type SectionStatus string

// SectionStatus constants define the closed status tiers
const (
	StatusExcellent        SectionStatus = "excellent"
	StatusGood             SectionStatus = "good"
	StatusNeedsImprovement SectionStatus = "needs-improvement"
	StatusCritical         SectionStatus = "critical"
)

// StatusForScore maps a 0-100 score onto a display tier
func StatusForScore(score int) SectionStatus {
	switch {
	case score >= 85:
		return StatusExcellent
	case score >= 70:
		return StatusGood
	case score >= 50:
		return StatusNeedsImprovement
	default:
		return StatusCritical
	}
}

// SectionBreakdown explains one sub-score for end users
type SectionBreakdown struct {
	Name      string        `json:"name"`
	Score     int           `json:"score"`
	Status    SectionStatus `json:"status"`
	Narrative string        `json:"narrative,omitempty"`
}

// ActionableInsight is one prioritized improvement item
type ActionableInsight struct {
	Priority  int    `json:"priority"` // 1 is highest
	Action    string `json:"action"`
	Timeframe string `json:"timeframe"` // immediate, short-term, long-term
	Effort    string `json:"effort"`    // low, medium, high
}

// NextSteps is the three-tier improvement timeline
type NextSteps struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"short_term"`
	LongTerm  []string `json:"long_term"`
}

// ScanExplanation is the narrative layer synthesized from the numeric results
type ScanExplanation struct {
	ScoreExplanation string              `json:"score_explanation"`
	Sections         []SectionBreakdown  `json:"sections"`
	KeywordImpact    string              `json:"keyword_impact"`
	GapSummary       string              `json:"gap_summary"`
	Insights         []ActionableInsight `json:"insights"`
	NextSteps        NextSteps           `json:"next_steps"`
	Positioning      string              `json:"positioning"`
}
