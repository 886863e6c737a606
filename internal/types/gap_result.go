package types

// Importance tiers a missing skill by how much it matters for the job
type Importance string

// Importance constants define the closed importance tiers
const (
	ImportanceCritical  Importance = "critical"
	ImportanceImportant Importance = "important"
	ImportanceNice      Importance = "nice-to-have"
)

// NormalizeImportance maps an arbitrary importance string onto the closed
// set. Unknown values fall back to ImportanceImportant.
func NormalizeImportance(raw string) Importance {
	switch Importance(raw) {
	case ImportanceCritical, ImportanceImportant, ImportanceNice:
		return Importance(raw)
	default:
		return ImportanceImportant
	}
}

// MarketSignal is a coarse low/medium/high rating used by market alignment
type MarketSignal string

// MarketSignal constants define the closed signal values
const (
	SignalLow    MarketSignal = "low"
	SignalMedium MarketSignal = "medium"
	SignalHigh   MarketSignal = "high"
)

// NormalizeMarketSignal maps an arbitrary signal string onto the closed set.
// Unknown values fall back to SignalMedium.
func NormalizeMarketSignal(raw string) MarketSignal {
	switch MarketSignal(raw) {
	case SignalLow, SignalMedium, SignalHigh:
		return MarketSignal(raw)
	default:
		return SignalMedium
	}
}

// MissingSkill is a required job skill absent from the resume, enriched with
// guidance about how to close the gap
type MissingSkill struct {
	Name       string        `json:"name"`
	Importance Importance    `json:"importance"`
	Category   SkillCategory `json:"category"`
	Rationale  string        `json:"rationale,omitempty"`
	Resources  []string      `json:"resources,omitempty"`
}

// SkillStrength is a resume skill that is relevant to the job
type SkillStrength struct {
	Name      string `json:"name"`
	Relevance int    `json:"relevance"` // 0-100
	Evidence  string `json:"evidence,omitempty"`
}

// ImprovementArea describes a skill where the resume level trails the job ask
type ImprovementArea struct {
	Skill        string     `json:"skill"`
	CurrentLevel SkillLevel `json:"current_level"`
	TargetLevel  SkillLevel `json:"target_level"`
	Actions      []string   `json:"actions,omitempty"`
}

// CareerAdvice is one tier of career guidance
type CareerAdvice struct {
	Tier   string   `json:"tier"` // short-term, medium-term, long-term
	Advice []string `json:"advice"`
}

// MarketAlignment summarizes demand-side signals for the gap set
type MarketAlignment struct {
	Demand       MarketSignal `json:"demand"`
	SalaryImpact MarketSignal `json:"salary_impact"`
	Growth       MarketSignal `json:"growth"`
	Summary      string       `json:"summary,omitempty"`
}

// SkillGapResult is the gap analyzer output
type SkillGapResult struct {
	MissingSkills    []MissingSkill    `json:"missing_skills"`
	Strengths        []SkillStrength   `json:"strengths"`
	ImprovementAreas []ImprovementArea `json:"improvement_areas"`
	CareerAdvice     []CareerAdvice    `json:"career_advice"`
	MarketAlignment  MarketAlignment   `json:"market_alignment"`
}
