package types

// ExperienceLevel is the declared seniority of a job posting
type ExperienceLevel string

// ExperienceLevel constants define declared job seniority tiers
const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelPrincipal ExperienceLevel = "principal"
)

// NormalizeExperienceLevel maps an arbitrary seniority string onto the closed
// set. Unknown values fall back to LevelMid.
func NormalizeExperienceLevel(raw string) ExperienceLevel {
	switch ExperienceLevel(raw) {
	case LevelEntry, LevelMid, LevelSenior, LevelPrincipal:
		return ExperienceLevel(raw)
	default:
		return LevelMid
	}
}

// JobSkill represents a skill the job asks for
type JobSkill struct {
	Name     string        `json:"name"`
	Required bool          `json:"required"`
	Level    SkillLevel    `json:"level,omitempty"`
	Category SkillCategory `json:"category"`
}

// SalaryRange represents an advertised salary band
type SalaryRange struct {
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
	Period   string `json:"period,omitempty"` // yearly, monthly, hourly
}

// ParsedJob is the canonical structured form of a job posting.
// Created once per scan by the job parsing agent; immutable afterward.
type ParsedJob struct {
	Title            string          `json:"title"`
	Company          string          `json:"company,omitempty"`
	Location         string          `json:"location,omitempty"`
	EmploymentType   string          `json:"employment_type,omitempty"`
	ExperienceLevel  ExperienceLevel `json:"experience_level,omitempty"`
	Salary           *SalaryRange    `json:"salary,omitempty"`
	Description      string          `json:"description,omitempty"`
	Requirements     []string        `json:"requirements"`
	Responsibilities []string        `json:"responsibilities"`
	Benefits         []string        `json:"benefits,omitempty"`
	Skills           []JobSkill      `json:"skills"`
	Keywords         []string        `json:"keywords"`
	Industry         string          `json:"industry,omitempty"`
	Department       string          `json:"department,omitempty"`
	Metadata         ParseMetadata   `json:"metadata"`
}

// Normalize coerces enum-valued fields onto their closed sets in place.
func (j *ParsedJob) Normalize() {
	if j.ExperienceLevel != "" {
		j.ExperienceLevel = NormalizeExperienceLevel(string(j.ExperienceLevel))
	}
	for i := range j.Skills {
		j.Skills[i].Category = NormalizeSkillCategory(string(j.Skills[i].Category))
		if j.Skills[i].Level != "" {
			j.Skills[i].Level = NormalizeSkillLevel(string(j.Skills[i].Level))
		}
	}
}

// RequiredSkills returns only the skills marked required
func (j *ParsedJob) RequiredSkills() []JobSkill {
	required := make([]JobSkill, 0, len(j.Skills))
	for _, s := range j.Skills {
		if s.Required {
			required = append(required, s)
		}
	}
	return required
}
