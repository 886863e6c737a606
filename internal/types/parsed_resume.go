// Package types provides type definitions for structured data used throughout the resume-scanner system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// SkillCategory classifies a skill into one of the closed category values
type SkillCategory string

// SkillCategory constants define the closed set of skill categories
const (
	CategoryTechnical SkillCategory = "technical"
	CategorySoft      SkillCategory = "soft"
	CategoryLanguage  SkillCategory = "language"
	CategoryTool      SkillCategory = "tool"
)

// NormalizeSkillCategory maps an arbitrary category string onto the closed set.
// Unknown values fall back to CategoryTechnical.
func NormalizeSkillCategory(raw string) SkillCategory {
	switch SkillCategory(raw) {
	case CategoryTechnical, CategorySoft, CategoryLanguage, CategoryTool:
		return SkillCategory(raw)
	default:
		return CategoryTechnical
	}
}

// SkillLevel describes declared proficiency for a skill
type SkillLevel string

// SkillLevel constants define the closed set of proficiency levels
const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// NormalizeSkillLevel maps an arbitrary level string onto the closed set.
// Unknown values fall back to LevelIntermediate.
func NormalizeSkillLevel(raw string) SkillLevel {
	switch SkillLevel(raw) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return SkillLevel(raw)
	default:
		return LevelIntermediate
	}
}

// ParsingMethod identifies which path produced a parsed record
type ParsingMethod string

// ParsingMethod constants for the two parsing paths
const (
	// MethodAIEnhanced means the language-model path produced the record
	MethodAIEnhanced ParsingMethod = "ai-enhanced"
	// MethodRegexBasic means the deterministic field extractor produced the record
	MethodRegexBasic ParsingMethod = "regex-basic"
)

// PersonalInfo holds contact and identity fields extracted from a resume
type PersonalInfo struct {
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	Links    []string `json:"links,omitempty"`
}

// Experience represents one dated work entry
type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"start_date,omitempty"` // YYYY-MM
	EndDate      string   `json:"end_date,omitempty"`   // YYYY-MM; empty when Current
	Current      bool     `json:"current,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education represents one education entry
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// Skill represents a named skill with category and proficiency
type Skill struct {
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
	Level    SkillLevel    `json:"level"`
	Years    float64       `json:"years,omitempty"`
}

// Certification represents a professional certification
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// SpokenLanguage represents a human language and fluency
type SpokenLanguage struct {
	Name    string `json:"name"`
	Fluency string `json:"fluency,omitempty"`
}

// Project represents a personal or professional project entry
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
}

// ParseMetadata records how and when a record was parsed
type ParseMetadata struct {
	ParsedAt      time.Time     `json:"parsed_at"`
	WordCount     int           `json:"word_count"`
	ParsingMethod ParsingMethod `json:"parsing_method"`
	SourceLabel   string        `json:"source_label,omitempty"` // filename or caller-supplied label
}

// ParsedResume is the canonical structured form of a resume.
// Created once per scan by the resume parsing agent; immutable afterward.
type ParsedResume struct {
	Personal       PersonalInfo     `json:"personal"`
	Summary        string           `json:"summary,omitempty"`
	Experience     []Experience     `json:"experience"`
	Education      []Education      `json:"education"`
	Skills         []Skill          `json:"skills"`
	Certifications []Certification  `json:"certifications,omitempty"`
	Languages      []SpokenLanguage `json:"languages,omitempty"`
	Projects       []Project        `json:"projects,omitempty"`
	Metadata       ParseMetadata    `json:"metadata"`
}

// Normalize coerces enum-valued fields onto their closed sets in place.
// Safe to call on sparse records.
func (r *ParsedResume) Normalize() {
	for i := range r.Skills {
		r.Skills[i].Category = NormalizeSkillCategory(string(r.Skills[i].Category))
		r.Skills[i].Level = NormalizeSkillLevel(string(r.Skills[i].Level))
	}
}
