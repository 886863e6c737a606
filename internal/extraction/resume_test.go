package extraction

import (
	"testing"

	"github.com/jonathan/resume-scanner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resumeText = `Jane Doe
jane.doe@example.com | +1 555 010 0000 | github.com/janedoe

Summary
Backend engineer with six years building Go services.

Experience
Backend Engineer, Acme Corp (Jan 2019 - Jan 2023)
- Built Go microservices handling 10k requests per second
- Led migration to PostgreSQL
Platform Engineer, Widgets Inc (Feb 2023 - present)
Runs the internal deployment platform.

Education
Bachelor of Science in Computer Science
State University

Skills
Go, PostgreSQL, Docker
Communication, Leadership

Certifications
AWS Certified Solutions Architect
`

func TestResumeExtraction(t *testing.T) {
	resume := Resume(resumeText, "resume.txt")
	require.NotNil(t, resume)

	assert.Equal(t, "Jane Doe", resume.Personal.Name)
	assert.Equal(t, "jane.doe@example.com", resume.Personal.Email)
	assert.NotEmpty(t, resume.Personal.Phone)
	assert.Contains(t, resume.Personal.Links, "github.com/janedoe")

	assert.Contains(t, resume.Summary, "Backend engineer")

	assert.Equal(t, types.MethodRegexBasic, resume.Metadata.ParsingMethod)
	assert.Equal(t, "resume.txt", resume.Metadata.SourceLabel)
	assert.Positive(t, resume.Metadata.WordCount)
}

func TestResumeExperienceEntries(t *testing.T) {
	resume := Resume(resumeText, "")

	require.Len(t, resume.Experience, 2)

	first := resume.Experience[0]
	assert.Equal(t, "Backend Engineer", first.Position)
	assert.Equal(t, "Acme Corp", first.Company)
	assert.Equal(t, "2019-01", first.StartDate)
	assert.Equal(t, "2023-01", first.EndDate)
	assert.False(t, first.Current)
	assert.Len(t, first.Achievements, 2)

	second := resume.Experience[1]
	assert.Equal(t, "2023-02", second.StartDate)
	assert.True(t, second.Current)
	assert.Contains(t, second.Description, "deployment platform")
}

func TestResumeEducationAndSkills(t *testing.T) {
	resume := Resume(resumeText, "")

	require.Len(t, resume.Education, 1)
	assert.Contains(t, resume.Education[0].Degree, "Bachelor of Science")
	assert.Equal(t, "State University", resume.Education[0].Institution)

	require.Len(t, resume.Skills, 5)
	names := make(map[string]types.SkillCategory, len(resume.Skills))
	for _, s := range resume.Skills {
		names[s.Name] = s.Category
	}
	assert.Equal(t, types.CategoryTechnical, names["Go"])
	assert.Equal(t, types.CategoryTool, names["Docker"])
	assert.Equal(t, types.CategorySoft, names["Communication"])

	require.Len(t, resume.Certifications, 1)
	assert.Equal(t, "AWS Certified Solutions Architect", resume.Certifications[0].Name)
}

func TestResumeEmptyInput(t *testing.T) {
	resume := Resume("", "")
	require.NotNil(t, resume, "extraction never fails, even on empty text")
	assert.Empty(t, resume.Experience)
	assert.Empty(t, resume.Skills)
}

const jobText = `Senior Backend Engineer
Acme Corp is hiring.

Requirements
- 5+ years of Go
- PostgreSQL, Kubernetes

Responsibilities
- Design and operate backend services

Benefits
- $140,000 - $180,000 per year
- Remote-first
`

func TestJobExtraction(t *testing.T) {
	job := Job(jobText)
	require.NotNil(t, job)

	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, types.LevelSenior, job.ExperienceLevel)
	assert.Contains(t, job.Description, "Acme Corp is hiring.")

	require.Len(t, job.Requirements, 2)
	require.Len(t, job.Responsibilities, 1)

	require.NotNil(t, job.Salary)
	assert.Equal(t, 140000, job.Salary.Min)
	assert.Equal(t, 180000, job.Salary.Max)
}

func TestJobSkillsFromRequirements(t *testing.T) {
	job := Job(jobText)

	require.NotEmpty(t, job.Skills)
	for _, s := range job.Skills {
		assert.True(t, s.Required, "requirement-derived skills are required")
	}
	assert.Equal(t, len(job.Skills), len(job.Keywords), "every skill doubles as a keyword")
}

func TestJobSeniorityHints(t *testing.T) {
	tests := []struct {
		text     string
		expected types.ExperienceLevel
	}{
		{"Principal Engineer wanted", types.LevelPrincipal},
		{"Staff Engineer wanted", types.LevelPrincipal},
		{"Senior Developer", types.LevelSenior},
		{"Junior Developer", types.LevelEntry},
		{"Entry-level role", types.LevelEntry},
	}
	for _, tt := range tests {
		job := Job(tt.text)
		assert.Equal(t, tt.expected, job.ExperienceLevel, "text %q", tt.text)
	}
}
