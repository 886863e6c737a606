package parsing

import (
	"testing"

	"github.com/jonathan/resume-scanner/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeyword(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Lowercase passthrough", "python", "python"},
		{"Case folding", "Python", "python"},
		{"All caps", "PYTHON", "python"},
		{"Dot becomes space", "Node.js", "node js"},
		{"Already spaced form matches", "node js", "node js"},
		{"Slash becomes space", "CI/CD", "ci cd"},
		{"Hyphen becomes space", "scikit-learn", "scikit learn"},
		{"Whitespace collapsed", "  machine   learning  ", "machine learning"},
		{"Digits preserved", "EC2", "ec2"},
		{"Plus stripped", "C++", "c"},
		{"Empty string", "", ""},
		{"Punctuation only", "!?.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeKeyword(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNormalizeKeywordIdempotent(t *testing.T) {
	inputs := []string{"Node.js", "CI/CD", "  React  Native ", "C#", "PostgreSQL"}
	for _, input := range inputs {
		once := NormalizeKeyword(input)
		twice := NormalizeKeyword(once)
		assert.Equal(t, once, twice, "normalizing twice should equal normalizing once for %q", input)
	}
}

func TestNormalizeKeywordEquivalence(t *testing.T) {
	// Variants of the same term must normalize to the same form
	assert.Equal(t, NormalizeKeyword("Node.js"), NormalizeKeyword("node js"))
	assert.Equal(t, NormalizeKeyword("CI/CD"), NormalizeKeyword("ci cd"))
	assert.Equal(t, NormalizeKeyword("REACT"), NormalizeKeyword("react"))
}

func TestNormalizeSkillName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Golang to Go", "Golang", "Go"},
		{"golang to Go", "golang", "Go"},
		{"JS to JavaScript", "js", "JavaScript"},
		{"K8s to Kubernetes", "k8s", "Kubernetes"},
		{"nodejs to Node.js", "nodejs", "Node.js"},
		{"postgres to PostgreSQL", "postgres", "PostgreSQL"},
		{"aws to AWS", "aws", "AWS"},
		{"lowercase single word capitalized", "python", "Python"},
		{"mixed case preserved", "PyTorch", "PyTorch"},
		{"multi-word preserved", "Distributed Systems", "Distributed Systems"},
		{"Empty string", "", ""},
		{"Whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeSkillName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDedupeSkills(t *testing.T) {
	skills := []types.Skill{
		{Name: "Node.js", Category: types.CategoryTechnical},
		{Name: "node js", Category: types.CategoryTool},
		{Name: "Python"},
		{Name: "python"},
		{Name: ""},
	}

	out := DedupeSkills(skills)

	assert.Len(t, out, 2)
	assert.Equal(t, "Node.js", out[0].Name)
	assert.Equal(t, types.CategoryTechnical, out[0].Category, "first occurrence wins")
	assert.Equal(t, "Python", out[1].Name)
}

func TestDedupeJobSkills(t *testing.T) {
	skills := []types.JobSkill{
		{Name: "Go", Required: false},
		{Name: "golang", Required: true},
		{Name: "Docker", Required: true},
	}

	out := DedupeJobSkills(skills)

	assert.Len(t, out, 2)
	assert.Equal(t, "Go", out[0].Name)
	assert.True(t, out[0].Required, "required duplicate upgrades the kept entry")
	assert.Equal(t, "Docker", out[1].Name)
}
