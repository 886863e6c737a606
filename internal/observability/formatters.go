// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-scanner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScore outputs the sub-scores and weighted overall score.
func (p *Printer) PrintScore(score *types.ATSScoreResult) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:              %3d / 100\n\n", score.OverallScore))
	sb.WriteString(fmt.Sprintf("Keyword match:        %3d\n", score.KeywordMatch))
	sb.WriteString(fmt.Sprintf("Skill alignment:      %3d\n", score.SkillAlignment))
	sb.WriteString(fmt.Sprintf("Experience relevance: %3d\n", score.ExperienceRelevance))
	sb.WriteString(fmt.Sprintf("Education match:      %3d\n", score.EducationMatch))
	sb.WriteString(fmt.Sprintf("ATS compliance:       %3d", score.ATSCompliance))

	p.printBox("ATS SCORE", sb.String())
}

// PrintMatch outputs a summary of the keyword match result.
func (p *Printer) PrintMatch(match *types.KeywordMatchResult) {
	if match == nil {
		return
	}

	var sb strings.Builder
	matched := 0
	for _, em := range match.ExactMatches {
		if em.Matched {
			matched++
		}
	}
	sb.WriteString(fmt.Sprintf("Match score: %d / 100\n", match.MatchScore))
	sb.WriteString(fmt.Sprintf("Exact: %d/%d   Semantic: %d\n", matched, len(match.ExactMatches), len(match.SemanticMatches)))

	if len(match.MissingKeywords) > 0 {
		sb.WriteString("\nMissing keywords:\n")
		count := min(len(match.MissingKeywords), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", match.MissingKeywords[i]))
		}
		if len(match.MissingKeywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(match.MissingKeywords)-maxItemsToShow))
		}
	}

	p.printBox("KEYWORD MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGaps outputs the missing skills with importance tiers.
func (p *Printer) PrintGaps(gaps *types.SkillGapResult) {
	if gaps == nil || len(gaps.MissingSkills) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(gaps.MissingSkills), maxItemsToShow)
	for i := 0; i < count; i++ {
		ms := gaps.MissingSkills[i]
		sb.WriteString(fmt.Sprintf("• %s (%s)\n", ms.Name, ms.Importance))
	}
	if len(gaps.MissingSkills) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(gaps.MissingSkills)-maxItemsToShow))
	}
	sb.WriteString(fmt.Sprintf("\nMarket: demand %s, salary impact %s, growth %s",
		gaps.MarketAlignment.Demand, gaps.MarketAlignment.SalaryImpact, gaps.MarketAlignment.Growth))

	p.printBox("SKILL GAPS", sb.String())
}

// PrintRewrites outputs the priority rewrites and quick wins.
func (p *Printer) PrintRewrites(rewrites *types.RewriteResult) {
	if rewrites == nil || len(rewrites.Suggestions) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Suggestions: %d   Priority: %d   Quick wins: %d\n",
		len(rewrites.Suggestions), len(rewrites.PriorityRewrites), len(rewrites.QuickWins)))

	for _, s := range rewrites.PriorityRewrites {
		label := string(s.Section)
		if s.EntryLabel != "" {
			label += " (" + s.EntryLabel + ")"
		}
		sb.WriteString(fmt.Sprintf("\n! %s: +%d", label, s.Scores.Improvement))
	}
	for _, s := range rewrites.QuickWins {
		sb.WriteString(fmt.Sprintf("\n~ %s: +%d", s.Section, s.Scores.Improvement))
	}

	p.printBox("REWRITE SUGGESTIONS", sb.String())
}

// PrintStages outputs the per-stage status reports for a scan.
func (p *Printer) PrintStages(result *types.ScanResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	for i, stage := range result.Stages {
		marker := "✓"
		switch stage.Status {
		case types.StageDegraded:
			marker = "~"
		case types.StageFailed:
			marker = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %-18s %4dms", marker, stage.Stage, stage.Duration))
		if i < len(result.Stages)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("SCAN %s", result.ScanID), sb.String())
}
