package types

import (
	"time"

	"github.com/google/uuid"
)

// StageStatus describes how one pipeline stage finished
type StageStatus string

// StageStatus constants for per-stage outcomes
const (
	// StageOK means the stage completed with full fidelity
	StageOK StageStatus = "ok"
	// StageDegraded means the stage completed using a fallback path
	StageDegraded StageStatus = "degraded"
	// StageFailed means the stage could not produce a usable result
	StageFailed StageStatus = "failed"
)

// StageReport records the outcome of one pipeline stage
type StageReport struct {
	Stage    string      `json:"stage"`
	Status   StageStatus `json:"status"`
	Detail   string      `json:"detail,omitempty"`
	Duration int64       `json:"duration_ms"`
}

// ScanResult aggregates the full output of one orchestrated scan.
// Read-only after creation; owned exclusively by the requesting caller.
type ScanResult struct {
	ScanID      uuid.UUID           `json:"scan_id"`
	CreatedAt   time.Time           `json:"created_at"`
	Resume      *ParsedResume       `json:"resume"`
	Job         *ParsedJob          `json:"job"`
	Match       *KeywordMatchResult `json:"match"`
	Score       *ATSScoreResult     `json:"score"`
	Gaps        *SkillGapResult     `json:"gaps"`
	Rewrites    *RewriteResult      `json:"rewrites"`
	Explanation *ScanExplanation    `json:"explanation"`
	Stages      []StageReport       `json:"stages"`
}
