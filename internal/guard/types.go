// Package guard implements the static security gate for skill bundles.
package guard

import (
	"strings"
	"time"
)

// Severity indicates how serious a finding is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Rank returns the ordering value of a severity (low=0 .. critical=3).
// Unknown severities rank below low.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// NormalizeSeverity maps arbitrary input to a known severity, defaulting
// unrecognized values to medium. Classifier output is folded to lower
// case before matching.
func NormalizeSeverity(s string) Severity {
	s = strings.ToLower(strings.TrimSpace(s))
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(s)
	default:
		return SeverityMedium
	}
}

// Verdict is the overall risk classification of a scan.
type Verdict string

const (
	VerdictSafe      Verdict = "safe"
	VerdictCaution   Verdict = "caution"
	VerdictDangerous Verdict = "dangerous"
)

var verdictRank = map[Verdict]int{
	VerdictSafe:      0,
	VerdictCaution:   1,
	VerdictDangerous: 2,
}

// Rank returns the ordering value of a verdict (safe=0 .. dangerous=2).
// Unknown verdicts rank as dangerous.
func (v Verdict) Rank() int {
	if r, ok := verdictRank[v]; ok {
		return r
	}
	return 2
}

// TrustLevel is the provenance tier of a skill's source.
type TrustLevel string

const (
	TrustBuiltin      TrustLevel = "builtin"
	TrustTrusted      TrustLevel = "trusted"
	TrustCommunity    TrustLevel = "community"
	TrustAgentCreated TrustLevel = "agent-created"
)

// Finding is one detected issue in a skill bundle. Line 0 means the
// finding applies to a whole file or the whole directory.
type Finding struct {
	PatternID   string   `json:"patternId"`
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	File        string   `json:"file"`
	Line        int      `json:"line"`
	Match       string   `json:"match"`
	Description string   `json:"description"`
}

// ScanResult is the outcome of scanning one skill bundle. A result is
// never mutated after construction; merging classifier findings produces
// a new ScanResult.
type ScanResult struct {
	ScanID     string     `json:"scanId"`
	SkillName  string     `json:"skillName"`
	Source     string     `json:"source"`
	TrustLevel TrustLevel `json:"trustLevel"`
	Verdict    Verdict    `json:"verdict"`
	Findings   []Finding  `json:"findings"`
	ScannedAt  time.Time  `json:"scannedAt"`
	Summary    string     `json:"summary"`
}
