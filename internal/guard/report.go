package guard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
)

var verdictColors = map[Verdict]*color.Color{
	VerdictSafe:      color.New(color.FgGreen),
	VerdictCaution:   color.New(color.FgYellow),
	VerdictDangerous: color.New(color.FgRed, color.Bold),
}

func colorVerdict(v Verdict) string {
	if c, ok := verdictColors[v]; ok {
		return c.Sprint(strings.ToUpper(string(v)))
	}
	return strings.ToUpper(string(v))
}

// FormatReport renders a scan result as a deterministic multi-line
// report: header, findings sorted critical first, then the install
// decision for the unforced case.
func FormatReport(result *ScanResult) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Scan: %s (%s/%s)  Verdict: %s",
		result.SkillName, result.Source, result.TrustLevel, colorVerdict(result.Verdict)))

	if len(result.Findings) > 0 {
		sorted := make([]Finding, len(result.Findings))
		copy(sorted, result.Findings)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Severity.Rank() > sorted[j].Severity.Rank()
		})
		for _, f := range sorted {
			sev := fmt.Sprintf("%-8s", strings.ToUpper(string(f.Severity)))
			cat := fmt.Sprintf("%-14s", f.Category)
			loc := fmt.Sprintf("%-30s", fmt.Sprintf("%s:%d", f.File, f.Line))
			match := f.Match
			if len(match) > 60 {
				match = match[:60]
			}
			lines = append(lines, fmt.Sprintf("  %s %s %s %q", sev, cat, loc, match))
		}
		lines = append(lines, "")
	}

	allowed, reason := ShouldAllowInstall(result, false)
	status := "BLOCKED"
	if allowed {
		status = "ALLOWED"
	}
	lines = append(lines, fmt.Sprintf("Decision: %s - %s", status, reason))
	return strings.Join(lines, "\n")
}
