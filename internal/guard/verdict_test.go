package guard

import (
	"strings"
	"testing"
)

func TestDetermineVerdict(t *testing.T) {
	if v := DetermineVerdict(nil); v != VerdictSafe {
		t.Fatalf("empty findings must be safe, got %s", v)
	}
	low := []Finding{{Severity: SeverityLow}}
	if v := DetermineVerdict(low); v != VerdictCaution {
		t.Fatalf("low-only findings must be caution, got %s", v)
	}
	mixed := []Finding{{Severity: SeverityHigh}, {Severity: SeverityCritical}}
	if v := DetermineVerdict(mixed); v != VerdictDangerous {
		t.Fatalf("any critical must be dangerous, got %s", v)
	}
}

func TestSeverityAndVerdictOrdering(t *testing.T) {
	if !(SeverityLow.Rank() < SeverityMedium.Rank() &&
		SeverityMedium.Rank() < SeverityHigh.Rank() &&
		SeverityHigh.Rank() < SeverityCritical.Rank()) {
		t.Fatal("severity ranks out of order")
	}
	if !(VerdictSafe.Rank() < VerdictCaution.Rank() && VerdictCaution.Rank() < VerdictDangerous.Rank()) {
		t.Fatal("verdict ranks out of order")
	}
	if Severity("unknown").Rank() >= SeverityLow.Rank() {
		t.Fatal("unknown severity must rank below low")
	}
	if Verdict("unknown").Rank() != VerdictDangerous.Rank() {
		t.Fatal("unknown verdict must rank as dangerous")
	}
}

func TestBuildSummary(t *testing.T) {
	if s := buildSummary("clean", VerdictSafe, nil); s != "clean: clean scan, no threats detected" {
		t.Fatalf("unexpected clean summary: %q", s)
	}
	findings := []Finding{
		{Category: "network", Severity: SeverityHigh},
		{Category: "exfiltration", Severity: SeverityCritical},
		{Category: "network", Severity: SeverityMedium},
	}
	s := buildSummary("risky", VerdictDangerous, findings)
	if !strings.Contains(s, "3 finding(s)") {
		t.Fatalf("summary missing count: %q", s)
	}
	if !strings.Contains(s, "exfiltration, network") {
		t.Fatalf("categories must be sorted and unique: %q", s)
	}
}

func TestFormatReport(t *testing.T) {
	result := &ScanResult{
		SkillName:  "demo",
		Source:     "github.com/acme/skills/demo",
		TrustLevel: TrustCommunity,
		Verdict:    VerdictCaution,
		Findings: []Finding{
			{PatternID: "a", Severity: SeverityLow, Category: "obfuscation", File: "x.md", Line: 1, Match: "m"},
			{PatternID: "b", Severity: SeverityHigh, Category: "network", File: "y.md", Line: 2, Match: "n"},
		},
		Summary: "demo: caution, 2 finding(s) in network, obfuscation",
	}
	out := FormatReport(result)
	if !strings.Contains(out, "Scan: demo") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "Decision:") {
		t.Fatalf("missing decision line: %q", out)
	}
	// Findings are ordered by severity, highest first.
	if strings.Index(out, "HIGH") > strings.Index(out, "LOW") {
		t.Fatalf("findings not sorted by severity:\n%s", out)
	}
}
