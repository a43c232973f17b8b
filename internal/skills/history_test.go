package skills

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/SkillFence/skillfence/internal/guard"
)

func testScanResult(name, verdict string, findings int) *guard.ScanResult {
	fs := make([]guard.Finding, findings)
	for i := range fs {
		fs[i] = guard.Finding{PatternID: "p", Severity: guard.SeverityMedium}
	}
	return &guard.ScanResult{
		ScanID:     name + "-scan",
		SkillName:  name,
		Source:     "github.com/acme/skills/" + name,
		TrustLevel: guard.TrustCommunity,
		Verdict:    guard.Verdict(verdict),
		Findings:   fs,
		ScannedAt:  time.Now().UTC(),
	}
}

func TestHistory_RecordAndRecent(t *testing.T) {
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer h.Close()

	if err := h.Record(testScanResult("alpha", "safe", 0), "sha256:aaaa", true, "Allowed (community source, safe verdict)"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := h.Record(testScanResult("beta", "caution", 2), "sha256:bbbb", false, "Blocked"); err != nil {
		t.Fatalf("record: %v", err)
	}

	entries, err := h.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.ScanID == "" || e.SkillName == "" {
			t.Fatalf("incomplete entry: %#v", e)
		}
	}
}

func TestHistory_RecordIsIdempotentPerScanID(t *testing.T) {
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer h.Close()

	result := testScanResult("gamma", "safe", 0)
	if err := h.Record(result, "sha256:cccc", true, "ok"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := h.Record(result, "sha256:cccc", true, "ok"); err != nil {
		t.Fatalf("duplicate record: %v", err)
	}
	entries, err := h.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("duplicate scan id must not create a second row, got %d", len(entries))
	}
}

func TestHistory_LastForSkill(t *testing.T) {
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer h.Close()

	old := testScanResult("delta", "caution", 1)
	old.ScanID = "delta-1"
	old.ScannedAt = time.Now().UTC().Add(-time.Hour)
	if err := h.Record(old, "sha256:d1", false, "Blocked"); err != nil {
		t.Fatalf("record: %v", err)
	}
	latest := testScanResult("delta", "safe", 0)
	latest.ScanID = "delta-2"
	if err := h.Record(latest, "sha256:d2", true, "Allowed"); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := h.LastForSkill("delta")
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if got == nil || got.ScanID != "delta-2" {
		t.Fatalf("expected latest scan, got %#v", got)
	}
	missing, err := h.LastForSkill("nope")
	if err != nil {
		t.Fatalf("last missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown skill, got %#v", missing)
	}
}
