package skills

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

type chainTestEntry struct {
	Action string `json:"action"`
	Seq    int    `json:"seq"`
}

func readChainLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	var out []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var obj map[string]any
		if err := json.Unmarshal(sc.Bytes(), &obj); err != nil {
			t.Fatalf("bad line: %v", err)
		}
		out = append(out, obj)
	}
	return out
}

func TestAppendChainedAuditLine_LinksHashes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit", "log.jsonl")
	for i := 1; i <= 3; i++ {
		if err := appendChainedAuditLine(path, chainTestEntry{Action: "install", Seq: i}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	lines := readChainLines(t, path)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if _, hasPrev := lines[0]["prevHash"]; hasPrev {
		t.Fatal("first entry must not have prevHash")
	}
	for i := 1; i < len(lines); i++ {
		prev, _ := lines[i]["prevHash"].(string)
		expected, _ := lines[i-1]["hash"].(string)
		if prev == "" || prev != expected {
			t.Fatalf("entry %d prevHash %q does not match prior hash %q", i, prev, expected)
		}
	}
}

func TestAppendChainedAuditLine_HashCoversEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	if err := appendChainedAuditLine(path, chainTestEntry{Action: "install", Seq: 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	lines := readChainLines(t, path)
	entry := lines[0]
	stored, _ := entry["hash"].(string)
	if recomputed := computeAuditHash(entry); recomputed != stored {
		t.Fatalf("stored hash %q != recomputed %q", stored, recomputed)
	}
}
