package guard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestContentHash_Format(t *testing.T) {
	root := writeSkill(t, map[string]string{"SKILL.md": "content\n"})
	h := ContentHash(root)
	if !strings.HasPrefix(h, "sha256:") {
		t.Fatalf("expected sha256: prefix, got %q", h)
	}
	if len(h) != len("sha256:")+16 {
		t.Fatalf("expected 16 hex chars after prefix, got %q", h)
	}
}

func TestContentHash_Deterministic(t *testing.T) {
	files := map[string]string{
		"SKILL.md":  "---\nname: x\n---\n",
		"b.md":      "beta\n",
		"a.md":      "alpha\n",
		"sub/c.txt": "gamma\n",
	}
	first := ContentHash(writeSkill(t, files))
	second := ContentHash(writeSkill(t, files))
	if first != second {
		t.Fatalf("hash not stable across identical trees: %q vs %q", first, second)
	}
}

func TestContentHash_ChangesWithContent(t *testing.T) {
	root := writeSkill(t, map[string]string{"SKILL.md": "v1\n"})
	before := ContentHash(root)
	if err := os.WriteFile(filepath.Join(root, "SKILL.md"), []byte("v2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if after := ContentHash(root); after == before {
		t.Fatal("hash must change when file content changes")
	}
}

func TestContentHash_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skill.md")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if h := ContentHash(path); !strings.HasPrefix(h, "sha256:") {
		t.Fatalf("unexpected hash %q", h)
	}
}
