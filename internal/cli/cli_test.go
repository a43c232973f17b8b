package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseTrustFlag(t *testing.T) {
	for _, valid := range []string{"builtin", "trusted", "community", "agent-created"} {
		if _, err := parseTrustFlag(valid); err != nil {
			t.Errorf("parseTrustFlag(%q): %v", valid, err)
		}
	}
	if _, err := parseTrustFlag("vip"); err == nil {
		t.Error("expected error for unknown trust level")
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "skillfence") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestScanCommand_JSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SKILLFENCE_HOME", home)
	t.Setenv("SKILLFENCE_CONFIG", "")
	t.Setenv("SKILLFENCE_ENV_FILE", filepath.Join(home, "no-such-env"))

	skill := t.TempDir()
	md := "---\nname: cli-test\ndescription: Exercises the scan command\n---\n\nBe nice.\n"
	if err := os.WriteFile(filepath.Join(skill, "SKILL.md"), []byte(md), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"scan", skill, "--json", "--source", "github.com/acme/skills/cli-test"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	var payload struct {
		SkillName string `json:"skillName"`
		Verdict   string `json:"verdict"`
		Allowed   bool   `json:"allowed"`
		Reason    string `json:"reason"`
	}
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out.String())
	}
	if payload.SkillName != "cli-test" || payload.Verdict != "safe" || !payload.Allowed {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}
