package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/SkillFence/skillfence/internal/config"
	"github.com/SkillFence/skillfence/internal/guard"
)

const metadataFileName = ".skillfence-skill.json"
const snapshotRetentionPerSkill = 5

// InstallResult contains the scan, decision, and install outcome for one skill.
type InstallResult struct {
	Name        string            `json:"name"`
	Source      string            `json:"source"`
	Allowed     bool              `json:"allowed"`
	Reason      string            `json:"reason"`
	Forced      bool              `json:"forced"`
	Updated     bool              `json:"updated"`
	InstallPath string            `json:"installPath,omitempty"`
	ContentHash string            `json:"contentHash"`
	// PreviousContentHash is the hash recorded by the most recent prior
	// scan of the same skill, when history is enabled.
	PreviousContentHash string            `json:"previousContentHash,omitempty"`
	ContentChanged      bool              `json:"contentChanged"`
	Scan                *guard.ScanResult `json:"scan"`
	InstalledAt         time.Time         `json:"installedAt,omitempty"`
}

type installedMetadata struct {
	Name        string           `json:"name"`
	Source      string           `json:"source"`
	TrustLevel  guard.TrustLevel `json:"trustLevel"`
	Verdict     guard.Verdict    `json:"verdict"`
	ScanID      string           `json:"scanId"`
	ContentHash string           `json:"contentHash"`
	InstalledAt time.Time        `json:"installedAt"`
	UpdatedAt   time.Time        `json:"updatedAt,omitempty"`
}

type installAuditEntry struct {
	Time        time.Time        `json:"time"`
	Action      string           `json:"action"`
	SkillName   string           `json:"skillName"`
	Source      string           `json:"source"`
	TrustLevel  guard.TrustLevel `json:"trustLevel"`
	Verdict     guard.Verdict    `json:"verdict"`
	Findings    int              `json:"findings"`
	Allowed     bool             `json:"allowed"`
	Forced      bool             `json:"forced"`
	Reason      string           `json:"reason"`
	ContentHash string           `json:"contentHash,omitempty"`
	InstallPath string           `json:"installPath,omitempty"`
	PrevHash    string           `json:"prevHash,omitempty"`
	Hash        string           `json:"hash,omitempty"`
}

// InstallOptions adjust a single install run.
type InstallOptions struct {
	// Force overrides a block decision, including the dangerous gate.
	Force bool
	// TrustLevel tags builtin or agent-created skills; empty means the
	// trust tier is resolved from the source identifier.
	TrustLevel guard.TrustLevel
	// Auditor optionally enriches the static scan with an LLM pass.
	Auditor guard.Auditor
}

// Install scans a skill directory, applies the install policy, and on an
// allow decision copies the bundle into the installed tree. A blocked
// install is a decision, not an error: the returned result carries the
// reason and the tree is left untouched.
func Install(ctx context.Context, cfg *config.Config, skillDir, source string, opts InstallOptions) (*InstallResult, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if _, err := os.Stat(skillDir); err != nil {
		return nil, fmt.Errorf("skill directory: %w", err)
	}

	result := guard.ScanSkill(skillDir, source, guard.ScanOptions{
		TrustLevel:           opts.TrustLevel,
		ExtraTrustedPrefixes: cfg.Trust.ExtraTrustedPrefixes,
	})
	if opts.Auditor != nil {
		result = guard.MergeAudit(ctx, result, skillDir, opts.Auditor)
	}
	allowed, reason := guard.ShouldAllowInstall(result, opts.Force)
	hash := guard.ContentHash(skillDir)

	out := &InstallResult{
		Name:        result.SkillName,
		Source:      source,
		Allowed:     allowed,
		Reason:      reason,
		Forced:      opts.Force,
		ContentHash: hash,
		Scan:        result,
	}

	if cfg.History.Enabled {
		if prev := recordScanHistory(result, hash, allowed, reason); prev != "" {
			out.PreviousContentHash = prev
			out.ContentChanged = prev != hash
		}
	}

	if !allowed {
		_ = appendInstallAudit(installAuditEntry{
			Action:      "install",
			SkillName:   result.SkillName,
			Source:      source,
			TrustLevel:  result.TrustLevel,
			Verdict:     result.Verdict,
			Findings:    len(result.Findings),
			Allowed:     false,
			Forced:      opts.Force,
			Reason:      reason,
			ContentHash: hash,
		})
		return out, nil
	}

	state, err := EnsureStateDirs()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	dest := filepath.Join(state.Installed, result.SkillName)
	snapshot := filepath.Join(state.Snapshots, result.SkillName, now.Format("20060102T150405Z"))
	stage := filepath.Join(state.TmpDir, fmt.Sprintf("install-%s-%d", result.SkillName, now.UnixNano()))
	if err := copySkillTree(skillDir, stage); err != nil {
		_ = os.RemoveAll(stage)
		return nil, err
	}

	prevInstalledAt := now
	if prevMeta, err := readMetadata(filepath.Join(dest, metadataFileName)); err == nil && !prevMeta.InstalledAt.IsZero() {
		prevInstalledAt = prevMeta.InstalledAt
	}
	meta := installedMetadata{
		Name:        result.SkillName,
		Source:      source,
		TrustLevel:  result.TrustLevel,
		Verdict:     result.Verdict,
		ScanID:      result.ScanID,
		ContentHash: hash,
		InstalledAt: prevInstalledAt,
	}

	updated := false
	if _, err := os.Stat(dest); err == nil {
		updated = true
		meta.UpdatedAt = now
		if err := os.MkdirAll(filepath.Dir(snapshot), 0o700); err != nil {
			_ = os.RemoveAll(stage)
			return nil, err
		}
		if err := os.Rename(dest, snapshot); err != nil {
			_ = os.RemoveAll(stage)
			return nil, err
		}
	}

	if err := writeMetadata(filepath.Join(stage, metadataFileName), meta); err != nil {
		_ = os.RemoveAll(stage)
		return nil, err
	}
	if err := os.Rename(stage, dest); err != nil {
		if updated {
			_ = os.Rename(snapshot, dest)
		}
		_ = os.RemoveAll(stage)
		return nil, err
	}
	if updated {
		_ = pruneSkillSnapshots(filepath.Join(state.Snapshots, result.SkillName), snapshotRetentionPerSkill)
	}

	out.Updated = updated
	out.InstallPath = dest
	out.InstalledAt = now
	_ = appendInstallAudit(installAuditEntry{
		Action:      "install",
		SkillName:   result.SkillName,
		Source:      source,
		TrustLevel:  result.TrustLevel,
		Verdict:     result.Verdict,
		Findings:    len(result.Findings),
		Allowed:     true,
		Forced:      opts.Force,
		Reason:      reason,
		ContentHash: hash,
		InstallPath: dest,
	})
	return out, nil
}

// InstalledSkill summarizes one entry of the installed tree.
type InstalledSkill struct {
	Name        string           `json:"name"`
	Source      string           `json:"source"`
	TrustLevel  guard.TrustLevel `json:"trustLevel"`
	Verdict     guard.Verdict    `json:"verdict"`
	ContentHash string           `json:"contentHash"`
	InstalledAt time.Time        `json:"installedAt"`
	Drifted     bool             `json:"drifted"`
}

// ListInstalled returns installed skills sorted by name. Drifted is set
// when the current directory content no longer matches the recorded
// content hash.
func ListInstalled() ([]InstalledSkill, error) {
	state, err := ResolveStateDirs()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(state.Installed)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []InstalledSkill
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(state.Installed, e.Name())
		meta, err := readMetadata(filepath.Join(dir, metadataFileName))
		if err != nil {
			continue
		}
		current := hashWithoutMetadata(dir)
		out = append(out, InstalledSkill{
			Name:        meta.Name,
			Source:      meta.Source,
			TrustLevel:  meta.TrustLevel,
			Verdict:     meta.Verdict,
			ContentHash: meta.ContentHash,
			InstalledAt: meta.InstalledAt,
			Drifted:     current != meta.ContentHash,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// hashWithoutMetadata recomputes the content hash of an installed skill,
// excluding the metadata file the installer added.
func hashWithoutMetadata(dir string) string {
	tmp, err := os.MkdirTemp("", "skillfence-hash-*")
	if err != nil {
		return ""
	}
	defer os.RemoveAll(tmp)
	if err := copySkillTree(dir, filepath.Join(tmp, "skill")); err != nil {
		return ""
	}
	_ = os.Remove(filepath.Join(tmp, "skill", metadataFileName))
	return guard.ContentHash(filepath.Join(tmp, "skill"))
}

// copySkillTree copies regular files from src into dst, preserving
// relative layout. Symlinks are not copied; the guard already reported
// them and an install must never materialize content from outside the
// bundle.
func copySkillTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o700)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
			return err
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = io.Copy(out, in)
		return err
	})
}

func writeMetadata(path string, meta installedMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func readMetadata(path string) (*installedMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var meta installedMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func appendInstallAudit(entry installAuditEntry) error {
	state, err := EnsureStateDirs()
	if err != nil {
		return err
	}
	if entry.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}
	return appendChainedAuditLine(filepath.Join(state.AuditDir, "install-decisions.jsonl"), &entry)
}

// recordScanHistory appends the scan to the history store and returns
// the content hash of the most recent prior scan of the same skill, or
// "" when none exists or history is unavailable.
func recordScanHistory(result *guard.ScanResult, hash string, allowed bool, reason string) string {
	state, err := EnsureStateDirs()
	if err != nil {
		return ""
	}
	h, err := OpenHistory(state.HistoryDB)
	if err != nil {
		return ""
	}
	defer h.Close()
	var prevHash string
	if prev, err := h.LastForSkill(result.SkillName); err == nil && prev != nil {
		prevHash = prev.ContentHash
	}
	_ = h.Record(result, hash, allowed, reason)
	return prevHash
}

func pruneSkillSnapshots(snapshotRoot string, keep int) error {
	if keep <= 0 {
		keep = 1
	}
	entries, err := os.ReadDir(snapshotRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil
	}
	sort.Strings(names)
	for _, old := range names[:len(names)-keep] {
		if err := os.RemoveAll(filepath.Join(snapshotRoot, old)); err != nil {
			return err
		}
	}
	return nil
}
