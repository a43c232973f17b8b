package guard

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const matchSnippetLimit = 120

// ScanOptions adjust how a skill bundle is scanned.
type ScanOptions struct {
	// TrustLevel overrides source-based trust resolution. Builtin and
	// agent-created skills are tagged this way by the caller.
	TrustLevel TrustLevel
	// ExtraTrustedPrefixes extends the fixed trusted source set.
	ExtraTrustedPrefixes []string
}

// ScanFile runs the pattern corpus and the invisible-character pass over
// one file. Unreadable or non-text files yield no findings; they never
// fail the scan.
func ScanFile(path, relPath string) []Finding {
	if relPath == "" {
		relPath = filepath.Base(path)
	}
	if !isScannable(path) {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil || !isTextContent(data) {
		return nil
	}
	return scanText(string(data), relPath)
}

func isScannable(path string) bool {
	if filepath.Base(path) == ManifestFileName {
		return true
	}
	_, ok := scannableExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func isTextContent(b []byte) bool {
	if bytes.IndexByte(b, 0) >= 0 {
		return false
	}
	return utf8.Valid(b)
}

// scanText matches every corpus entry against every line, deduplicating
// by (pattern id, line number), then runs the invisible-character pass
// with at most one finding per line.
func scanText(content, relPath string) []Finding {
	lines := strings.Split(content, "\n")
	var findings []Finding
	seen := map[string]struct{}{}

	for _, p := range threatPatterns {
		for i, line := range lines {
			key := fmt.Sprintf("%s:%d", p.id, i+1)
			if _, dup := seen[key]; dup {
				continue
			}
			if !p.re.MatchString(line) {
				continue
			}
			seen[key] = struct{}{}
			findings = append(findings, Finding{
				PatternID:   p.id,
				Severity:    p.severity,
				Category:    p.category,
				File:        relPath,
				Line:        i + 1,
				Match:       truncateMatch(line),
				Description: p.description,
			})
		}
	}

	for i, line := range lines {
		for _, r := range line {
			name, ok := invisibleRunes[r]
			if !ok {
				continue
			}
			findings = append(findings, Finding{
				PatternID:   "invisible_unicode",
				Severity:    SeverityHigh,
				Category:    "injection",
				File:        relPath,
				Line:        i + 1,
				Match:       fmt.Sprintf("U+%04X (%s)", r, name),
				Description: fmt.Sprintf("invisible unicode character %s (possible text hiding/injection)", name),
			})
			break
		}
	}
	return findings
}

func truncateMatch(line string) string {
	m := strings.TrimSpace(line)
	if len(m) > matchSnippetLimit {
		m = m[:matchSnippetLimit-3] + "..."
	}
	return m
}

// ScanSkill scans a skill directory (or a single skill file) and returns
// the aggregate result. The scan itself never fails: unreadable files
// are skipped and structural anomalies become findings.
func ScanSkill(skillPath, source string, opts ScanOptions) *ScanResult {
	name := resolveSkillName(skillPath)
	trust := opts.TrustLevel
	if trust == "" {
		trust = ResolveTrustLevel(source, opts.ExtraTrustedPrefixes)
	}

	var findings []Finding
	if fi, err := os.Stat(skillPath); err == nil && fi.IsDir() {
		findings = append(findings, auditStructure(skillPath)...)
		for _, f := range listRegularFiles(skillPath) {
			findings = append(findings, ScanFile(filepath.Join(skillPath, f), f)...)
		}
	} else if err == nil {
		findings = append(findings, ScanFile(skillPath, filepath.Base(skillPath))...)
	}

	verdict := DetermineVerdict(findings)
	return &ScanResult{
		ScanID:     uuid.NewString(),
		SkillName:  name,
		Source:     source,
		TrustLevel: trust,
		Verdict:    verdict,
		Findings:   findings,
		ScannedAt:  time.Now().UTC(),
		Summary:    buildSummary(name, verdict, findings),
	}
}

// listRegularFiles returns slash-separated relative paths of all regular
// files under root in lexical order. Symlinks are not followed; their
// handling lives in the structural audit.
func listRegularFiles(root string) []string {
	var out []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out
}

func resolveSkillName(skillPath string) string {
	if data, err := os.ReadFile(filepath.Join(skillPath, ManifestFileName)); err == nil {
		if fm, ok := parseSkillFrontmatter(data); ok && fm.Name != "" {
			return fm.Name
		}
	}
	if name := sanitizeSkillName(filepath.Base(skillPath)); name != "" {
		return name
	}
	return filepath.Base(skillPath)
}
