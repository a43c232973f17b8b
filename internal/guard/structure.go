package guard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// auditStructure walks a skill directory and reports structural
// anomalies: escaping or broken symlinks, oversized files, binary
// payloads, stray executable bits, and directory-level size/count
// ceilings. Thresholds are fixed constants in patterns.go.
func auditStructure(root string) []Finding {
	var findings []Finding
	fileCount := 0
	var totalSize int64

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		rootResolved = root
	}

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil || path == root || d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		fileCount++

		if d.Type()&os.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil {
				findings = append(findings, Finding{
					PatternID:   "broken_symlink",
					Severity:    SeverityMedium,
					Category:    "traversal",
					File:        rel,
					Line:        0,
					Match:       "broken symlink",
					Description: "broken or circular symlink",
				})
				return nil
			}
			// Containment is a literal prefix check on resolved paths.
			if !strings.HasPrefix(resolved, rootResolved) {
				findings = append(findings, Finding{
					PatternID:   "symlink_escape",
					Severity:    SeverityCritical,
					Category:    "traversal",
					File:        rel,
					Line:        0,
					Match:       "symlink -> " + resolved,
					Description: "symlink points outside the skill directory",
				})
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		size := info.Size()
		totalSize += size

		if size > maxSingleFileSize {
			findings = append(findings, Finding{
				PatternID:   "oversized_file",
				Severity:    SeverityMedium,
				Category:    "structural",
				File:        rel,
				Line:        0,
				Match:       fmt.Sprintf("%dKB", size>>10),
				Description: fmt.Sprintf("file is %dKB (limit: %dKB)", size>>10, maxSingleFileSize>>10),
			})
		}

		ext := strings.ToLower(filepath.Ext(path))
		if _, bad := suspiciousBinaryExtensions[ext]; bad {
			findings = append(findings, Finding{
				PatternID:   "binary_file",
				Severity:    SeverityCritical,
				Category:    "structural",
				File:        rel,
				Line:        0,
				Match:       "binary: " + ext,
				Description: fmt.Sprintf("binary/executable file (%s) should not be in a skill", ext),
			})
		}

		if _, script := scriptExtensions[ext]; !script && info.Mode()&0o111 != 0 {
			findings = append(findings, Finding{
				PatternID:   "unexpected_executable",
				Severity:    SeverityMedium,
				Category:    "structural",
				File:        rel,
				Line:        0,
				Match:       "executable bit set",
				Description: "file has executable permission but is not a recognized script type",
			})
		}
		return nil
	})

	if fileCount > maxFileCount {
		findings = append(findings, Finding{
			PatternID:   "too_many_files",
			Severity:    SeverityMedium,
			Category:    "structural",
			File:        "(directory)",
			Line:        0,
			Match:       fmt.Sprintf("%d files", fileCount),
			Description: fmt.Sprintf("skill has %d files (limit: %d)", fileCount, maxFileCount),
		})
	}
	if totalSize > maxTotalSkillSize {
		findings = append(findings, Finding{
			PatternID:   "oversized_skill",
			Severity:    SeverityHigh,
			Category:    "structural",
			File:        "(directory)",
			Line:        0,
			Match:       fmt.Sprintf("%dKB total", totalSize>>10),
			Description: fmt.Sprintf("skill is %dKB total (limit: %dKB)", totalSize>>10, maxTotalSkillSize>>10),
		})
	}
	return findings
}
