package guard

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// ContentHash computes a stable fingerprint over a skill directory (or a
// single file): the sha256 of all regular file contents concatenated in
// sorted path order, truncated to 16 hex characters. Symlinks and
// unreadable files are skipped. Used for change detection between scans,
// not for security decisions.
func ContentHash(skillPath string) string {
	h := sha256.New()
	if fi, err := os.Stat(skillPath); err == nil && fi.IsDir() {
		for _, rel := range listRegularFiles(skillPath) {
			data, err := os.ReadFile(filepath.Join(skillPath, rel))
			if err != nil {
				continue
			}
			_, _ = h.Write(data)
		}
	} else if err == nil {
		if data, err := os.ReadFile(skillPath); err == nil {
			_, _ = h.Write(data)
		}
	}
	return fmt.Sprintf("sha256:%s", hex.EncodeToString(h.Sum(nil))[:16])
}
