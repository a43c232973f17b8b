// Package skills implements the install pipeline gated by the guard.
package skills

import (
	"os"
	"path/filepath"

	"github.com/SkillFence/skillfence/internal/config"
)

// StateDirs contains the private filesystem locations used by the skills runtime.
type StateDirs struct {
	Root      string
	TmpDir    string
	Installed string
	Snapshots string
	AuditDir  string
	HistoryDB string
}

func resolveStateRoot() (string, error) {
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cfgPath), "skills"), nil
}

// ResolveStateDirs computes the private skill runtime directories.
func ResolveStateDirs() (StateDirs, error) {
	root, err := resolveStateRoot()
	if err != nil {
		return StateDirs{}, err
	}
	return StateDirs{
		Root:      root,
		TmpDir:    filepath.Join(root, "tmp"),
		Installed: filepath.Join(root, "installed"),
		Snapshots: filepath.Join(root, "snapshots"),
		AuditDir:  filepath.Join(root, "audit"),
		HistoryDB: filepath.Join(root, "history.db"),
	}, nil
}

// EnsureStateDirs creates required private skill directories with 0700 permissions.
func EnsureStateDirs() (StateDirs, error) {
	dirs, err := ResolveStateDirs()
	if err != nil {
		return StateDirs{}, err
	}
	for _, dir := range []string{dirs.Root, dirs.TmpDir, dirs.Installed, dirs.Snapshots, dirs.AuditDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return StateDirs{}, err
		}
		if err := os.Chmod(dir, 0o700); err != nil {
			return StateDirs{}, err
		}
	}
	return dirs, nil
}
