package skills

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/SkillFence/skillfence/internal/guard"
)

// History is the local scan-history store backed by sqlite.
type History struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS scans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	scan_id TEXT UNIQUE NOT NULL,
	skill_name TEXT NOT NULL,
	source TEXT NOT NULL,
	trust_level TEXT NOT NULL,
	verdict TEXT NOT NULL,
	findings TEXT NOT NULL DEFAULT '[]',
	finding_count INTEGER NOT NULL DEFAULT 0,
	content_hash TEXT NOT NULL DEFAULT '',
	allowed BOOLEAN NOT NULL DEFAULT 0,
	reason TEXT NOT NULL DEFAULT '',
	scanned_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scans_skill ON scans(skill_name);
CREATE INDEX IF NOT EXISTS idx_scans_scanned_at ON scans(scanned_at);
`

// OpenHistory opens (creating if needed) the scan history database.
func OpenHistory(dbPath string) (*History, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores one scan decision.
func (h *History) Record(result *guard.ScanResult, contentHash string, allowed bool, reason string) error {
	findings, err := json.Marshal(result.Findings)
	if err != nil {
		return err
	}
	_, err = h.db.Exec(`
		INSERT INTO scans (scan_id, skill_name, source, trust_level, verdict, findings, finding_count, content_hash, allowed, reason, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(scan_id) DO NOTHING`,
		result.ScanID, result.SkillName, result.Source, string(result.TrustLevel),
		string(result.Verdict), string(findings), len(result.Findings),
		contentHash, allowed, reason, result.ScannedAt.UTC().Format(time.RFC3339))
	return err
}

// HistoryEntry is one row of the scan history.
type HistoryEntry struct {
	ScanID       string    `json:"scanId"`
	SkillName    string    `json:"skillName"`
	Source       string    `json:"source"`
	TrustLevel   string    `json:"trustLevel"`
	Verdict      string    `json:"verdict"`
	FindingCount int       `json:"findingCount"`
	ContentHash  string    `json:"contentHash"`
	Allowed      bool      `json:"allowed"`
	Reason       string    `json:"reason"`
	ScannedAt    time.Time `json:"scannedAt"`
}

// Recent returns the most recent scans, newest first.
func (h *History) Recent(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.Query(`
		SELECT scan_id, skill_name, source, trust_level, verdict, finding_count, content_hash, allowed, reason, scanned_at
		FROM scans ORDER BY scanned_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var scannedAt string
		if err := rows.Scan(&e.ScanID, &e.SkillName, &e.Source, &e.TrustLevel, &e.Verdict,
			&e.FindingCount, &e.ContentHash, &e.Allowed, &e.Reason, &scannedAt); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339, scannedAt); err == nil {
			e.ScannedAt = ts
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LastForSkill returns the most recent scan for a skill name, or nil.
func (h *History) LastForSkill(name string) (*HistoryEntry, error) {
	rows, err := h.db.Query(`
		SELECT scan_id, skill_name, source, trust_level, verdict, finding_count, content_hash, allowed, reason, scanned_at
		FROM scans WHERE skill_name = ? ORDER BY scanned_at DESC, id DESC LIMIT 1`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	var e HistoryEntry
	var scannedAt string
	if err := rows.Scan(&e.ScanID, &e.SkillName, &e.Source, &e.TrustLevel, &e.Verdict,
		&e.FindingCount, &e.ContentHash, &e.Allowed, &e.Reason, &scannedAt); err != nil {
		return nil, err
	}
	if ts, err := time.Parse(time.RFC3339, scannedAt); err == nil {
		e.ScannedAt = ts
	}
	return &e, nil
}
