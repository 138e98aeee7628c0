package logging

// #region imports
import (
	"database/sql"
	"fmt"
	"time"
)

// #endregion

// #region provenance-entry

// ProvenanceEntry is a single row in the provenance_log table: one
// record per profile update decision, kept for audit and replay.
type ProvenanceEntry struct {
	VersionID   string
	SessionID   string
	Decision    string // "commit" | "no_op"
	Reason      string
	SignalsJSON string
	CreatedAt   time.Time
}

// #endregion provenance-entry

// #region log-decision

// LogDecision writes a provenance entry to the provenance_log table.
func LogDecision(db *sql.DB, entry ProvenanceEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO provenance_log (version_id, session_id, decision, reason, signals_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.VersionID,
		nullIfEmpty(entry.SessionID),
		entry.Decision,
		nullIfEmpty(entry.Reason),
		nullIfEmpty(entry.SignalsJSON),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}

// #endregion log-decision

// #region recent

// Recent returns the newest provenance entries, most recent first.
func Recent(db *sql.DB, limit int) ([]ProvenanceEntry, error) {
	rows, err := db.Query(
		`SELECT version_id, COALESCE(session_id, ''), decision, COALESCE(reason, ''), COALESCE(signals_json, ''), created_at
		 FROM provenance_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list provenance: %w", err)
	}
	defer rows.Close()

	var entries []ProvenanceEntry
	for rows.Next() {
		var e ProvenanceEntry
		var createdStr string
		if err := rows.Scan(&e.VersionID, &e.SessionID, &e.Decision, &e.Reason, &e.SignalsJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan provenance: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion recent

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
