package profilestore

// #region imports
import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sayanm085/puzzle-mind/internal/insight"
	"github.com/sayanm085/puzzle-mind/internal/mind"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS profile_versions (
	version_id    TEXT PRIMARY KEY,
	parent_id     TEXT,
	model_json    TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	metrics_json  TEXT,
	FOREIGN KEY (parent_id) REFERENCES profile_versions(version_id)
);

CREATE TABLE IF NOT EXISTS active_profile (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	version_id    TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES profile_versions(version_id)
);

CREATE TABLE IF NOT EXISTS session_history (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id       TEXT NOT NULL,
	sector           TEXT NOT NULL,
	accuracy         REAL NOT NULL,
	mean_response_ms REAL NOT NULL,
	rounds_played    INTEGER NOT NULL,
	duration_sec     REAL NOT NULL,
	completed_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS insight_log (
	insight_id    TEXT PRIMARY KEY,
	last_shown    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS provenance_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	version_id    TEXT NOT NULL,
	session_id    TEXT,
	decision      TEXT NOT NULL,
	reason        TEXT,
	signals_json  TEXT,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES profile_versions(version_id)
);
`

// #endregion schema

// #region version

// ProfileVersion is one persisted snapshot of the player model.
type ProfileVersion struct {
	VersionID   string
	ParentID    string
	Model       mind.PlayerMindModel
	CreatedAt   time.Time
	MetricsJSON string
}

// #endregion version

// #region store

// Store manages versioned player profiles in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region create-initial

// CreateInitialProfile persists a fresh default model for the player and
// points the active pointer at it.
func (s *Store) CreateInitialProfile(playerID string) (ProfileVersion, error) {
	ver := ProfileVersion{
		VersionID: uuid.New().String(),
		Model:     mind.DefaultModel(playerID),
		CreatedAt: time.Now().UTC(),
	}

	modelJSON, err := json.Marshal(ver.Model)
	if err != nil {
		return ProfileVersion{}, fmt.Errorf("marshal model: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return ProfileVersion{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO profile_versions (version_id, parent_id, model_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		ver.VersionID, nil, string(modelJSON), ver.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return ProfileVersion{}, fmt.Errorf("insert version: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO active_profile (id, version_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET version_id = excluded.version_id`,
		ver.VersionID,
	)
	if err != nil {
		return ProfileVersion{}, fmt.Errorf("set active: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ProfileVersion{}, fmt.Errorf("commit: %w", err)
	}
	return ver, nil
}

// #endregion create-initial

// #region get

// GetCurrent reads the active profile version.
func (s *Store) GetCurrent() (ProfileVersion, error) {
	var versionID string
	err := s.db.QueryRow(`SELECT version_id FROM active_profile WHERE id = 1`).Scan(&versionID)
	if err != nil {
		return ProfileVersion{}, fmt.Errorf("get active: %w", err)
	}
	return s.GetVersion(versionID)
}

// GetVersion retrieves a specific profile version by ID. The stored JSON
// merges over a freshly constructed default model so partial or stale
// records never surface missing fields; the result is re-clamped.
func (s *Store) GetVersion(id string) (ProfileVersion, error) {
	var ver ProfileVersion
	var parentID sql.NullString
	var modelJSON string
	var createdStr string
	var metricsJSON sql.NullString

	err := s.db.QueryRow(
		`SELECT version_id, parent_id, model_json, created_at, metrics_json
		 FROM profile_versions WHERE version_id = ?`, id,
	).Scan(&ver.VersionID, &parentID, &modelJSON, &createdStr, &metricsJSON)
	if err != nil {
		return ProfileVersion{}, fmt.Errorf("get version %s: %w", id, err)
	}

	if parentID.Valid {
		ver.ParentID = parentID.String
	}
	ver.Model = decodeModel(modelJSON)
	ver.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	if metricsJSON.Valid {
		ver.MetricsJSON = metricsJSON.String
	}
	return ver, nil
}

// #endregion get

// #region commit

// CommitProfile inserts a new version and updates the active pointer
// atomically.
func (s *Store) CommitProfile(ver ProfileVersion) error {
	modelJSON, err := json.Marshal(ver.Model)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var parentPtr interface{}
	if ver.ParentID != "" {
		parentPtr = ver.ParentID
	}
	var metricsPtr interface{}
	if ver.MetricsJSON != "" {
		metricsPtr = ver.MetricsJSON
	}

	_, err = tx.Exec(
		`INSERT INTO profile_versions (version_id, parent_id, model_json, created_at, metrics_json)
		 VALUES (?, ?, ?, ?, ?)`,
		ver.VersionID, parentPtr, string(modelJSON),
		ver.CreatedAt.Format(time.RFC3339Nano), metricsPtr,
	)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE active_profile SET version_id = ? WHERE id = 1`, ver.VersionID,
	)
	if err != nil {
		return fmt.Errorf("update active: %w", err)
	}
	return tx.Commit()
}

// Rollback sets the active pointer to a previous version.
func (s *Store) Rollback(targetVersionID string) error {
	var exists int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM profile_versions WHERE version_id = ?`, targetVersionID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check version: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("version %s not found", targetVersionID)
	}
	_, err = s.db.Exec(`UPDATE active_profile SET version_id = ? WHERE id = 1`, targetVersionID)
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// #endregion commit

// #region list

// ListVersions returns the most recent profile versions.
func (s *Store) ListVersions(limit int) ([]ProfileVersion, error) {
	rows, err := s.db.Query(
		`SELECT version_id, parent_id, model_json, created_at, metrics_json
		 FROM profile_versions ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var versions []ProfileVersion
	for rows.Next() {
		var ver ProfileVersion
		var parentID sql.NullString
		var modelJSON string
		var createdStr string
		var metricsJSON sql.NullString

		if err := rows.Scan(&ver.VersionID, &parentID, &modelJSON, &createdStr, &metricsJSON); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if parentID.Valid {
			ver.ParentID = parentID.String
		}
		ver.Model = decodeModel(modelJSON)
		ver.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		if metricsJSON.Valid {
			ver.MetricsJSON = metricsJSON.String
		}
		versions = append(versions, ver)
	}
	return versions, rows.Err()
}

// #endregion list

// #region decode

// decodeModel unmarshals a stored snapshot over a default model so absent
// fields keep their defaults, then repairs and re-clamps the result.
// Corrupted JSON degrades to the default model.
func decodeModel(modelJSON string) mind.PlayerMindModel {
	model := mind.DefaultModel("")
	_ = json.Unmarshal([]byte(modelJSON), &model)
	model.Normalize()
	return model
}

// #endregion decode

// #region session-history

// AppendSession inserts one completed session and prunes the history to
// the model's rolling cap.
func (s *Store) AppendSession(rec mind.SessionRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO session_history (session_id, sector, accuracy, mean_response_ms, rounds_played, duration_sec, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Sector, rec.Accuracy, rec.MeanResponseMs,
		rec.RoundsPlayed, rec.DurationSec, rec.CompletedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	_, err = s.db.Exec(
		`DELETE FROM session_history WHERE id NOT IN
		 (SELECT id FROM session_history ORDER BY id DESC LIMIT ?)`, mind.HistoryCap,
	)
	if err != nil {
		return fmt.Errorf("prune sessions: %w", err)
	}
	return nil
}

// RecentSessions returns the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]mind.SessionRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, sector, accuracy, mean_response_ms, rounds_played, duration_sec, completed_at
		 FROM session_history ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var recs []mind.SessionRecord
	for rows.Next() {
		var rec mind.SessionRecord
		var completedStr string
		if err := rows.Scan(&rec.SessionID, &rec.Sector, &rec.Accuracy, &rec.MeanResponseMs,
			&rec.RoundsPlayed, &rec.DurationSec, &completedStr); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.CompletedAt, _ = time.Parse(time.RFC3339Nano, completedStr)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// #endregion session-history

// #region insight-log

// ShownLog loads the insight cooldown log.
func (s *Store) ShownLog() (insight.ShownLog, error) {
	rows, err := s.db.Query(`SELECT insight_id, last_shown FROM insight_log`)
	if err != nil {
		return nil, fmt.Errorf("load insight log: %w", err)
	}
	defer rows.Close()

	log := make(insight.ShownLog)
	for rows.Next() {
		var id, shownStr string
		if err := rows.Scan(&id, &shownStr); err != nil {
			return nil, fmt.Errorf("scan insight log: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, shownStr)
		if err != nil {
			continue
		}
		log[id] = t
	}
	return log, rows.Err()
}

// SaveShownLog upserts the insight cooldown log.
func (s *Store) SaveShownLog(log insight.ShownLog) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for id, shown := range log {
		_, err := tx.Exec(
			`INSERT INTO insight_log (insight_id, last_shown) VALUES (?, ?)
			 ON CONFLICT(insight_id) DO UPDATE SET last_shown = excluded.last_shown`,
			id, shown.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("upsert insight %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// #endregion insight-log
