package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vibeos/vibeos/internal/models"
)

// SQLiteStore keeps the snapshot in a single kv table, one row per entity
// kind, mirroring the remote store's key layout.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db
	return s.Save(models.DefaultSnapshot())
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to exec pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create state table: %w", err)
	}
	return db, nil
}

func (s *SQLiteStore) ensureOpen() error {
	if s.db != nil {
		return nil
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Load() (models.Snapshot, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return models.Snapshot{}, fmt.Errorf("storage not initialized, run 'vibeos init' first")
	}
	if err := s.ensureOpen(); err != nil {
		return models.Snapshot{}, err
	}

	rows, err := s.db.Query("SELECT key, value FROM state")
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read state: %w", err)
	}
	defer rows.Close()

	snap := models.DefaultSnapshot()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to scan state row: %w", err)
		}
		if err := decodeState(&snap, models.EntityKind(key), []byte(value)); err != nil {
			return models.Snapshot{}, err
		}
	}
	if err := rows.Err(); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read state: %w", err)
	}
	return snap, nil
}

func decodeState(snap *models.Snapshot, kind models.EntityKind, value []byte) error {
	var err error
	switch kind {
	case models.KindTasks:
		err = json.Unmarshal(value, &snap.Tasks)
	case models.KindLogs:
		err = json.Unmarshal(value, &snap.Logs)
	case models.KindTimerSessions:
		err = json.Unmarshal(value, &snap.TimerSessions)
	case models.KindSettings:
		err = json.Unmarshal(value, &snap.Settings)
	case models.KindTimer:
		err = json.Unmarshal(value, &snap.Timer)
	case models.KindShuffle:
		err = json.Unmarshal(value, &snap.Shuffle)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", kind, err)
	}
	return nil
}

func (s *SQLiteStore) Save(snap models.Snapshot) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}

	values := map[models.EntityKind]any{
		models.KindTasks:         snap.Tasks,
		models.KindLogs:          snap.Logs,
		models.KindTimerSessions: snap.TimerSessions,
		models.KindSettings:      snap.Settings,
		models.KindTimer:         snap.Timer,
		models.KindShuffle:       snap.Shuffle,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, kind := range models.Kinds() {
		data, err := json.Marshal(values[kind])
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", kind, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO state (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			string(kind), string(data)); err != nil {
			return fmt.Errorf("failed to write %s: %w", kind, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}
