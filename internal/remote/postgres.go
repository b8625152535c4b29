package remote

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/lib/pq"

	apperrors "github.com/vibeos/vibeos/internal/errors"
	"github.com/vibeos/vibeos/internal/models"
)

// PostgresStore is the self-hosted sync backend: the same six logical keys
// per principal, kept in a single kv table with last-write-wins upserts.
type PostgresStore struct {
	connStr   string
	principal string
	db        *sql.DB
}

const kvSchema = `
CREATE TABLE IF NOT EXISTS vibeos_kv (
	principal  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      JSONB       NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (principal, key)
)`

// HasEmbeddedCredentials reports whether a connection string carries a
// password. Credentials belong in the OS keyring, the environment, or
// .pgpass, never on the command line.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

func NewPostgresStore(connStr, principal string) *PostgresStore {
	return &PostgresStore{connStr: connStr, principal: principal}
}

func (s *PostgresStore) open(ctx context.Context) (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	if _, err := db.ExecContext(ctx, kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ensure schema: %v", apperrors.ErrRemoteUnavailable, err)
	}
	s.db = db
	return db, nil
}

func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *PostgresStore) Fetch(ctx context.Context) (models.Snapshot, error) {
	db, err := s.open(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	keys := make([]string, 0, len(models.Kinds()))
	for _, k := range models.Kinds() {
		keys = append(keys, string(k))
	}
	rows, err := db.QueryContext(ctx,
		`SELECT key, value FROM vibeos_kv WHERE principal = $1 AND key = ANY($2)`,
		s.principal, pq.Array(keys))
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	defer rows.Close()

	var snap models.Snapshot
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return models.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
		}
		if err := decodeKV(&snap, models.EntityKind(key), value); err != nil {
			return models.Snapshot{}, err
		}
	}
	if err := rows.Err(); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	return snap, nil
}

func decodeKV(snap *models.Snapshot, kind models.EntityKind, value []byte) error {
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
		return fmt.Errorf("%w: decode %s: %v", apperrors.ErrRemoteUnavailable, kind, err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, kind models.EntityKind, payload any) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", kind, err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO vibeos_kv (principal, key, value, updated_at) VALUES ($1, $2, $3, now())
		 ON CONFLICT (principal, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		s.principal, string(kind), value)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) Health(ctx context.Context) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	return nil
}
