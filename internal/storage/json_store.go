package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vibeos/vibeos/internal/models"
)

type jsonFile struct {
	Version  int             `json:"version"`
	Snapshot models.Snapshot `json:"snapshot"`
}

// JSONStore keeps the snapshot in a single pretty-printed JSON file.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}
	return s.write(models.DefaultSnapshot())
}

func (s *JSONStore) Load() (models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Snapshot{}, fmt.Errorf("storage not initialized, run 'vibeos init' first")
		}
		return models.Snapshot{}, fmt.Errorf("failed to read storage: %w", err)
	}

	var file jsonFile
	if err := json.Unmarshal(data, &file); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to parse storage: %w", err)
	}

	snap := file.Snapshot
	if snap.Tasks == nil {
		snap.Tasks = []models.Task{}
	}
	if snap.Logs == nil {
		snap.Logs = []models.LogEntry{}
	}
	if snap.TimerSessions == nil {
		snap.TimerSessions = []models.TimerSession{}
	}
	if (snap.Settings == models.Settings{}) {
		snap.Settings = models.DefaultSettings()
	}
	return snap, nil
}

func (s *JSONStore) Save(snap models.Snapshot) error {
	return s.write(snap)
}

func (s *JSONStore) write(snap models.Snapshot) error {
	data, err := json.MarshalIndent(jsonFile{Version: 1, Snapshot: snap}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Path() string {
	return s.path
}
