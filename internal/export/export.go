// Package export serializes the full entity store to a single versioned
// JSON document and restores it. The round-trip law holds: importing an
// export reproduces an observably identical store.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vibeos/vibeos/internal/constants"
	apperrors "github.com/vibeos/vibeos/internal/errors"
	"github.com/vibeos/vibeos/internal/models"
	"github.com/vibeos/vibeos/internal/session"
)

var timeNow = time.Now

// Document is the transport format. Pointer fields distinguish "absent"
// from "present but empty": partial documents are legal and absent fields
// leave current state untouched on import.
type Document struct {
	Tasks         *[]models.Task         `json:"tasks,omitempty"`
	Logs          *[]models.LogEntry     `json:"logs,omitempty"`
	TimerSessions *[]models.TimerSession `json:"timerSessions,omitempty"`
	Settings      *models.Settings       `json:"settings,omitempty"`
	Timer         *models.TimerState     `json:"timer,omitempty"`
	HorseShuffle  *[]int                 `json:"horseShuffle,omitempty"`
	ExportedAt    time.Time              `json:"exportedAt"`
	Version       string                 `json:"version"`
}

// Export captures the whole store into a document stamped with the export
// moment and schema version.
func Export(store *session.Store) Document {
	snap := store.Snapshot()
	doc := Document{
		Tasks:         &snap.Tasks,
		Logs:          &snap.Logs,
		TimerSessions: &snap.TimerSessions,
		Settings:      &snap.Settings,
		Timer:         &snap.Timer,
		ExportedAt:    timeNow(),
		Version:       constants.SchemaVersion,
	}
	if snap.Shuffle != nil {
		doc.HorseShuffle = &snap.Shuffle
	}
	return doc
}

// Marshal renders a document the way the backup file is written.
func Marshal(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Import applies each top-level field of the document only if present.
// A document that cannot be parsed is rejected without touching existing
// state. Settings fields merge individually: an empty imported value
// keeps the current one.
func Import(store *session.Store, data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedImport, err)
	}

	if doc.Tasks != nil {
		store.SetTasks(*doc.Tasks)
	}
	if doc.Logs != nil {
		store.SetLogs(*doc.Logs)
	}
	if doc.TimerSessions != nil {
		store.SetSessions(*doc.TimerSessions)
	}
	if doc.Settings != nil {
		store.UpdateSettings(mergeSettings(store.Settings(), *doc.Settings))
	}
	if doc.Timer != nil {
		store.SetTimerTotal(doc.Timer.TotalSeconds)
	}
	if doc.HorseShuffle != nil {
		store.SetShuffle(*doc.HorseShuffle)
	}
	return nil
}

func mergeSettings(current, imported models.Settings) models.Settings {
	out := current
	if imported.ProjectName != "" {
		out.ProjectName = imported.ProjectName
	}
	if imported.StartDate != "" {
		out.StartDate = imported.StartDate
	}
	if imported.TargetProjects != 0 {
		out.TargetProjects = imported.TargetProjects
	}
	if imported.DocsLink != "" {
		out.DocsLink = imported.DocsLink
	}
	if imported.GHLink != "" {
		out.GHLink = imported.GHLink
	}
	if imported.SpotifyLink != "" {
		out.SpotifyLink = imported.SpotifyLink
	}
	return out
}
