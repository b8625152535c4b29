package models

// Snapshot is a full copy of the entity store: the five persisted
// collections/records plus the timer counter. It is the unit of exchange
// with the remote store at bootstrap, with the local cache between runs,
// and with the export/import codec.
type Snapshot struct {
	Tasks         []Task         `json:"tasks"`
	Logs          []LogEntry     `json:"logs"`
	TimerSessions []TimerSession `json:"timerSessions"`
	Settings      Settings       `json:"settings"`
	Timer         TimerState     `json:"timer"`
	Shuffle       []int          `json:"horseShuffle,omitempty"`
}

// DefaultSnapshot returns the empty, defaulted state a session starts from
// before any remote data is loaded.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Tasks:         []Task{},
		Logs:          []LogEntry{},
		TimerSessions: []TimerSession{},
		Settings:      DefaultSettings(),
	}
}

// Clone returns a deep copy. Collections are copied so callers can mutate
// the result without aliasing the source.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Tasks = append([]Task(nil), s.Tasks...)
	out.Logs = append([]LogEntry(nil), s.Logs...)
	out.TimerSessions = append([]TimerSession(nil), s.TimerSessions...)
	if s.Shuffle != nil {
		out.Shuffle = append([]int(nil), s.Shuffle...)
	}
	return out
}
