package models

// EntityKind identifies one of the six independently synced logical data
// categories. The values double as wire keys in exported documents and in
// the remote key-value store.
type EntityKind string

const (
	KindTasks         EntityKind = "tasks"
	KindLogs          EntityKind = "logs"
	KindTimerSessions EntityKind = "timerSessions"
	KindSettings      EntityKind = "settings"
	KindTimer         EntityKind = "timer"
	KindShuffle       EntityKind = "horseShuffle"
)

// Kinds lists every entity kind in a stable order.
func Kinds() []EntityKind {
	return []EntityKind{KindTasks, KindLogs, KindTimerSessions, KindSettings, KindTimer, KindShuffle}
}
