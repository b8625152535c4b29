package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vibeos/vibeos/internal/models"
)

// Test seams, following the package-var convention used elsewhere in the
// codebase.
var (
	timeNow = time.Now
	newID   = uuid.NewString
)

// Observer receives the entity kind that changed plus a copy of its new
// value. Observers are invoked synchronously after the mutation is applied,
// outside the store lock.
type Observer func(kind models.EntityKind, value any)

// Store is the session-scoped, in-memory holder of all entity data. It is
// owned by a single authenticated session; multiple stores can coexist for
// tests. Mutations are applied synchronously and are immediately visible
// to subsequent reads. The remote reflection of a mutation is the sync
// coordinator's concern.
type Store struct {
	mu        sync.Mutex
	snap      models.Snapshot
	observers []Observer
}

// New returns a store holding the defaulted empty state.
func New() *Store {
	return &Store{snap: models.DefaultSnapshot()}
}

// Subscribe registers an observer for entity mutations. ReplaceAll and
// Reset do not notify observers: hydrating from a remote snapshot must not
// echo the data straight back to the remote store.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Store) emit(kind models.EntityKind, value any) {
	s.mu.Lock()
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()
	for _, fn := range observers {
		fn(kind, value)
	}
}

// AddTask appends a new task to the active set and returns it.
func (s *Store) AddTask(text string) (models.Task, error) {
	if text == "" {
		return models.Task{}, fmt.Errorf("task text cannot be empty")
	}
	task := models.Task{
		ID:        newID(),
		Text:      text,
		CreatedAt: timeNow(),
	}
	s.mu.Lock()
	s.snap.Tasks = append(s.snap.Tasks, task)
	tasks := append([]models.Task(nil), s.snap.Tasks...)
	s.mu.Unlock()

	s.emit(models.KindTasks, tasks)
	return task, nil
}

// CompleteTask removes the task from the active set and inserts a log
// entry reusing its id and text at the head of the log, stamped with the
// completion moment. The two changes are applied as one transition: there
// is no observable state where both records exist or neither does.
func (s *Store) CompleteTask(id string) (models.LogEntry, error) {
	s.mu.Lock()
	idx := -1
	for i, t := range s.snap.Tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return models.LogEntry{}, fmt.Errorf("task not found: %s", id)
	}
	task := s.snap.Tasks[idx]
	entry := models.LogEntry{ID: task.ID, Text: task.Text, Date: timeNow()}
	s.snap.Tasks = append(s.snap.Tasks[:idx], s.snap.Tasks[idx+1:]...)
	s.snap.Logs = append([]models.LogEntry{entry}, s.snap.Logs...)
	tasks := append([]models.Task(nil), s.snap.Tasks...)
	logs := append([]models.LogEntry(nil), s.snap.Logs...)
	s.mu.Unlock()

	s.emit(models.KindTasks, tasks)
	s.emit(models.KindLogs, logs)
	return entry, nil
}

// AddWin prepends a user-entered log entry ("small win").
func (s *Store) AddWin(text string) (models.LogEntry, error) {
	if text == "" {
		return models.LogEntry{}, fmt.Errorf("win text cannot be empty")
	}
	entry := models.LogEntry{ID: newID(), Text: text, Date: timeNow()}
	s.mu.Lock()
	s.snap.Logs = append([]models.LogEntry{entry}, s.snap.Logs...)
	logs := append([]models.LogEntry(nil), s.snap.Logs...)
	s.mu.Unlock()

	s.emit(models.KindLogs, logs)
	return entry, nil
}

// AddSession prepends a committed timer session.
func (s *Store) AddSession(sess models.TimerSession) {
	s.mu.Lock()
	s.snap.TimerSessions = append([]models.TimerSession{sess}, s.snap.TimerSessions...)
	sessions := append([]models.TimerSession(nil), s.snap.TimerSessions...)
	s.mu.Unlock()

	s.emit(models.KindTimerSessions, sessions)
}

// IncrementTimer adds one second to the accumulated focus counter and
// returns the new total.
func (s *Store) IncrementTimer() int {
	s.mu.Lock()
	s.snap.Timer.TotalSeconds++
	total := s.snap.Timer.TotalSeconds
	s.mu.Unlock()

	s.emit(models.KindTimer, models.TimerState{TotalSeconds: total})
	return total
}

// UpdateSettings replaces the settings record in place.
func (s *Store) UpdateSettings(settings models.Settings) {
	s.mu.Lock()
	s.snap.Settings = settings
	s.mu.Unlock()

	s.emit(models.KindSettings, settings)
}

// SetShuffle persists a newly generated reveal permutation.
func (s *Store) SetShuffle(shuffle []int) {
	cp := append([]int(nil), shuffle...)
	s.mu.Lock()
	s.snap.Shuffle = cp
	s.mu.Unlock()

	s.emit(models.KindShuffle, append([]int(nil), cp...))
}

// SetTasks replaces the active task set wholesale. Unlike ReplaceAll this
// notifies observers: an imported collection must reach the remote store.
func (s *Store) SetTasks(tasks []models.Task) {
	cp := append([]models.Task(nil), tasks...)
	s.mu.Lock()
	s.snap.Tasks = cp
	s.mu.Unlock()
	s.emit(models.KindTasks, append([]models.Task(nil), cp...))
}

// SetLogs replaces the victory log wholesale, notifying observers.
func (s *Store) SetLogs(logs []models.LogEntry) {
	cp := append([]models.LogEntry(nil), logs...)
	s.mu.Lock()
	s.snap.Logs = cp
	s.mu.Unlock()
	s.emit(models.KindLogs, append([]models.LogEntry(nil), cp...))
}

// SetSessions replaces the timer session list wholesale, notifying
// observers.
func (s *Store) SetSessions(sessions []models.TimerSession) {
	cp := append([]models.TimerSession(nil), sessions...)
	s.mu.Lock()
	s.snap.TimerSessions = cp
	s.mu.Unlock()
	s.emit(models.KindTimerSessions, append([]models.TimerSession(nil), cp...))
}

// SetTimerTotal overwrites the accumulated counter, notifying observers.
func (s *Store) SetTimerTotal(total int) {
	s.mu.Lock()
	s.snap.Timer.TotalSeconds = total
	s.mu.Unlock()
	s.emit(models.KindTimer, models.TimerState{TotalSeconds: total})
}

// Tasks returns a copy of the active task set, oldest first.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task(nil), s.snap.Tasks...)
}

// Logs returns a copy of the victory log, newest first.
func (s *Store) Logs() []models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.LogEntry(nil), s.snap.Logs...)
}

// Sessions returns a copy of the timer sessions, newest first.
func (s *Store) Sessions() []models.TimerSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TimerSession(nil), s.snap.TimerSessions...)
}

// Settings returns the current settings record.
func (s *Store) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Settings
}

// TimerTotal returns the accumulated focus seconds.
func (s *Store) TimerTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Timer.TotalSeconds
}

// Shuffle returns a copy of the persisted reveal permutation, or nil if
// none has been generated yet.
func (s *Store) Shuffle() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Shuffle == nil {
		return nil
	}
	return append([]int(nil), s.snap.Shuffle...)
}

// Snapshot returns a deep copy of the full entity state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// ReplaceAll atomically overwrites every entity with the snapshot's
// values. Absent fields are hydrated with defaults rather than failing.
// Observers are not notified.
func (s *Store) ReplaceAll(snap models.Snapshot) {
	hydrated := snap.Clone()
	if hydrated.Tasks == nil {
		hydrated.Tasks = []models.Task{}
	}
	if hydrated.Logs == nil {
		hydrated.Logs = []models.LogEntry{}
	}
	if hydrated.TimerSessions == nil {
		hydrated.TimerSessions = []models.TimerSession{}
	}
	if (hydrated.Settings == models.Settings{}) {
		hydrated.Settings = models.DefaultSettings()
	}

	s.mu.Lock()
	s.snap = hydrated
	s.mu.Unlock()
}

// Reset returns every entity to its empty/default value in memory. No
// remote write is triggered: observers are not notified.
func (s *Store) Reset() {
	s.mu.Lock()
	s.snap = models.DefaultSnapshot()
	s.mu.Unlock()
}
