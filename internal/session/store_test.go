package session

import (
	"testing"
	"time"

	"github.com/vibeos/vibeos/internal/constants"
	"github.com/vibeos/vibeos/internal/models"
)

func TestAddTask(t *testing.T) {
	s := New()

	first, err := s.AddTask("ship the tracker")
	if err != nil {
		t.Fatalf("AddTask() failed: %v", err)
	}
	if first.ID == "" {
		t.Error("AddTask() returned task without an id")
	}
	if first.CreatedAt.IsZero() {
		t.Error("AddTask() returned task without a creation time")
	}

	second, err := s.AddTask("write release notes")
	if err != nil {
		t.Fatalf("AddTask() failed: %v", err)
	}

	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("Tasks() returned %d tasks, want 2", len(tasks))
	}
	// Oldest first.
	if tasks[0].ID != first.ID || tasks[1].ID != second.ID {
		t.Errorf("Tasks() order = [%s, %s], want [%s, %s]", tasks[0].ID, tasks[1].ID, first.ID, second.ID)
	}
}

func TestAddTaskEmpty(t *testing.T) {
	s := New()
	if _, err := s.AddTask(""); err == nil {
		t.Error("AddTask(\"\") should return an error")
	}
}

func TestCompleteTask(t *testing.T) {
	s := New()
	task, err := s.AddTask("finish the parser")
	if err != nil {
		t.Fatalf("AddTask() failed: %v", err)
	}
	if _, err := s.AddWin("older win"); err != nil {
		t.Fatalf("AddWin() failed: %v", err)
	}

	entry, err := s.CompleteTask(task.ID)
	if err != nil {
		t.Fatalf("CompleteTask() failed: %v", err)
	}

	if entry.ID != task.ID {
		t.Errorf("completed entry id = %q, want the task id %q", entry.ID, task.ID)
	}
	if entry.Text != task.Text {
		t.Errorf("completed entry text = %q, want %q", entry.Text, task.Text)
	}
	if entry.Date.IsZero() {
		t.Error("completed entry has no date")
	}

	if got := s.Tasks(); len(got) != 0 {
		t.Errorf("Tasks() returned %d tasks after completion, want 0", len(got))
	}
	logs := s.Logs()
	if len(logs) != 2 {
		t.Fatalf("Logs() returned %d entries, want 2", len(logs))
	}
	// Newest first.
	if logs[0].ID != task.ID {
		t.Errorf("Logs()[0].ID = %q, want the completed task at the head", logs[0].ID)
	}
}

func TestCompleteTaskNotFound(t *testing.T) {
	s := New()
	if _, err := s.CompleteTask("missing"); err == nil {
		t.Error("CompleteTask() with unknown id should return an error")
	}
}

func TestCompleteTaskEmitsBothKindsAfterApplying(t *testing.T) {
	s := New()
	task, _ := s.AddTask("atomic move")

	type seen struct {
		kind  models.EntityKind
		tasks int
		logs  int
	}
	var events []seen
	s.Subscribe(func(kind models.EntityKind, value any) {
		events = append(events, seen{kind, len(s.Tasks()), len(s.Logs())})
	})

	if _, err := s.CompleteTask(task.ID); err != nil {
		t.Fatalf("CompleteTask() failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("observer saw %d events, want 2", len(events))
	}
	if events[0].kind != models.KindTasks || events[1].kind != models.KindLogs {
		t.Errorf("event kinds = [%s, %s], want [tasks, logs]", events[0].kind, events[1].kind)
	}
	// Both halves of the transition are already applied when the first
	// event fires: no observable intermediate state.
	for _, ev := range events {
		if ev.tasks != 0 || ev.logs != 1 {
			t.Errorf("observer during %s saw tasks=%d logs=%d, want 0 and 1", ev.kind, ev.tasks, ev.logs)
		}
	}
}

func TestAddWinOrdering(t *testing.T) {
	s := New()
	s.AddWin("first")
	s.AddWin("second")

	logs := s.Logs()
	if len(logs) != 2 {
		t.Fatalf("Logs() returned %d entries, want 2", len(logs))
	}
	if logs[0].Text != "second" || logs[1].Text != "first" {
		t.Errorf("Logs() = [%q, %q], want newest first", logs[0].Text, logs[1].Text)
	}
}

func TestIncrementTimer(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		s.IncrementTimer()
	}
	if got := s.TimerTotal(); got != 5 {
		t.Errorf("TimerTotal() = %d, want 5", got)
	}
}

func TestReplaceAllDoesNotNotify(t *testing.T) {
	s := New()
	notified := 0
	s.Subscribe(func(models.EntityKind, any) { notified++ })

	s.ReplaceAll(models.Snapshot{
		Tasks:    []models.Task{{ID: "a", Text: "remote task", CreatedAt: time.Now()}},
		Settings: models.DefaultSettings(),
	})

	if notified != 0 {
		t.Errorf("ReplaceAll() triggered %d observer calls, want 0", notified)
	}
	if got := s.Tasks(); len(got) != 1 || got[0].ID != "a" {
		t.Errorf("ReplaceAll() did not install the snapshot, Tasks() = %+v", got)
	}
}

func TestReplaceAllHydratesDefaults(t *testing.T) {
	s := New()
	s.ReplaceAll(models.Snapshot{})

	settings := s.Settings()
	if settings.ProjectName != constants.DefaultProjectName {
		t.Errorf("Settings().ProjectName = %q, want default %q", settings.ProjectName, constants.DefaultProjectName)
	}
	if settings.TargetProjects != constants.DefaultTargetProjects {
		t.Errorf("Settings().TargetProjects = %d, want default %d", settings.TargetProjects, constants.DefaultTargetProjects)
	}
}

func TestResetDoesNotNotify(t *testing.T) {
	s := New()
	s.AddWin("about to vanish")

	notified := 0
	s.Subscribe(func(models.EntityKind, any) { notified++ })
	s.Reset()

	if notified != 0 {
		t.Errorf("Reset() triggered %d observer calls, want 0", notified)
	}
	if got := s.Logs(); len(got) != 0 {
		t.Errorf("Logs() after Reset() = %d entries, want 0", len(got))
	}
	if got := s.Settings().ProjectName; got != constants.DefaultProjectName {
		t.Errorf("Settings().ProjectName after Reset() = %q, want default", got)
	}
}

func TestNotifyingSetters(t *testing.T) {
	s := New()
	var kinds []models.EntityKind
	s.Subscribe(func(kind models.EntityKind, value any) { kinds = append(kinds, kind) })

	s.SetTasks([]models.Task{{ID: "t1", Text: "imported"}})
	s.SetLogs([]models.LogEntry{{ID: "l1", Text: "imported"}})
	s.SetSessions([]models.TimerSession{{ID: "s1", Duration: 90}})
	s.SetTimerTotal(1200)

	want := []models.EntityKind{models.KindTasks, models.KindLogs, models.KindTimerSessions, models.KindTimer}
	if len(kinds) != len(want) {
		t.Fatalf("observer saw %d events, want %d", len(kinds), len(want))
	}
	for i, kind := range want {
		if kinds[i] != kind {
			t.Errorf("event %d kind = %s, want %s", i, kinds[i], kind)
		}
	}
	if got := s.TimerTotal(); got != 1200 {
		t.Errorf("TimerTotal() = %d, want 1200", got)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := New()
	s.AddTask("do not alias me")

	tasks := s.Tasks()
	tasks[0].Text = "mutated"

	if got := s.Tasks()[0].Text; got == "mutated" {
		t.Error("Tasks() returned a slice aliasing internal state")
	}
}
