package timer

import (
	"testing"
	"time"

	"github.com/vibeos/vibeos/internal/session"
)

func TestStartStopLifecycle(t *testing.T) {
	store := session.New()
	m := New(store)

	if m.State() != Idle {
		t.Fatalf("new machine state = %s, want idle", m.State())
	}

	m.Start()
	if m.State() != Running {
		t.Fatalf("state after Start() = %s, want running", m.State())
	}

	for i := 0; i < 90; i++ {
		m.Tick()
	}

	result := m.Stop()
	if m.State() != Idle {
		t.Errorf("state after Stop() = %s, want idle", m.State())
	}
	if !result.Recorded {
		t.Fatal("90s interval should be recorded")
	}
	if result.Duration != 90 {
		t.Errorf("result.Duration = %d, want 90", result.Duration)
	}
	if result.Session.Duration != 90 {
		t.Errorf("session duration = %d, want 90", result.Session.Duration)
	}
	if result.Session.ID == "" {
		t.Error("recorded session has no id")
	}

	sessions := store.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("store holds %d sessions, want 1", len(sessions))
	}
	if sessions[0].ID != result.Session.ID {
		t.Errorf("stored session id = %q, want %q", sessions[0].ID, result.Session.ID)
	}
}

func TestShortSessionDiscarded(t *testing.T) {
	store := session.New()
	m := New(store)

	m.Start()
	for i := 0; i < 59; i++ {
		m.Tick()
	}
	result := m.Stop()

	if result.Recorded {
		t.Error("59s interval should not be recorded")
	}
	if result.Duration != 59 {
		t.Errorf("result.Duration = %d, want 59", result.Duration)
	}
	if len(store.Sessions()) != 0 {
		t.Error("discarded interval must not create a session")
	}
	// The accumulated counter keeps the ticks either way.
	if got := store.TimerTotal(); got != 59 {
		t.Errorf("TimerTotal() = %d, want 59", got)
	}
}

func TestDurationCountsTicksNotWallClock(t *testing.T) {
	store := session.New()
	store.SetTimerTotal(1000)
	m := New(store)

	originalNow := timeNow
	defer func() { timeNow = originalNow }()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }

	m.Start()
	// Wall clock jumps an hour; only 120 ticks were delivered.
	now = now.Add(time.Hour)
	for i := 0; i < 120; i++ {
		m.Tick()
	}
	result := m.Stop()

	if result.Duration != 120 {
		t.Errorf("result.Duration = %d, want 120 (tick count, not wall time)", result.Duration)
	}
	if result.Session.Date != "2026-03-14" {
		t.Errorf("session date = %q, want 2026-03-14", result.Session.Date)
	}
}

func TestStartWhileRunningIsNoOp(t *testing.T) {
	store := session.New()
	m := New(store)

	m.Start()
	for i := 0; i < 70; i++ {
		m.Tick()
	}
	m.Start() // must not reset the interval mark

	result := m.Stop()
	if result.Duration != 70 {
		t.Errorf("result.Duration = %d, want 70", result.Duration)
	}
}

func TestStopWhileIdleIsNoOp(t *testing.T) {
	store := session.New()
	m := New(store)

	result := m.Stop()
	if result.Recorded || result.Duration != 0 {
		t.Errorf("Stop() while idle = %+v, want zero result", result)
	}
	if len(store.Sessions()) != 0 {
		t.Error("Stop() while idle must not create a session")
	}
}

func TestRecordedSecondsNeverExceedCounter(t *testing.T) {
	store := session.New()
	m := New(store)

	for _, ticks := range []int{75, 30, 200, 59, 61} {
		m.Start()
		for i := 0; i < ticks; i++ {
			m.Tick()
		}
		m.Stop()
	}

	recorded := 0
	for _, s := range store.Sessions() {
		recorded += s.Duration
	}
	if total := store.TimerTotal(); recorded > total {
		t.Errorf("recorded %ds across sessions exceeds the counter %ds", recorded, total)
	}
	// 75, 200, 61 qualify; 30 and 59 are discarded.
	if got := len(store.Sessions()); got != 3 {
		t.Errorf("store holds %d sessions, want 3", got)
	}
	if recorded != 75+200+61 {
		t.Errorf("recorded seconds = %d, want %d", recorded, 75+200+61)
	}
}

func TestTickWhileIdleIgnored(t *testing.T) {
	store := session.New()
	m := New(store)

	m.Tick()
	if got := store.TimerTotal(); got != 0 {
		t.Errorf("TimerTotal() = %d after idle tick, want 0", got)
	}
}
