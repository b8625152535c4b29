package timer

import (
	"time"

	"github.com/google/uuid"

	"github.com/vibeos/vibeos/internal/constants"
	"github.com/vibeos/vibeos/internal/models"
	"github.com/vibeos/vibeos/internal/session"
)

var (
	timeNow = time.Now
	newID   = uuid.NewString
)

// State of the focus timer machine.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// StopResult reports the outcome of a stop transition. A session shorter
// than one minute is discarded, not recorded; that is a designed-for
// outcome, never an error.
type StopResult struct {
	Session  models.TimerSession
	Recorded bool
	Duration int // elapsed seconds of the interval, recorded or not
}

// Machine converts wall-clock focus intervals into durable session
// records. It holds no timer of its own: the caller's cooperative
// scheduler drives Tick once per second while the machine is running.
type Machine struct {
	store *session.Store

	state        State
	startTime    time.Time
	startCounter int
}

// New returns an idle machine bound to the session's entity store.
func New(store *session.Store) *Machine {
	return &Machine{store: store}
}

// State returns the current machine state.
func (m *Machine) State() State {
	return m.state
}

// Start begins a focus interval, marking the current counter value so the
// eventual duration counts ticks, never wall-clock drift. Starting while
// already running is a no-op.
func (m *Machine) Start() {
	if m.state == Running {
		return
	}
	m.state = Running
	m.startTime = timeNow()
	m.startCounter = m.store.TimerTotal()
}

// Tick adds one second to the accumulated counter. Ticks are only accepted
// while running; the caller must cancel its periodic task when the machine
// leaves the running state.
func (m *Machine) Tick() {
	if m.state != Running {
		return
	}
	m.store.IncrementTimer()
}

// Stop ends the interval. Intervals of at least MinSessionSeconds are
// committed as a TimerSession prepended to the session list; shorter ones
// are discarded and reported via StopResult.Recorded. Stopping while idle
// is a no-op.
func (m *Machine) Stop() StopResult {
	if m.state != Running {
		return StopResult{}
	}

	endTime := timeNow()
	duration := m.store.TimerTotal() - m.startCounter
	result := StopResult{Duration: duration}

	if duration >= constants.MinSessionSeconds {
		sess := models.TimerSession{
			ID:        newID(),
			StartTime: m.startTime,
			EndTime:   endTime,
			Duration:  duration,
			Date:      endTime.Format(constants.DateFormat),
		}
		m.store.AddSession(sess)
		result.Session = sess
		result.Recorded = true
	}

	m.state = Idle
	m.startTime = time.Time{}
	m.startCounter = 0
	return result
}
