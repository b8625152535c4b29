package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vibeos/vibeos/internal/constants"
	"github.com/vibeos/vibeos/internal/session"
	"github.com/vibeos/vibeos/internal/syncer"
	"github.com/vibeos/vibeos/internal/timer"
)

// tickMsg drives the machine clock. The program loop is the cooperative
// scheduler: one tick per second, only scheduled while running. The
// generation stamps which start the tick belongs to; a tick armed before
// a stop stays pending in the runtime and must be ignored when it lands,
// or a quick stop/restart would leave two tick loops running.
type tickMsg struct {
	gen int
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(constants.TickPeriod, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

type Model struct {
	store   *session.Store
	machine *timer.Machine
	coord   *syncer.Coordinator

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	sessionStart int // counter value when the running interval began
	tickGen      int // generation of the live tick loop
	notice       string
	quitting     bool
	width        int
	height       int
}

func NewModel(store *session.Store, machine *timer.Machine, coord *syncer.Coordinator) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		store:   store,
		machine: machine,
		coord:   coord,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}
