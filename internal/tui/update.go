package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vibeos/vibeos/internal/timer"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if msg.gen != m.tickGen || m.machine.State() != timer.Running {
			return m, nil
		}
		m.machine.Tick()
		return m, tickCmd(m.tickGen)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.recordStop(m.machine.Stop())
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if m.machine.State() == timer.Running {
				m.recordStop(m.machine.Stop())
				return m, nil
			}
			m.machine.Start()
			m.sessionStart = m.store.TimerTotal()
			m.tickGen++
			m.notice = ""
			return m, tickCmd(m.tickGen)

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m, nil
}

func (m *Model) recordStop(result timer.StopResult) {
	switch {
	case result.Duration == 0:
	case result.Recorded:
		m.notice = fmt.Sprintf("Session recorded: %s of focus.", formatClock(result.Duration))
	default:
		m.notice = fmt.Sprintf("Session under a minute (%ds), not recorded.", result.Duration)
	}
}
