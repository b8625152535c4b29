package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vibeos/vibeos/internal/reveal"
	"github.com/vibeos/vibeos/internal/syncer"
	"github.com/vibeos/vibeos/internal/timer"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	settings := m.store.Settings()
	total := m.store.TimerTotal()

	var state string
	if m.machine.State() == timer.Running {
		state = runningStyle.Render("FOCUSING " + formatClock(total-m.sessionStart))
	} else {
		state = idleStyle.Render("idle, press space to start")
	}

	progress := reveal.Progress(m.store.Sessions(), settings.TargetProjects)
	sections := []string{
		titleStyle.Render(settings.ProjectName),
		"",
		clockStyle.Render(formatClock(total)) + "  " + state,
		m.viewReveal(progress),
		m.viewSync(),
	}
	if m.notice != "" {
		sections = append(sections, warningStyle.Render(m.notice))
	}
	sections = append(sections, "", m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// viewReveal condenses the reveal grid into one bar cell per grid row.
func (m Model) viewReveal(progress float64) string {
	revealed := reveal.RevealedCount(progress)
	rows := reveal.TotalCells / reveal.GridSize

	var bar strings.Builder
	for i := 0; i < rows; i++ {
		if revealed >= (i+1)*reveal.GridSize {
			bar.WriteString(revealedCellStyle.Render("█"))
		} else {
			bar.WriteString(hiddenCellStyle.Render("░"))
		}
	}
	return fmt.Sprintf("%s %.1f%% (%d/%d cells)", bar.String(), progress, revealed, reveal.TotalCells)
}

func (m Model) viewSync() string {
	if !m.coord.Authenticated() {
		return idleStyle.Render("sync off")
	}
	switch m.coord.Status() {
	case syncer.StatusSyncing:
		return m.spinner.View() + " syncing"
	case syncer.StatusSaved:
		return runningStyle.Render("✓ saved ") + idleStyle.Render(m.coord.LastSaved().Format("15:04:05"))
	default:
		return idleStyle.Render("sync idle")
	}
}

func formatClock(seconds int) string {
	h := seconds / 3600
	mnt := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, mnt, s)
}
