package cli

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vibeos/vibeos/internal/reveal"
	"github.com/vibeos/vibeos/internal/timer"
	"github.com/vibeos/vibeos/internal/tui"
)

type FocusCmd struct{}

func (c *FocusCmd) Run(ctx *Context) error {
	// The permutation is generated once per install and persisted; later
	// sessions reveal a growing prefix of the same ordering.
	perm, created := reveal.GetOrCreate(ctx.Store.Shuffle(), rand.New(rand.NewSource(time.Now().UnixNano())))
	if created {
		ctx.Store.SetShuffle(perm)
	}

	machine := timer.New(ctx.Store)
	model := tui.NewModel(ctx.Store, machine, ctx.Coordinator)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("focus session failed: %w", err)
	}
	return nil
}
