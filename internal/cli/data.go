package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/vibeos/vibeos/internal/constants"
	"github.com/vibeos/vibeos/internal/export"
	"github.com/vibeos/vibeos/internal/logger"
	"github.com/vibeos/vibeos/internal/reveal"
	"github.com/vibeos/vibeos/internal/syncer"
)

type ExportCmd struct {
	Output string `short:"o" help:"Output file path." default:"vibe-os-backup.json"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	doc := export.Export(ctx.Store)
	data, err := export.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize export: %w", err)
	}

	path, err := filepath.Abs(c.Output)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	logger.Info("exported data", "path", path)
	fmt.Printf("Exported data to %s\n", path)
	return nil
}

type ImportCmd struct {
	Input string `arg:"" help:"Backup file to import." type:"existingfile"`
	Force bool   `short:"f" help:"Skip confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if !c.Force {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Import backup?").
			Description("Imported data replaces matching local data and is pushed to the remote store.").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	data, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}
	if err := export.Import(ctx.Store, data); err != nil {
		return err
	}

	logger.Info("imported data", "path", c.Input)
	fmt.Println("Import complete.")
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	settings := ctx.Store.Settings()
	sessions := ctx.Store.Sessions()
	progress := reveal.Progress(sessions, settings.TargetProjects)
	revealed := reveal.RevealedCount(progress)

	fmt.Printf("Project:   %s\n", settings.ProjectName)
	fmt.Printf("Focus:     %s total, %d sessions across %d days\n",
		FormatClock(ctx.Store.TimerTotal()), len(sessions), UniqueFocusDays(sessions))
	fmt.Printf("Tasks:     %d active, %d wins logged\n", len(ctx.Store.Tasks()), len(ctx.Store.Logs()))
	fmt.Printf("Reveal:    %.1f%% (%d/%d cells)\n", progress, revealed, reveal.TotalCells)

	if ctx.Coordinator != nil {
		status := ctx.Coordinator.Status()
		line := "Sync:      " + status.String()
		if status == syncer.StatusSaved {
			line += " at " + ctx.Coordinator.LastSaved().Format(time.Kitchen)
		}
		if !ctx.Coordinator.Authenticated() {
			line = "Sync:      offline (run 'vibeos login' to enable sync)"
		}
		fmt.Println(line)
	}

	fmt.Printf("Storage:   %s\n", ctx.Local.Path())
	fmt.Printf("Version:   %s\n", constants.Version)
	return nil
}
