package cli

import (
	"fmt"
	"time"

	"github.com/vibeos/vibeos/internal/constants"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	ProjectName    *string `help:"Current project name."`
	StartDate      *string `help:"Mission start date (YYYY-MM-DD)."`
	TargetProjects *int    `help:"Target project count for the reveal."`
	DocsLink       *string `help:"Project docs URL."`
	GHLink         *string `help:"GitHub repository URL."`
	SpotifyLink    *string `help:"Audio stream URL."`
}

func (c *SettingsCmd) Validate() error {
	if c.StartDate != nil {
		if _, err := time.Parse(constants.DateFormat, *c.StartDate); err != nil {
			return fmt.Errorf("invalid start date format (expected YYYY-MM-DD): %w", err)
		}
	}
	if c.TargetProjects != nil && *c.TargetProjects < 0 {
		return fmt.Errorf("target projects cannot be negative")
	}
	return nil
}

func (c *SettingsCmd) Run(ctx *Context) error {
	settings := ctx.Store.Settings()

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Project Name:    %s\n", settings.ProjectName)
		fmt.Printf("  Start Date:      %s\n", settings.StartDate)
		fmt.Printf("  Target Projects: %d\n", settings.TargetProjects)
		fmt.Println("\nDirectory Links:")
		fmt.Printf("  Docs:    %s\n", settings.DocsLink)
		fmt.Printf("  GitHub:  %s\n", settings.GHLink)
		fmt.Printf("  Spotify: %s\n", settings.SpotifyLink)
		return nil
	}

	updated := false
	if c.ProjectName != nil {
		settings.ProjectName = *c.ProjectName
		updated = true
	}
	if c.StartDate != nil {
		settings.StartDate = *c.StartDate
		updated = true
	}
	if c.TargetProjects != nil {
		settings.TargetProjects = *c.TargetProjects
		updated = true
	}
	if c.DocsLink != nil {
		settings.DocsLink = *c.DocsLink
		updated = true
	}
	if c.GHLink != nil {
		settings.GHLink = *c.GHLink
		updated = true
	}
	if c.SpotifyLink != nil {
		settings.SpotifyLink = *c.SpotifyLink
		updated = true
	}

	if updated {
		ctx.Store.UpdateSettings(settings)
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}
