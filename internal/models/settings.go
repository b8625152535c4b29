package models

import (
	"time"

	"github.com/vibeos/vibeos/internal/constants"
)

// Settings is the single mutable settings record. Link values are stored
// as entered; URL validation is intentionally not a requirement.
type Settings struct {
	ProjectName    string `json:"projectName"`
	StartDate      string `json:"startDate"` // YYYY-MM-DD
	TargetProjects int    `json:"targetProjects"`
	DocsLink       string `json:"docsLink"`
	GHLink         string `json:"ghLink"`
	SpotifyLink    string `json:"spotifyLink"`
}

// DefaultSettings returns the documented default settings record, used to
// hydrate fields absent from a remote snapshot and to reset on sign-out.
func DefaultSettings() Settings {
	return Settings{
		ProjectName:    constants.DefaultProjectName,
		StartDate:      time.Now().Format(constants.DateFormat),
		TargetProjects: constants.DefaultTargetProjects,
		DocsLink:       constants.DefaultDocsLink,
		GHLink:         constants.DefaultGHLink,
		SpotifyLink:    constants.DefaultSpotifyLink,
	}
}
