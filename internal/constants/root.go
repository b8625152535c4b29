package constants

import "time"

const (
	AppName            = "vibeos"
	Version            = "v2.1.0"
	DefaultKeyringUser = "session-credentials"
	DefaultConfigPath  = "~/.config/vibeos/vibeos.db"

	// DateFormat is the standard calendar-day format used throughout the
	// application (YYYY-MM-DD). Timer sessions are grouped by this key.
	DateFormat = "2006-01-02"

	// DebounceWindow is the delay after the last change to an entity kind
	// before its value is written to the remote store.
	DebounceWindow = time.Second

	// TickPeriod is the focus timer tick period.
	TickPeriod = time.Second

	// MinSessionSeconds is the shortest focus interval that is recorded as
	// a timer session. Anything shorter is discarded on stop.
	MinSessionSeconds = 60

	// RevealGridSize is the side length of the reveal grid. The permutation
	// covers RevealGridSize*RevealGridSize cell indices.
	RevealGridSize = 24

	// SchemaVersion tags exported documents.
	SchemaVersion = "2.1"

	// RequestTimeout bounds every remote persistence call.
	RequestTimeout = 15 * time.Second

	// DefaultRemoteURL is the hosted sync backend.
	DefaultRemoteURL = "https://api.vibe-os.dev"
)

// Default settings values, used when the remote snapshot or an imported
// document omits a field.
const (
	DefaultProjectName    = "NEON_DRIFTER_V2"
	DefaultTargetProjects = 100
	DefaultDocsLink       = "https://docs.vibe-os.dev"
	DefaultGHLink         = "https://github.com/vibe-os"
	DefaultSpotifyLink    = "https://spotify.com"
)
