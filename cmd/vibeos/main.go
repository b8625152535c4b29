package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/vibeos/vibeos/internal/auth"
	"github.com/vibeos/vibeos/internal/cli"
	"github.com/vibeos/vibeos/internal/constants"
	apperrors "github.com/vibeos/vibeos/internal/errors"
	"github.com/vibeos/vibeos/internal/logger"
	"github.com/vibeos/vibeos/internal/remote"
	"github.com/vibeos/vibeos/internal/session"
	"github.com/vibeos/vibeos/internal/storage"
	"github.com/vibeos/vibeos/internal/syncer"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Local cache path. A .json extension selects the JSON backend, anything else SQLite." default:"${config_path}" env:"VIBEOS_CONFIG"`
	Remote  string `help:"Sync backend: an HTTPS API base URL, or a postgres:// connection string for self-hosting. Connection strings must NOT embed credentials." default:"${remote_url}" env:"VIBEOS_REMOTE"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize vibe-os storage."`
	Focus  cli.FocusCmd  `cmd:"" help:"Launch the interactive focus timer." default:"1"`
	Status cli.StatusCmd `cmd:"" help:"Show session, reveal, and sync status."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Task   struct {
		Add  cli.TaskAddCmd  `cmd:"" help:"Add a task."`
		List cli.TaskListCmd `cmd:"" help:"List active tasks." default:"1"`
		Done cli.TaskDoneCmd `cmd:"" help:"Complete a task, moving it to the wins log."`
	} `cmd:"" help:"Manage active tasks."`
	Win struct {
		Add  cli.WinAddCmd  `cmd:"" help:"Log a win directly."`
		List cli.WinListCmd `cmd:"" help:"List logged wins." default:"1"`
	} `cmd:"" help:"Manage the wins log."`
	Settings cli.SettingsCmd `cmd:"" help:"View or update settings."`
	Export   cli.ExportCmd   `cmd:"" help:"Export all data to a JSON backup."`
	Import   cli.ImportCmd   `cmd:"" help:"Import data from a JSON backup."`
	Login    cli.LoginCmd    `cmd:"" help:"Sign in and load remote data."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Sign out and clear the local session."`
	Signup   cli.SignupCmd   `cmd:"" help:"Create a sync account."`
	Sync     cli.SyncCmd     `cmd:"" help:"Push pending changes, or pull with --pull."`
}

// dataCommands hydrate from the local cache before running and persist
// it (after flushing remote writes) afterwards. init and doctor manage
// their own state; signup never touches entity data. logout is included
// so the sign-out reset is written back to the cache rather than leaving
// the previous user's data on disk.
var dataCommands = map[string]bool{
	"focus":    true,
	"status":   true,
	"task":     true,
	"win":      true,
	"settings": true,
	"export":   true,
	"import":   true,
	"login":    true,
	"logout":   true,
	"sync":     true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Terminal companion for the vibe-os productivity tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
			"remote_url":  constants.DefaultRemoteURL,
		},
	)

	configPath, err := expandPath(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		apperrors.Fatal(err)
	}

	var local storage.Provider
	if strings.HasSuffix(configPath, ".json") {
		local = storage.NewJSONStore(configPath)
	} else {
		local = storage.NewSQLiteStore(configPath)
	}
	defer local.Close()

	remoteStore, err := buildRemote(CLI.Remote)
	if err != nil {
		apperrors.Fatal(err)
	}

	store := session.New()
	coord := syncer.New(remoteStore)
	store.Subscribe(coord.EntityChanged)

	appCtx := &cli.Context{
		Store:       store,
		Local:       local,
		Remote:      remoteStore,
		Coordinator: coord,
		Reconciler:  syncer.NewReconciler(store, remoteStore, coord),
		Auth:        auth.NewClient(CLI.Remote),
	}

	command := rootCommand(ctx)
	if dataCommands[command] {
		if err := appCtx.Hydrate(); err != nil {
			apperrors.Fatal(err)
		}
	}

	runErr := ctx.Run(appCtx)

	if dataCommands[command] {
		if err := appCtx.Shutdown(); err != nil {
			apperrors.Fatal(err)
		}
	}
	if runErr != nil {
		apperrors.Fatal(runErr)
	}
}

func buildRemote(target string) (remote.Store, error) {
	if strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://") {
		if remote.HasEmbeddedCredentials(target) {
			return nil, fmt.Errorf("connection strings with embedded credentials are not allowed; use environment variables or a .pgpass file")
		}
		principal := "local"
		if creds, err := auth.LoadCredentials(); err == nil && creds.UserID != "" {
			principal = creds.UserID
		}
		return remote.NewPostgresStore(target, principal), nil
	}
	return remote.NewHTTPStore(target, auth.Token), nil
}

func rootCommand(ctx *kong.Context) string {
	if ctx.Selected() == nil {
		return ""
	}
	name, _, _ := strings.Cut(ctx.Command(), " ")
	return name
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(path)
}
