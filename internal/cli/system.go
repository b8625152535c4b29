package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/vibeos/vibeos/internal/auth"
	"github.com/vibeos/vibeos/internal/constants"
)

var processesFunc = ps.Processes

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Local.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized vibe-os storage at %s\n", ctx.Local.Path())
	fmt.Println("Run 'vibeos focus' to start your first session.")
	return nil
}

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("vibe-os doctor")

	report(checkStorage(ctx))
	report(checkKeyring())
	report(checkInstances())
	report(checkRemote(ctx))
	return nil
}

func report(name string, err error) {
	if err != nil {
		fmt.Printf("  [FAIL] %s: %v\n", name, err)
		return
	}
	fmt.Printf("  [ ok ] %s\n", name)
}

func checkStorage(ctx *Context) (string, error) {
	dir := filepath.Dir(ctx.Local.Path())
	info, err := os.Stat(dir)
	if err != nil {
		return "storage directory", err
	}
	if !info.IsDir() {
		return "storage directory", fmt.Errorf("%s is not a directory", dir)
	}
	if _, err := os.Stat(ctx.Local.Path()); err != nil {
		return "storage directory", fmt.Errorf("not initialized, run 'vibeos init'")
	}
	return "storage directory", nil
}

func checkKeyring() (string, error) {
	if !auth.IsAvailable() {
		return "system keyring", fmt.Errorf("keyring backend unavailable, sync credentials cannot be stored")
	}
	return "system keyring", nil
}

// checkInstances flags concurrent vibeos processes. The local cache is
// written whole on shutdown, so a second live instance can clobber edits.
func checkInstances() (string, error) {
	procs, err := processesFunc()
	if err != nil {
		return "single instance", err
	}
	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == constants.AppName {
			return "single instance", fmt.Errorf("another vibeos process is running (pid %d)", p.Pid())
		}
	}
	return "single instance", nil
}

func checkRemote(ctx *Context) (string, error) {
	if _, err := auth.LoadCredentials(); err != nil {
		return "remote store", fmt.Errorf("not signed in, sync is disabled")
	}
	reqCtx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()
	if err := ctx.Remote.Health(reqCtx); err != nil {
		return "remote store", err
	}
	return "remote store", nil
}
