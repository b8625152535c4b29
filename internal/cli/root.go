package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/vibeos/vibeos/internal/auth"
	"github.com/vibeos/vibeos/internal/constants"
	"github.com/vibeos/vibeos/internal/logger"
	"github.com/vibeos/vibeos/internal/models"
	"github.com/vibeos/vibeos/internal/remote"
	"github.com/vibeos/vibeos/internal/session"
	"github.com/vibeos/vibeos/internal/storage"
	"github.com/vibeos/vibeos/internal/syncer"
)

// Context carries the wired session for one CLI invocation. Each
// invocation is its own session: hydrate from the local cache, mutate,
// flush pending writes, persist the cache.
type Context struct {
	Store       *session.Store
	Local       storage.Provider
	Remote      remote.Store
	Coordinator *syncer.Coordinator
	Reconciler  *syncer.Reconciler
	Auth        *auth.Client
}

// Hydrate loads the cached snapshot into the entity store and restores
// the authenticated mode from the keyring. It must run before any command
// that touches entity data.
func (c *Context) Hydrate() error {
	snap, err := c.Local.Load()
	if err != nil {
		return err
	}
	c.Store.ReplaceAll(snap)

	if _, err := auth.LoadCredentials(); err == nil {
		c.Coordinator.SetAuthenticated(true)
	}
	return nil
}

// Shutdown flushes pending remote writes and saves the local cache.
// Remote failures are reported but never block persisting locally.
func (c *Context) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()
	if err := c.Coordinator.Flush(ctx); err != nil {
		logger.Warn("Failed to flush pending writes", "error", err)
		fmt.Printf("Warning: some changes were not synced: %v\n", err)
	}
	return c.Local.Save(c.Store.Snapshot())
}

// FormatClock renders accumulated seconds as HH:MM:SS.
func FormatClock(seconds int) string {
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatWhen renders an entry timestamp the way the victory log shows it.
func FormatWhen(t time.Time) string {
	return t.Format("Jan 2 15:04")
}

// UniqueFocusDays counts the distinct calendar days across sessions.
func UniqueFocusDays(sessions []models.TimerSession) int {
	days := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		days[s.Date] = struct{}{}
	}
	return len(days)
}
