// Package syncer observes entity store mutations and reflects them to the
// remote store: one debounced, coalescing pending-write slot per entity
// kind, fully independent across kinds.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/vibeos/vibeos/internal/constants"
	"github.com/vibeos/vibeos/internal/logger"
	"github.com/vibeos/vibeos/internal/models"
	"github.com/vibeos/vibeos/internal/remote"
)

var timeNow = time.Now

// Status is the overall sync state surfaced to the user.
type Status int

const (
	StatusIdle Status = iota
	StatusSyncing
	StatusSaved
)

func (s Status) String() string {
	switch s {
	case StatusSyncing:
		return "syncing"
	case StatusSaved:
		return "saved"
	default:
		return "idle"
	}
}

// NotifyFunc receives write failures as transient notifications. Failures
// are reported once and never retried automatically; the next change to
// the entity supersedes the failed write.
type NotifyFunc func(kind models.EntityKind, err error)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDebounce overrides the debounce window. Used by tests.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) { c.debounce = d }
}

// WithNotify sets the failure notification sink.
func WithNotify(fn NotifyFunc) Option {
	return func(c *Coordinator) { c.notify = fn }
}

type pendingWrite struct {
	timer   *time.Timer
	payload any
}

// Coordinator debounces and coalesces per-kind remote writes. Calling
// EntityChanged again for a kind before its window elapses cancels the
// previous pending write and replaces it: only the latest value is ever
// sent, intermediate values are never transmitted.
type Coordinator struct {
	remoteStore remote.Store
	debounce    time.Duration
	notify      NotifyFunc

	mu            sync.Mutex
	authenticated bool
	pending       map[models.EntityKind]*pendingWrite
	dirty         map[models.EntityKind]any // retained while unauthenticated
	hashes        map[models.EntityKind]uint64
	inflight      int
	lastSaved     time.Time
	wg            sync.WaitGroup
}

func New(store remote.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		remoteStore: store,
		debounce:    constants.DebounceWindow,
		notify:      func(models.EntityKind, error) {},
		pending:     make(map[models.EntityKind]*pendingWrite),
		dirty:       make(map[models.EntityKind]any),
		hashes:      make(map[models.EntityKind]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EntityChanged records the latest value for an entity kind and
// (re)schedules its remote write. Unauthenticated changes are retained in
// memory only; no remote attempt is made until sign-in.
func (c *Coordinator) EntityChanged(kind models.EntityKind, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if hash, err := hashstructure.Hash(value, hashstructure.FormatV2, nil); err == nil {
		if prev, ok := c.hashes[kind]; ok && prev == hash {
			return
		}
		c.hashes[kind] = hash
	}

	if !c.authenticated {
		c.dirty[kind] = value
		return
	}
	c.scheduleLocked(kind, value)
}

// scheduleLocked arms (or re-arms) the kind's debounce slot. Starting a
// new timer implicitly cancels any timer already pending for the same
// kind: no stacking.
func (c *Coordinator) scheduleLocked(kind models.EntityKind, value any) {
	if slot, ok := c.pending[kind]; ok {
		slot.timer.Stop()
		slot.payload = value
		slot.timer.Reset(c.debounce)
		return
	}
	slot := &pendingWrite{payload: value}
	slot.timer = time.AfterFunc(c.debounce, func() { c.fire(kind) })
	c.pending[kind] = slot
}

// fire takes the kind's pending payload and writes it. The network call
// happens outside the lock so a slow save for one kind never delays
// another.
func (c *Coordinator) fire(kind models.EntityKind) {
	c.mu.Lock()
	slot, ok := c.pending[kind]
	if !ok {
		c.mu.Unlock()
		return
	}
	delete(c.pending, kind)
	payload := slot.payload
	c.inflight++
	c.wg.Add(1)
	c.mu.Unlock()

	c.write(kind, payload)
}

func (c *Coordinator) write(kind models.EntityKind, payload any) {
	defer c.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	err := c.remoteStore.Save(ctx, kind, payload)
	cancel()

	c.mu.Lock()
	c.inflight--
	if err == nil {
		c.lastSaved = timeNow()
	}
	c.mu.Unlock()

	if err != nil {
		logger.Warn("Remote save failed", "kind", kind, "error", err)
		c.notify(kind, err)
	}
}

// SetAuthenticated switches the coordinator's mode. Entering the
// authenticated mode schedules writes for every value that changed while
// signed out; leaving it cancels all pending slots without writing.
func (c *Coordinator) SetAuthenticated(authed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.authenticated == authed {
		return
	}
	c.authenticated = authed

	if authed {
		for kind, value := range c.dirty {
			c.scheduleLocked(kind, value)
			delete(c.dirty, kind)
		}
		return
	}
	for kind, slot := range c.pending {
		slot.timer.Stop()
		c.dirty[kind] = slot.payload
		delete(c.pending, kind)
	}
}

// Discard drops every pending and retained value without writing, and
// forgets the change-detection hashes. Used when a bootstrap replaces the
// local state wholesale: values captured before the replacement must
// never overwrite what was just fetched.
func (c *Coordinator) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for kind, slot := range c.pending {
		slot.timer.Stop()
		delete(c.pending, kind)
	}
	c.dirty = make(map[models.EntityKind]any)
	c.hashes = make(map[models.EntityKind]uint64)
}

// Authenticated reports the current mode.
func (c *Coordinator) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authenticated
}

// Status derives the overall sync state: Syncing while any write is in
// flight, Saved once a write has succeeded, otherwise Idle. A failed
// write sets nothing, so the status reverts to its prior value.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.inflight > 0:
		return StatusSyncing
	case !c.lastSaved.IsZero():
		return StatusSaved
	default:
		return StatusIdle
	}
}

// LastSaved returns the timestamp of the most recent successful write, or
// the zero time if nothing has been saved.
func (c *Coordinator) LastSaved() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSaved
}

// Flush writes every pending slot immediately, without waiting for the
// debounce windows, then waits for all in-flight writes to finish. It is
// the CLI's shutdown path and the user's manual retry.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	if !c.authenticated {
		c.mu.Unlock()
		return nil
	}
	kinds := make([]models.EntityKind, 0, len(c.pending))
	payloads := make([]any, 0, len(c.pending))
	for kind, slot := range c.pending {
		slot.timer.Stop()
		kinds = append(kinds, kind)
		payloads = append(payloads, slot.payload)
		delete(c.pending, kind)
	}
	c.inflight += len(kinds)
	c.wg.Add(len(kinds))
	c.mu.Unlock()

	var firstErr error
	var errMu sync.Mutex
	var flushWG sync.WaitGroup
	for i := range kinds {
		flushWG.Add(1)
		go func(kind models.EntityKind, payload any) {
			defer flushWG.Done()
			if err := c.saveNow(ctx, kind, payload); err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
			}
		}(kinds[i], payloads[i])
	}
	flushWG.Wait()
	c.wg.Wait()
	return firstErr
}

func (c *Coordinator) saveNow(ctx context.Context, kind models.EntityKind, payload any) error {
	defer c.wg.Done()

	err := c.remoteStore.Save(ctx, kind, payload)

	c.mu.Lock()
	c.inflight--
	if err == nil {
		c.lastSaved = timeNow()
	}
	c.mu.Unlock()

	if err != nil {
		logger.Warn("Remote save failed", "kind", kind, "error", err)
		c.notify(kind, err)
	}
	return err
}
