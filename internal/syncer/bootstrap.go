package syncer

import (
	"context"
	"errors"

	apperrors "github.com/vibeos/vibeos/internal/errors"
	"github.com/vibeos/vibeos/internal/logger"
	"github.com/vibeos/vibeos/internal/remote"
	"github.com/vibeos/vibeos/internal/session"
)

// Reconciler runs once per authentication transition: it replaces local
// state with the remote snapshot on sign-in, and resets to defaults on
// sign-out.
type Reconciler struct {
	store       *session.Store
	remoteStore remote.Store
	coord       *Coordinator
}

func NewReconciler(store *session.Store, remoteStore remote.Store, coord *Coordinator) *Reconciler {
	return &Reconciler{store: store, remoteStore: remoteStore, coord: coord}
}

// SignedIn fetches the full remote snapshot and atomically replaces every
// local entity with the fetched values; local pre-login scratch state is
// discarded, and absent fields are hydrated with defaults. A fetch
// failure surfaces an error but leaves the session in a usable, empty
// state rather than blocking.
func (r *Reconciler) SignedIn(ctx context.Context) error {
	snap, err := r.remoteStore.Fetch(ctx)
	if err != nil {
		r.store.Reset()
		r.coord.Discard()
		if errors.Is(err, apperrors.ErrAuthenticationRequired) {
			r.coord.SetAuthenticated(false)
			return err
		}
		logger.Warn("Bootstrap fetch failed, starting from defaults", "error", err)
		r.coord.SetAuthenticated(true)
		return err
	}

	r.store.ReplaceAll(snap)
	r.coord.Discard()
	r.coord.SetAuthenticated(true)
	return nil
}

// SignedOut resets all entities to empty/default values in memory. The
// reset triggers no remote write.
func (r *Reconciler) SignedOut() {
	r.coord.SetAuthenticated(false)
	r.coord.Discard()
	r.store.Reset()
}
