// Package remote consumes the remote key-value persistence boundary: six
// logical keys per authenticated principal, each independently readable
// (bulk multi-get at bootstrap) and independently writable (single-key
// set, last-write-wins, no versioning).
package remote

import (
	"context"

	"github.com/vibeos/vibeos/internal/models"
)

type Store interface {
	// Fetch performs the bulk multi-get of every entity kind. Fields the
	// backend has never seen come back zero-valued; the reconciler
	// hydrates defaults.
	Fetch(ctx context.Context) (models.Snapshot, error)

	// Save writes the latest value for a single entity kind. The payload
	// is the value emitted by the entity store for that kind.
	Save(ctx context.Context, kind models.EntityKind, payload any) error

	// Health checks the backend is reachable without touching user data.
	Health(ctx context.Context) error
}
