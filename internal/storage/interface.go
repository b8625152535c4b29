package storage

import "github.com/vibeos/vibeos/internal/models"

// Provider persists the entity snapshot between CLI runs. The remote
// store stays the source of truth at bootstrap; this is the local cache
// that lets an offline or signed-out session keep its state.
type Provider interface {
	// Init creates the backing file/database. Fails if already initialized.
	Init() error

	// Load reads the cached snapshot.
	Load() (models.Snapshot, error)

	// Save overwrites the cached snapshot.
	Save(models.Snapshot) error

	Close() error

	// Path returns the location of the backing store, for diagnostics.
	Path() string
}
