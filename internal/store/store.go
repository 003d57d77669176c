// Package store provides [services.PreferenceStore] backends: SQLite, in-memory and Redis.
//
// Backends are selected with [NewStore] from a [Config], mirroring the [shared.StoreConfig] section of the config file.
package store

import (
	"github.com/desertthunder/scx/internal/services"
)

// Store is a preference store that owns a connection.
type Store interface {
	services.PreferenceStore

	// Close releases the backend connection.
	Close() error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*RedisStore)(nil)
)
