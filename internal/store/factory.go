package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/desertthunder/scx/internal/shared"
)

// StoreType represents the type of store backend.
type StoreType string

const (
	// StoreTypeSQLite stores preferences in the application database.
	StoreTypeSQLite StoreType = "sqlite"
	// StoreTypeMemory represents in-memory storage.
	StoreTypeMemory StoreType = "memory"
	// StoreTypeRedis represents Redis storage.
	StoreTypeRedis StoreType = "redis"
)

// Config contains configuration for creating a store.
type Config struct {
	Type StoreType

	// Database is used by the sqlite backend. When nil, DatabaseConfig is opened instead.
	Database       *sql.DB
	DatabaseConfig shared.DatabaseConfig

	Redis RedisOptions
}

// ConfigFrom maps the config file section onto a [Config].
func ConfigFrom(cfg *shared.Config, db *sql.DB) Config {
	return Config{
		Type:           ParseStoreType(cfg.Store.Type),
		Database:       db,
		DatabaseConfig: cfg.Database,
		Redis: RedisOptions{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		},
	}
}

// NewStore creates the backend named by config.Type.
func NewStore(config Config) (Store, error) {
	switch config.Type {
	case StoreTypeSQLite:
		if config.Database != nil {
			return NewSQLiteStore(config.Database), nil
		}
		return OpenSQLiteStore(config.DatabaseConfig)
	case StoreTypeMemory:
		return NewMemoryStore(), nil
	case StoreTypeRedis:
		return NewRedisStoreFromOptions(config.Redis)
	default:
		return nil, fmt.Errorf("%w: unsupported store type: %s", shared.ErrInvalidConfig, config.Type)
	}
}

// ParseStoreType parses a string into a StoreType.
// Returns StoreTypeSQLite for empty input and the input unchanged otherwise, so unknown types fail in [NewStore].
func ParseStoreType(s string) StoreType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sqlite", "sqlite3":
		return StoreTypeSQLite
	case "memory":
		return StoreTypeMemory
	case "redis":
		return StoreTypeRedis
	default:
		return StoreType(s)
	}
}

func (t StoreType) String() string {
	return string(t)
}

// IsValid returns true if the StoreType is valid.
func (t StoreType) IsValid() bool {
	switch t {
	case StoreTypeSQLite, StoreTypeMemory, StoreTypeRedis:
		return true
	default:
		return false
	}
}
