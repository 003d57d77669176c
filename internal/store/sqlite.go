package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/desertthunder/scx/internal/repositories"
	"github.com/desertthunder/scx/internal/shared"
)

// SQLiteStore adapts [repositories.PreferenceRepository] to [services.PreferenceStore].
type SQLiteStore struct {
	db   *sql.DB
	repo *repositories.PreferenceRepository
	owns bool
}

// NewSQLiteStore wraps an already migrated database. Close leaves db open.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, repo: repositories.NewPreferenceRepository(db)}
}

// OpenSQLiteStore opens and migrates the configured database. Close closes it.
func OpenSQLiteStore(cfg shared.DatabaseConfig) (*SQLiteStore, error) {
	db, err := shared.OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}

	s := NewSQLiteStore(db)
	s.owns = true
	return s, nil
}

// GetPreference returns the stored value, or def when none is set.
func (s *SQLiteStore) GetPreference(ctx context.Context, user, key, def string) (string, error) {
	value, err := s.repo.Get(ctx, user, key)
	if errors.Is(err, shared.ErrPreferenceNotFound) {
		return def, nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) SetPreference(ctx context.Context, user, key, value string) error {
	return s.repo.Set(ctx, user, key, value)
}

func (s *SQLiteStore) Close() error {
	if !s.owns {
		return nil
	}
	return s.db.Close()
}
