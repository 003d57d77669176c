package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/scx/internal/shared"
)

// PreferenceRepository persists per-user values in the user_preferences table.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new [PreferenceRepository] with the given database connection
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get returns the stored value or [shared.ErrPreferenceNotFound]
func (r *PreferenceRepository) Get(ctx context.Context, user, name string) (string, error) {
	query := `SELECT value FROM user_preferences WHERE user_id = ? AND name = ?`

	var value string
	err := r.db.QueryRowContext(ctx, query, user, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", shared.ErrPreferenceNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query preference: %w", err)
	}

	return value, nil
}

// Set inserts or replaces a preference
func (r *PreferenceRepository) Set(ctx context.Context, user, name, value string) error {
	if user == "" || name == "" {
		return fmt.Errorf("%w: user and name are required", shared.ErrInvalidInput)
	}

	query := `
		INSERT INTO user_preferences (user_id, name, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, user, name, value, time.Now()); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	return nil
}
