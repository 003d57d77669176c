package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/scx/internal/shared"
)

// ConfigRepository persists operator-level plugin settings in the plugin_config table.
//
// It implements [services.ConfigStore].
type ConfigRepository struct {
	db *sql.DB
}

// NewConfigRepository creates a new [ConfigRepository] with the given database connection
func NewConfigRepository(db *sql.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// GetConfig returns the value stored for plugin and name, or [shared.ErrConfigNotFound].
func (r *ConfigRepository) GetConfig(plugin, name string) (string, error) {
	query := `SELECT value FROM plugin_config WHERE plugin = ? AND name = ?`

	var value string
	err := r.db.QueryRow(query, plugin, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s/%s", shared.ErrConfigNotFound, plugin, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query config: %w", err)
	}

	return value, nil
}

// SetConfig inserts or replaces a single setting
func (r *ConfigRepository) SetConfig(plugin, name, value string) error {
	if plugin == "" || name == "" {
		return fmt.Errorf("%w: plugin and name are required", shared.ErrInvalidInput)
	}

	query := `
		INSERT INTO plugin_config (plugin, name, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (plugin, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, plugin, name, value, time.Now()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// SetConfigs writes every entry in a single transaction
func (r *ConfigRepository) SetConfigs(plugin string, values map[string]string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO plugin_config (plugin, name, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (plugin, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	now := time.Now()
	for name, value := range values {
		if _, err := tx.Exec(query, plugin, name, value, now); err != nil {
			return fmt.Errorf("failed to save config %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit config: %w", err)
	}

	return nil
}

// Delete removes a setting
func (r *ConfigRepository) Delete(plugin, name string) error {
	result, err := r.db.Exec(`DELETE FROM plugin_config WHERE plugin = ? AND name = ?`, plugin, name)
	if err != nil {
		return fmt.Errorf("failed to delete config: %w", err)
	}

	if err := expectRows(result); err != nil {
		return fmt.Errorf("%w: %s/%s", shared.ErrConfigNotFound, plugin, name)
	}

	return nil
}

// List returns all settings for plugin
func (r *ConfigRepository) List(plugin string) (map[string]string, error) {
	rows, err := r.db.Query(`SELECT name, value FROM plugin_config WHERE plugin = ? ORDER BY name ASC`, plugin)
	if err != nil {
		return nil, fmt.Errorf("failed to query config: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan config: %w", err)
		}
		values[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return values, nil
}
