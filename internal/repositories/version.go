package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/scx/internal/models"
)

// PluginVersionRepository reads the plugin_versions table seeded by migrations.
type PluginVersionRepository struct {
	db *sql.DB
}

func NewPluginVersionRepository(db *sql.DB) *PluginVersionRepository {
	return &PluginVersionRepository{db: db}
}

// Get returns the installed version of plugin
func (r *PluginVersionRepository) Get(plugin string) (*models.PluginVersion, error) {
	query := `SELECT plugin, version, release, installed_at FROM plugin_versions WHERE plugin = ?`

	var (
		v           models.PluginVersion
		installedAt time.Time
	)
	err := r.db.QueryRow(query, plugin).Scan(&v.Plugin, &v.Version, &v.Release, &installedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plugin not installed: %s", plugin)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin version: %w", err)
	}

	v.InstalledAt = installedAt
	return &v, nil
}
