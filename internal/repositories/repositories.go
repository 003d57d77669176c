// package repositories provides SQLite persistence for plugin settings, user preferences and schema versions.
package repositories

import (
	"database/sql"
	"fmt"
)

const (
	// ConfigNamespace is the plugin_config namespace holding SoundCloud settings.
	ConfigNamespace = "soundcloud"

	// PluginName is the plugin_versions key of the repository.
	PluginName = "repository_soundcloud"
)

// Setting names stored under [ConfigNamespace].
const (
	SettingClientID     = "clientid"
	SettingClientSecret = "clientsecret"
	SettingPluginName   = "pluginname"
)

// expectRows returns an error when a statement matched nothing.
func expectRows(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("no rows affected")
	}
	return nil
}
