package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/desertthunder/scx/internal/repositories"
	"github.com/desertthunder/scx/internal/shared"
	"github.com/urfave/cli/v3"
)

func (r *Runner) rollbackDatabase() error {
	db, err := r.database()
	if err != nil {
		return err
	}
	if err := shared.RollbackMigration(db); err != nil {
		return err
	}

	r.logger.Info("migration rolled back", "path", r.config.Database.Path)
	r.writePlain("✓ Rolled back the latest migration of %s\n", r.config.Database.Path)
	return nil
}

// SetupDatabase creates the config file when missing, then opens the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("rollback") {
		return r.rollbackDatabase()
	}

	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := r.database()
	if err != nil {
		return err
	}

	version, err := repositories.NewPluginVersionRepository(db).Get(repositories.PluginName)
	if err != nil {
		return err
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	r.writePlain("✓ Database ready at %s\n", r.config.Database.Path)
	r.writePlain("Installed %s %s (%d)\n", version.Plugin, version.Release, version.Version)
	r.writePlainln("Next steps:")
	r.writePlain("1. Run 'scx settings set --client-id ID --client-secret SECRET'\n")
	r.writePlain("2. Run 'scx auth login' to connect your SoundCloud account\n")
	return nil
}
