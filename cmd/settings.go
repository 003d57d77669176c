package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/scx/internal/repositories"
	"github.com/desertthunder/scx/internal/shared"
	"github.com/desertthunder/scx/internal/store"
	"github.com/urfave/cli/v3"
)

// SupportedFileTypes lists the host file type groups the repository serves.
var SupportedFileTypes = []string{"web_audio"}

// SettingsShow prints the client settings and the redirect URI to register with SoundCloud.
func (r *Runner) SettingsShow(ctx context.Context, cmd *cli.Command) error {
	cred, err := r.credential()
	if err != nil {
		return err
	}

	settings, err := r.configRepository()
	if err != nil {
		return err
	}
	stored, err := settings.List(repositories.ConfigNamespace)
	if err != nil {
		return err
	}

	r.writePlainHeader("SoundCloud settings")
	r.writePlain("Name:          %s\n", orDefault(stored[repositories.SettingPluginName], "SoundCloud"))
	r.writePlain("Client ID:     %s\n", orDefault(cred.ClientID, "(not set)"))
	r.writePlain("Client secret: %s\n", orDefault(shared.MaskSecret(cred.ClientSecret), "(not set)"))

	if r.config.Credentials.SoundCloud.RedirectURI == "" && r.config.Server.Host == "" {
		r.writePlainln("⚠ No callback host is configured. Set server.host or credentials.soundcloud.redirect_uri.")
		return nil
	}
	r.writePlainln("Register this redirect URI with your SoundCloud app:")
	r.writePlain("%s\n", cred.RedirectURI)
	return nil
}

// SettingsSet stores the client id and secret in the settings table.
func (r *Runner) SettingsSet(ctx context.Context, cmd *cli.Command) error {
	values := map[string]string{
		repositories.SettingClientID:     cmd.String("client-id"),
		repositories.SettingClientSecret: cmd.String("client-secret"),
	}
	if name := cmd.String("name"); name != "" {
		values[repositories.SettingPluginName] = name
	}

	for key, v := range values {
		if v == "" {
			return fmt.Errorf("%w: %s must not be empty", shared.ErrMissingArgument, key)
		}
	}

	settings, err := r.configRepository()
	if err != nil {
		return err
	}
	if err := settings.SetConfigs(repositories.ConfigNamespace, values); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	r.logger.Info("settings saved", "client_id", values[repositories.SettingClientID])
	r.writePlain("✓ SoundCloud settings saved\n")
	return nil
}

// settingNames maps the flag names used by settings set to their stored keys.
var settingNames = map[string]string{
	"client-id":     repositories.SettingClientID,
	"client-secret": repositories.SettingClientSecret,
	"name":          repositories.SettingPluginName,
}

// SettingsUnset removes one stored setting so the config file or environment value applies again.
func (r *Runner) SettingsUnset(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.StringArg("setting")
	if arg == "" {
		return fmt.Errorf("%w: setting name", shared.ErrMissingArgument)
	}
	key, ok := settingNames[arg]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", shared.ErrInvalidArgument, arg)
	}

	settings, err := r.configRepository()
	if err != nil {
		return err
	}
	if err := settings.Delete(repositories.ConfigNamespace, key); err != nil {
		return fmt.Errorf("failed to remove setting: %w", err)
	}

	r.logger.Info("setting removed", "name", key)
	r.writePlain("✓ Removed %s\n", arg)
	return nil
}

// Status prints the installed version, preference store and supported file types.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	r.writePlainHeader("scx status")
	if v, err := repositories.NewPluginVersionRepository(db).Get(repositories.PluginName); err != nil {
		r.logger.Warn("failed to read plugin version", "error", err)
		r.writePlain("Version:    unknown\n")
	} else {
		r.writePlain("Version:    %s (%d)\n", v.Release, v.Version)
	}

	r.writePlain("Store:      %s\n", store.ParseStoreType(r.config.Store.Type))
	r.writePlain("Database:   %s\n", r.config.Database.Path)
	r.writePlain("File types: %v\n", SupportedFileTypes)
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
