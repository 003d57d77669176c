// Package repositories implements SQLite persistence for the SoundCloud repository's host state.
//
// Key Implementations:
//   - [ConfigRepository] : operator settings (client id, secret, display name) keyed by plugin and name
//   - [PreferenceRepository] : per-user values such as the access token
//   - [PluginVersionRepository] : the version row seeded by migrations
//
// Tables are created by the embedded migrations in the shared package.
// Missing rows surface as [shared.ErrConfigNotFound] or [shared.ErrPreferenceNotFound] so callers can fall back to defaults.
package repositories
