// Package services defines the [TrackSource] capabilities and implements them for SoundCloud.
//
// # Capabilities
//
// A track source is split into three interfaces so hosts can depend on only what they use:
//   - [Authenticatable]: OAuth2 authorization-code flow and logout
//   - [Listable]: paged listing and share-link resolution
//   - [Downloadable]: streaming one track to a caller-owned path
//
// # SoundCloud Implementation
//
// [SoundCloudService] holds the only session state, an access token. The token is read from
// the [PreferenceStore] at construction, written on a successful code exchange and cleared
// on logout. Every other operation fails with [shared.ErrNotAuthenticated] before touching
// the network when no token is held.
//
// Listing asks /me for the public and private track counts, derives the page count from
// [models.PageSize] and clamps out-of-range pages to the first page.
//
// # Error Handling
//
// Errors are typed wrappers over the sentinels in the shared package:
//   - [AuthError]: [shared.ErrAuthDenied], [shared.ErrExchangeFailed]
//   - [APIError]: [shared.ErrNotAuthenticated], [shared.ErrTransport], [shared.ErrTrackNotFound]
//   - [DownloadError]: [shared.ErrQuotaExceeded], [shared.ErrDownloadFailed]
//
// Each matches both its kind and its cause with [errors.Is].
package services
