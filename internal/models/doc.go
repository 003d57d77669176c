// Package models defines the domain entities exchanged between the SoundCloud track source, its collaborators and the CLI host.
//
//   - [Credential] : OAuth2 client issued to the operator, immutable for the adapter's lifetime
//   - [Track] : remote track snapshot, fetched on demand and never cached
//   - [TrackSummary] : derived picker row ("{title}.{original_format}", thumbnail, date, source id)
//   - [ListingPage] : one fixed-size window over the user's tracks
//   - [DownloadResult] : written path and canonical remote URL of a download
//   - [Me] : authenticated user profile, used for track totals
package models
