// Capability interfaces and collaborator contracts
package services

import (
	"context"
	"net/url"

	"github.com/desertthunder/scx/internal/models"
	"golang.org/x/oauth2"
)

// Authenticatable is the OAuth2 authorization-code half of a track source.
type Authenticatable interface {
	// AuthorizeURL builds the remote authorization endpoint URL for the requested scope.
	AuthorizeURL(scope string, opts ...oauth2.AuthCodeOption) string

	// HandleCallback consumes the code, error and error_description parameters of the redirect.
	HandleCallback(ctx context.Context, params url.Values) error

	// IsAuthenticated reports whether an access token is held.
	IsAuthenticated() bool

	// Logout forgets the stored access token.
	Logout(ctx context.Context) error
}

// Listable pages through the authenticated user's tracks.
type Listable interface {
	ListTracks(ctx context.Context, page int) (*models.ListingPage, error)
	ResolveLink(ctx context.Context, trackID int64) (string, error)
}

// Downloadable writes a single track to a caller-owned path.
type Downloadable interface {
	DownloadTrack(ctx context.Context, trackID int64, dest string) (*models.DownloadResult, error)
}

// TrackSource is everything the host needs from a repository of remote tracks.
type TrackSource interface {
	Authenticatable
	Listable
	Downloadable

	// Name returns the name of the service (e.g., "SoundCloud")
	Name() string
}

// PreferenceStore persists per-user values such as the access token.
type PreferenceStore interface {
	GetPreference(ctx context.Context, user, key, def string) (string, error)
	SetPreference(ctx context.Context, user, key, value string) error
}

// ConfigStore reads operator-level plugin settings by namespace and key.
type ConfigStore interface {
	GetConfig(namespace, key string) (string, error)
}

// IconResolver returns a default thumbnail for a file extension, used when a track has no artwork.
type IconResolver interface {
	IconForExtension(ext string) string
}
